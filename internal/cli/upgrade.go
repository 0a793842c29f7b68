package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newUpgradeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "upgrade",
		Short: "Upgrade the database schema to the library version",
		Long: "Migrate the database forward one schema version at a time until it\n" +
			"matches the library version. Already current databases are a no-op.",
		RunE: runUpgrade,
	}
}

func runUpgrade(cmd *cobra.Command, args []string) error {
	src, exec, err := openExecutor()
	if err != nil {
		return sysError(fmt.Errorf("open database: %w", err))
	}
	defer src.Close()

	err = exec.RunInTransaction(func() error {
		return exec.UpgradeMetadataSourceIfOutOfDate(true)
	})
	if err != nil {
		return sysError(fmt.Errorf("upgrade schema: %w", err))
	}

	fmt.Fprintf(cmd.OutOrStdout(), "database at schema version %d\n", exec.GetLibraryVersion())
	return nil
}
