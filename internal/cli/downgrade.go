package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDowngradeCmd() *cobra.Command {
	var toVersion int64

	cmd := &cobra.Command{
		Use:   "downgrade",
		Short: "Downgrade the database schema to an explicit version",
		Long: "Migrate the database backward one schema version at a time to the\n" +
			"version given by --to. Downgrades drop the data the newer versions\n" +
			"introduced; take a backup first.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDowngrade(cmd, toVersion)
		},
	}
	cmd.Flags().Int64Var(&toVersion, "to", -1, "target schema version (required)")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func runDowngrade(cmd *cobra.Command, toVersion int64) error {
	src, exec, err := openExecutor()
	if err != nil {
		return sysError(fmt.Errorf("open database: %w", err))
	}
	defer src.Close()

	err = exec.RunInTransaction(func() error {
		return exec.DowngradeMetadataSource(toVersion)
	})
	if err != nil {
		return userError(fmt.Errorf("downgrade schema: %w", err))
	}

	fmt.Fprintf(cmd.OutOrStdout(), "database at schema version %d\n", toVersion)
	return nil
}
