package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize the metadata database",
		Long:  "Create the full schema in the configured database. A database\nalready at the current schema version is left untouched.",
		RunE:  runInit,
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	src, exec, err := openExecutor()
	if err != nil {
		return sysError(fmt.Errorf("open database: %w", err))
	}
	defer src.Close()

	err = exec.RunInTransaction(exec.InitMetadataSourceIfNotExists)
	if err != nil {
		return sysError(fmt.Errorf("initialize schema: %w", err))
	}

	fmt.Fprintf(cmd.OutOrStdout(), "database initialized at schema version %d\n", exec.GetLibraryVersion())
	return nil
}
