package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newIDsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ids [artifacts|executions|contexts]",
		Short: "Print every stored id of one node kind",
		Long:  "Scan the database and print the id of every node of the given kind,\none per line. The scan is unordered and unpaginated.",
		Args:  cobra.ExactArgs(1),
		RunE:  runIDs,
	}
}

func runIDs(cmd *cobra.Command, args []string) error {
	src, exec, err := openExecutor()
	if err != nil {
		return sysError(fmt.Errorf("open database: %w", err))
	}
	defer src.Close()

	var ids []int64
	err = exec.RunInTransaction(func() error {
		var err error
		switch args[0] {
		case "artifacts":
			ids, err = exec.SelectAllArtifactIDs()
		case "executions":
			ids, err = exec.SelectAllExecutionIDs()
		case "contexts":
			ids, err = exec.SelectAllContextIDs()
		default:
			return fmt.Errorf("unknown node kind %q", args[0])
		}
		return err
	})
	if err != nil {
		return userError(fmt.Errorf("list ids: %w", err))
	}

	for _, id := range ids {
		fmt.Fprintln(cmd.OutOrStdout(), id)
	}
	return nil
}
