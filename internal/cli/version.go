package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/lineage/internal/query"
)

const modulePath = "github.com/mesh-intelligence/lineage"

// version is the CLI release version.
const version = "0.1.0"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the lineaged version and library schema version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "lineaged v%s\nmodule: %s\nschema version: %d\n",
				version, modulePath, query.LibrarySchemaVersion)
			return nil
		},
	}
}
