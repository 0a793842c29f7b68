// Package cli implements the lineaged command-line interface for
// administering a lineage metadata database: schema initialization,
// upgrade, downgrade, and inspection.
package cli

import (
	"errors"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/lineage/internal/paths"
	"github.com/mesh-intelligence/lineage/internal/query"
	"github.com/mesh-intelligence/lineage/internal/sqlite"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	database  string
	verbose   bool
}

var flags rootFlags

// NewRootCmd creates the top-level "lineaged" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "lineaged",
		Short: "Administer a lineage metadata database",
		Long: "Lineaged manages the schema of a lineage metadata database:\n" +
			"initialization, stepwise upgrade and downgrade, and inspection.",
		// Do not print usage on errors returned by subcommands.
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flags.configDir, "config-dir", "", "configuration directory (default: .lineage)")
	root.PersistentFlags().StringVar(&flags.database, "database", "", "database path (overrides config)")
	root.PersistentFlags().BoolVar(&flags.verbose, "verbose", false, "enable debug logging")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd())
	root.AddCommand(newUpgradeCmd())
	root.AddCommand(newDowngradeCmd())
	root.AddCommand(newIDsCmd())

	return root
}

// Execute runs the root command and exits with the appropriate code.
// Subcommands return errors rather than exiting so their defers (source
// Close, transaction rollback) still run.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		os.Exit(exitCode(err))
	}
}

// codedError pairs an error with the process exit code it maps to.
type codedError struct {
	code int
	err  error
}

func (e *codedError) Error() string { return e.err.Error() }
func (e *codedError) Unwrap() error { return e.err }

func userError(err error) error { return &codedError{code: exitUserError, err: err} }
func sysError(err error) error  { return &codedError{code: exitSysError, err: err} }

// exitCode maps a command error to the process exit code. Errors without
// an explicit code (cobra usage errors and the like) are user errors.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var ce *codedError
	if errors.As(err, &ce) {
		return ce.code
	}
	return exitUserError
}

// newLogger builds the slog logger for one CLI invocation. Every run
// carries a run id so interleaved logs from concurrent invocations can
// be told apart.
func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if flags.verbose {
		level = slog.LevelDebug
	}
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(h).With("run_id", uuid.NewString())
}

// openExecutor loads config, opens the database, and builds an executor
// over it. The caller owns the returned source and must Close it.
func openExecutor() (*sqlite.Source, *query.Executor, error) {
	configDir, err := paths.ResolveConfigDir(flags.configDir)
	if err != nil {
		return nil, nil, err
	}
	cfg, err := loadConfig(configDir)
	if err != nil {
		return nil, nil, err
	}
	dbPath, err := paths.ResolveDatabase(flags.database, cfg.GetString(cfgKeyDatabase))
	if err != nil {
		return nil, nil, err
	}

	src := sqlite.NewSource(dbPath)
	if err := src.Connect(); err != nil {
		return nil, nil, err
	}
	exec, err := query.NewExecutor(query.SQLiteConfig(), src, query.WithLogger(newLogger()))
	if err != nil {
		src.Close()
		return nil, nil, err
	}
	return src, exec, nil
}
