package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gstdraft-dev/gstdraft/internal/buildinfo"
	"github.com/gstdraft-dev/gstdraft/internal/config"
	"github.com/gstdraft-dev/gstdraft/internal/draft"
	"github.com/gstdraft-dev/gstdraft/internal/store"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "gstdraft",
		Short:   "GST invoice drafting with live tax preview",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newShowCommand())
	rootCmd.AddCommand(newSetCommand())
	rootCmd.AddCommand(newItemCommand())
	rootCmd.AddCommand(newResetCommand())
	rootCmd.AddCommand(newLookupCommand())
	rootCmd.AddCommand(newSubmitCommand())
	rootCmd.AddCommand(newFinalizeCommand())

	return rootCmd
}

func newLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.WarnLevel)
	return log
}

func configPath(dir string) string {
	return filepath.Join(dir, "gstdraft.yaml")
}

func loadConfigOnly(dir string) (*config.Config, error) {
	cfg, err := config.Load(configPath(dir))
	if err != nil {
		return nil, fmt.Errorf("not a gstdraft workspace (run \"gstdraft init\" first): %w", err)
	}
	return cfg, nil
}

// openWorkspace loads the workspace config and a controller over its draft
// store, rehydrated with the persisted session state: the attached invoice
// (so a FINAL lock survives between invocations) and the cached directory
// snapshots from earlier lookups.
func openWorkspace(dir string) (*config.Config, *draft.Controller, error) {
	cfg, err := loadConfigOnly(dir)
	if err != nil {
		return nil, nil, err
	}
	log := newLogger()
	st := store.NewFileStore(filepath.Join(dir, cfg.Draft.DataDir), log)
	quiet := time.Duration(cfg.Draft.QuietMillis) * time.Millisecond

	ctrl := draft.NewController(st, quiet, log)
	if sellers := st.Sellers(); len(sellers) > 0 {
		ctrl.SetSellers(sellers)
	}
	if buyers := st.Buyers(); len(buyers) > 0 {
		ctrl.SetBuyers(buyers)
	}
	return cfg, ctrl, nil
}
