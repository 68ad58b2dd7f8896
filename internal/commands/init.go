package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gstdraft-dev/gstdraft/internal/config"
	"github.com/gstdraft-dev/gstdraft/internal/model"
	"github.com/gstdraft-dev/gstdraft/internal/store"
)

func newInitCommand() *cobra.Command {
	var apiURL string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new gstdraft workspace",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(cmd, absDir, apiURL)
		},
	}

	cmd.Flags().StringVar(&apiURL, "api-url", "", "invoice service base URL")

	return cmd
}

func runInit(cmd *cobra.Command, dir, apiURL string) error {
	cfg := config.Default()
	if apiURL != "" {
		cfg.API.BaseURL = apiURL
	}

	if err := os.MkdirAll(filepath.Join(dir, cfg.Draft.DataDir), 0o755); err != nil {
		return fmt.Errorf("creating drafts dir: %w", err)
	}

	if err := config.Save(configPath(dir), cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// Seed the fixed default draft so the first session loads it instead
	// of hitting the fallback path.
	st := store.NewFileStore(filepath.Join(dir, cfg.Draft.DataDir), newLogger())
	if err := st.Save(model.DefaultDraft()); err != nil {
		return fmt.Errorf("seeding draft: %w", err)
	}

	gitignore := ".env\n"
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(gitignore), 0o644); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}

	cmd.Printf("Initialized gstdraft workspace at %s\n", dir)
	return nil
}
