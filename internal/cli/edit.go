package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/skeinlab/skein/internal/tui"
)

// newEditCmd creates the edit command, which opens the interactive
// terminal editor on a fresh document.
func newEditCmd() *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Open the interactive graph editor",
		Long: `Open the full-screen terminal editor on a new document.

The document starts with a single root node. Press space to insert a
node after every cursor, b to branch, and the arrow keys to navigate.
Click nodes to focus them, shift-click to add cursors, drag on empty
canvas to select with a marquee.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			cfg, err := loadConfig(configFile)
			if err != nil {
				return err
			}

			ed := newEditor(cfg)
			logger.Debug("editor created", "id", ed.ID())

			program := tea.NewProgram(
				tui.New(ed),
				tea.WithAltScreen(),
				tea.WithMouseAllMotion(),
			)
			_, err = program.Run()
			return err
		},
	}

	cmd.Flags().StringVar(&configFile, "config", "", "path to config file (default: user config dir)")
	return cmd
}
