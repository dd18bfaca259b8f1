package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/skeinlab/skein/internal/server"
	"github.com/skeinlab/skein/pkg/editor"
	"github.com/skeinlab/skein/pkg/errors"
)

// newServeCmd creates the serve command, which publishes read-only
// snapshots of a document over HTTP.
func newServeCmd() *cobra.Command {
	var (
		configFile string
		addr       string
		demo       bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve document snapshots over HTTP",
		Long: `Start a read-only HTTP server publishing the document as JSON
snapshots and DOT source, plus Prometheus metrics on /metrics.

Endpoints:
  GET /healthz       health check
  GET /v1/snapshot   full document snapshot as JSON
  GET /v1/dot        document as Graphviz DOT (?detailed=true for column labels)
  GET /metrics       Prometheus metrics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			cfg, err := loadConfig(configFile)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			if err := errors.ValidateListenAddr(cfg.Server.Addr); err != nil {
				return err
			}

			server.InstallMetrics()

			ed := newEditor(cfg)
			if demo {
				seedDemo(ed)
			}
			logger.Info("serving document", "id", ed.ID(), "nodes", len(ed.State().Nodes))

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return server.New(cfg.Server.Addr, ed, logger).Run(ctx)
		},
	}

	cmd.Flags().StringVar(&configFile, "config", "", "path to config file (default: user config dir)")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	cmd.Flags().BoolVar(&demo, "demo", false, "seed a small sample document")
	return cmd
}

// seedDemo grows the fresh single-node document into a small tree so
// the served snapshot has some structure to look at.
func seedDemo(ed *editor.Editor) {
	ed.Dispatch(editor.InsertAfter{})
	ed.Dispatch(editor.InsertBranch{})
	ed.Dispatch(editor.InsertAfter{})
	ed.Dispatch(editor.MoveCursor{Dir: editor.DirLeft})
	ed.Dispatch(editor.InsertBranch{})
}
