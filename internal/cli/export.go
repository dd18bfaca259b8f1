package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/skeinlab/skein/pkg/editor"
	"github.com/skeinlab/skein/pkg/errors"
	"github.com/skeinlab/skein/pkg/export"
	"github.com/skeinlab/skein/pkg/httputil"
)

// newExportCmd creates the export command, which renders a document as
// DOT, SVG, or JSON.
func newExportCmd() *cobra.Command {
	var (
		configFile string
		format     string
		out        string
		from       string
		detailed   bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a document as DOT, SVG, or JSON",
		Long: `Render a document to a file or stdout.

By default a small sample document is rendered. With --from, the
document is fetched from a running "skein serve" instance instead, so
a live session can be exported without stopping it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			if err := errors.ValidateExportFormat(format); err != nil {
				return err
			}
			if out != "" && out != "-" {
				if err := errors.ValidateOutputPath(out); err != nil {
					return err
				}
			}

			cfg, err := loadConfig(configFile)
			if err != nil {
				return err
			}

			prog := newProgress(logger)
			var data []byte
			if from != "" {
				data, err = fetchExport(from, format, detailed)
			} else {
				data, err = renderLocal(cfg, format, detailed)
			}
			if err != nil {
				return err
			}

			if out == "" || out == "-" {
				_, err = os.Stdout.Write(data)
				return err
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return errors.Wrap(errors.ErrCodeInternal, err, "write %s", out)
			}
			prog.done(fmt.Sprintf("Exported %s", out))
			return nil
		},
	}

	cmd.Flags().StringVar(&configFile, "config", "", "path to config file (default: user config dir)")
	cmd.Flags().StringVarP(&format, "format", "f", "dot", "output format: dot, svg, or json")
	cmd.Flags().StringVarP(&out, "out", "o", "-", "output file (- for stdout)")
	cmd.Flags().StringVar(&from, "from", "", "base URL of a running skein serve instance")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include column numbers in node labels")
	return cmd
}

// renderLocal exports a locally seeded sample document.
func renderLocal(cfg Config, format string, detailed bool) ([]byte, error) {
	ed := newEditor(cfg)
	seedDemo(ed)
	return renderState(ed, format, detailed)
}

func renderState(ed *editor.Editor, format string, detailed bool) ([]byte, error) {
	switch format {
	case "dot":
		return []byte(export.ToDOT(ed.State(), export.Options{Detailed: detailed})), nil
	case "svg":
		dot := export.ToDOT(ed.State(), export.Options{Detailed: detailed})
		return export.RenderSVG(dot)
	case "json":
		return snapshotJSON(ed)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown export format: %q", format)
}

// fetchExport pulls the document from a running serve instance. DOT
// and JSON come straight off the wire; SVG fetches DOT and renders it
// locally.
func fetchExport(base, format string, detailed bool) ([]byte, error) {
	switch format {
	case "json":
		return fetch(base + "/v1/snapshot")
	case "dot", "svg":
		u := base + "/v1/dot"
		if detailed {
			u += "?detailed=true"
		}
		dot, err := fetch(u)
		if err != nil {
			return nil, err
		}
		if format == "dot" {
			return dot, nil
		}
		return export.RenderSVG(string(dot))
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown export format: %q", format)
}

func snapshotJSON(ed *editor.Editor) ([]byte, error) {
	data, err := json.MarshalIndent(ed.Snapshot(), "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode snapshot")
	}
	return append(data, '\n'), nil
}

// fetch gets one URL, retrying transient failures with backoff.
func fetch(rawURL string) ([]byte, error) {
	if _, err := url.Parse(rawURL); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid URL %q", rawURL)
	}

	client := &http.Client{Timeout: 10 * time.Second}
	var body []byte
	err := httputil.RetryWithBackoff(context.Background(), func() error {
		resp, err := client.Get(rawURL)
		if err != nil {
			return &httputil.RetryableError{Err: err}
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 500 {
			return &httputil.RetryableError{
				Err: errors.New(errors.ErrCodeInternal, "fetch %s: status %d", rawURL, resp.StatusCode),
			}
		}
		if resp.StatusCode != http.StatusOK {
			return errors.New(errors.ErrCodeInternal, "fetch %s: status %d", rawURL, resp.StatusCode)
		}

		body, err = io.ReadAll(resp.Body)
		return err
	})
	if err != nil {
		return nil, err
	}
	return body, nil
}
