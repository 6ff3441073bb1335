package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/texpack/texpack/pkg/mapfile"
)

const serveShutdownTimeout = 5 * time.Second

// serveCommand creates the serve command, a local HTTP preview of a packed
// atlas and its map file.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve <atlas-image> <map-file>",
		Short: "Serve an atlas preview over HTTP",
		Long: `Serve a packed atlas image and its map file over HTTP for quick
inspection in a browser. The index page overlays frame rectangles on
the atlas image.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, args[0], args[1])
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "localhost:8080", "listen address")
	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr, imagePath, mapPath string) error {
	m, err := readMap(mapPath)
	if err != nil {
		return err
	}
	if _, err := os.Stat(imagePath); err != nil {
		return err
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, previewPage(m))
	})
	r.Get("/atlas", func(w http.ResponseWriter, req *http.Request) {
		http.ServeFile(w, req, imagePath)
	})
	r.Get("/map", func(w http.ResponseWriter, req *http.Request) {
		if m.Format == "json" {
			w.Header().Set("Content-Type", "application/json")
		} else {
			w.Header().Set("Content-Type", "application/octet-stream")
		}
		http.ServeFile(w, req, mapPath)
	})
	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})

	srv := &http.Server{Addr: addr, Handler: r}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	loggerFromContext(ctx).Info("serving atlas preview", "addr", addr)
	printInfo("Preview at http://%s/", addr)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), serveShutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		return ctx.Err()
	}
}

// previewPage renders the index page: the atlas image with one outlined
// rectangle per frame.
func previewPage(m *mapfile.Map) string {
	var rects string
	for _, t := range m.Textures {
		for _, f := range t.Frames {
			rects += fmt.Sprintf(
				`<div class="frame" style="left:%dpx;top:%dpx;width:%dpx;height:%dpx" title="%s"></div>`,
				f[0], f[1], f[2], f[3], t.Name)
		}
	}
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
<title>texpack preview</title>
<style>
body { background: #1e1e1e; color: #ddd; font-family: monospace; }
.stage { position: relative; display: inline-block; }
.stage img { display: block; image-rendering: pixelated; }
.frame { position: absolute; border: 1px solid rgba(0, 255, 170, 0.7); box-sizing: border-box; }
.frame:hover { background: rgba(0, 255, 170, 0.2); }
</style>
</head>
<body>
<h3>%d textures, %d frames</h3>
<div class="stage"><img src="/atlas">%s</div>
</body>
</html>`, len(m.Textures), m.FrameCount(), rects)
}
