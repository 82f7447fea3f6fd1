package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"braces.dev/errtrace"
	"go.wayfind.dev/docsite/internal/content"
	"go.wayfind.dev/docsite/internal/html"
	"go.wayfind.dev/docsite/internal/site"
)

// serve runs the development server until interrupted.
func (cmd *mainCmd) serve(opts *params, loader *content.Loader, renderer *html.Renderer) error {
	load := func() (*site.Index, error) {
		docs, err := loader.Load(os.DirFS(opts.DocsDir))
		if err != nil {
			return nil, errtrace.Wrap(err)
		}
		return site.BuildIndex(docs), nil
	}

	srv := &site.Server{
		Log:      cmd.log,
		Renderer: renderer,
		Metrics:  site.NewMetrics(),
	}

	ix, err := load()
	if err != nil {
		return errtrace.Wrap(err)
	}
	srv.SetIndex(ix)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if opts.Watch {
		watcher := site.Watcher{
			Dir: opts.DocsDir,
			Log: cmd.log,
		}
		go func() {
			err := watcher.Watch(ctx, func() {
				cmd.log.Printf("Guides changed, rebuilding")
				if err := srv.Reload(load); err != nil {
					// Keep serving the old snapshot.
					cmd.log.Printf("docsite: rebuild failed: %v", err)
				}
			})
			if err != nil {
				cmd.log.Printf("docsite: watch: %v", err)
			}
		}()
	}

	httpSrv := &http.Server{
		Addr:    opts.Serve,
		Handler: srv.Handler(),
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
		defer done()
		_ = httpSrv.Shutdown(shutdownCtx)
	}()

	cmd.log.Printf("Serving on http://%v", opts.Serve)
	if err := httpSrv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return errtrace.Wrap(err)
	}
	return nil
}
