package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"edareport/internal/config"
	apperrors "edareport/internal/errors"
	"edareport/internal/logging"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
)

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve [report-dir]",
		Short: "Serve a generated report directory over HTTP",
		Long: `Serve starts a local HTTP server for previewing a generated report.
The report's HTML page is served at /, graphs under /graphs/.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runServeCmd,
	}

	cmd.Flags().StringP("port", "p", "", "Port to listen on (default from EDA_SERVE_PORT)")

	return cmd
}

func runServeCmd(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if v, _ := cmd.Flags().GetString("port"); v != "" {
		cfg.Server.Port = v
	}

	dir := cfg.Report.OutputDir
	if len(args) == 1 {
		dir = args[0]
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return apperrors.Newf(apperrors.CodeInputError, "report directory not found: %s", dir)
	}

	log := logging.NewDefaultLogger()

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		http.ServeFile(w, req, dir+"/report.html")
	})
	r.Handle("/*", http.FileServer(http.Dir(dir)))

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("serving report: dir=%s addr=%s", dir, srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	log.Info("server stopped")
	return nil
}
