package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/franz/carolcast/internal/api"
	"github.com/franz/carolcast/internal/util"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the merged playlist as a JSON API",
	Long: `Start an HTTP server exposing the merged playlist:

  GET  /health
  GET  /api/episodes?q=&sort=&choreo=front,back&favorites=1
  GET  /api/episodes/:id      (id = path-escaped audio URL)
  GET  /api/missing
  POST /api/reload            (rate limited)

The feeds are loaded on the first request (or at startup with --preload) and
kept in memory until a reload.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("listen", defaultListenAddr, "address to listen on")
	serveCmd.Flags().Bool("preload", false, "load the feeds before accepting requests")
	viper.BindPFlag("listen", serveCmd.Flags().Lookup("listen"))
}

func runServe(cmd *cobra.Command, args []string) error {
	addr := util.GetConfigString("listen", defaultListenAddr)
	preload, _ := cmd.Flags().GetBool("preload")

	s, err := openSession(true)
	if err != nil {
		return err
	}
	defer s.Close()

	if util.GetLogLevel() > util.LevelDebug {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := api.NewServer(s.orchestrator, s.feedURL, s.db)
	if preload {
		if _, _, err := srv.Reload(cmd.Context()); err != nil {
			return err
		}
	}

	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           srv.Router(gin.Logger()),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		util.InfoLog("Serving %s playlist on %s", s.voice.Title(), addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		util.InfoLog("Shutdown signal received: %s", sig)
	case err, ok := <-errCh:
		if ok {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	util.SuccessLog("Server stopped")
	return nil
}
