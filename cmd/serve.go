package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/resume-fit/internal/metrics"
	"github.com/spigell/resume-fit/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the analysis API over HTTP",
	Run: func(cmd *cobra.Command, _ []string) {
		serve(cmd)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("listen", "l", "", "address to listen on (default :8000)")
	if err := viper.BindPFlag("server.listen", serveCmd.Flags().Lookup("listen")); err != nil {
		log.Fatalf("binding listen flag: %v", err)
	}
}

func serve(_ *cobra.Command) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, config := setup()
	logger.Info("starting the resume-fit server", zap.String("version", version))

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	fit, lazy, err := newMatcher(config, logger, m)
	if err != nil {
		logger.Fatal("creating the matcher", zap.Error(err))
	}
	defer closeEmbedder(lazy, logger)

	var model server.ModelState
	if lazy != nil {
		model = lazy
		// Warm up so /health reports the real state. A failure is retried on use.
		if _, err := lazy.Get(ctx); err != nil {
			logger.Warn("embedder is not ready, semantic scoring falls back to lexical overlap", zap.Error(err))
		}
	}

	srv, err := server.New(config.Server, version, fit, model, m, logger.Named("server"))
	if err != nil {
		logger.Fatal("creating the server", zap.Error(err))
	}

	if err := srv.Run(ctx); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
	logger.Info("server stopped")
}
