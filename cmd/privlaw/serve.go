package main

import (
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spektr-org/privlaw/engine"
	"github.com/spektr-org/privlaw/helpers"
	"github.com/spektr-org/privlaw/server"
)

var (
	serveListen string
	serveSample bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the interactive dashboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		if serveListen != "" {
			cfg.Server.Listen = serveListen
			if err := cfg.Validate(); err != nil {
				return err
			}
		}

		var (
			tbl *engine.Table
			err error
		)
		if serveSample {
			tbl, err = helpers.GenerateSample(cfg.Data.SampleSize, cfg.Data.SampleSeed)
		} else {
			tbl, err = loadTable()
		}
		if err != nil {
			return err
		}

		static, err := server.NewStaticHandler()
		if err != nil {
			return fmt.Errorf("load ui assets: %w", err)
		}
		handler, err := server.NewHandler(tbl, server.Options{
			Schema:      dataset,
			SessionTTL:  cfg.GetSessionTTL(),
			MaxSessions: cfg.Sessions.MaxSessions,
		}, logger, static)
		if err != nil {
			return err
		}

		listener, err := net.Listen("tcp", cfg.Server.Listen)
		if err != nil {
			return fmt.Errorf("listen on %s: %w", cfg.Server.Listen, err)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		logger.Info("serving dashboard",
			zap.String("addr", listener.Addr().String()),
			zap.Int("records", tbl.Len()),
			zap.Bool("synthetic", tbl.Report().Synthetic),
		)
		return server.Serve(ctx, server.NewHTTPServer(cfg, handler), listener, cfg.GetShutdownTimeout(), logger)
	},
}

func init() {
	serveCmd.Flags().StringVarP(&serveListen, "listen", "l", "", "Listen address (overrides config)")
	serveCmd.Flags().BoolVar(&serveSample, "sample", false, "Serve synthetic sample data")
}
