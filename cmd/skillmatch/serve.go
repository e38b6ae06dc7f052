package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/job-skill-matcher/internal/server"
	"github.com/jonathan/job-skill-matcher/internal/server/ratelimit"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes job matching and skill autocomplete over REST.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides server.port)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := loadRuntime()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if servePort > 0 {
		cfg.Server.Port = servePort
	}

	engine, err := newEngine(cfg)
	if err != nil {
		return err
	}

	ds, err := openSource(cmd.Context(), cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to open job source: %w", err)
	}

	rateConfig := ratelimit.NewConfig(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	rateConfig.Whitelist = ratelimit.ParseIPList(cfg.RateLimit.Whitelist)
	rateConfig.Blacklist = ratelimit.ParseIPList(cfg.RateLimit.Blacklist)

	srv, err := server.New(cmd.Context(), server.Config{
		Port:         cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		FetchTimeout: cfg.Server.FetchTimeout,
		Source:       ds.source,
		Catalog:      ds.catalog,
		Engine:       engine,
		IndexOptions: indexOptions(cfg),
		RateLimit:    rateConfig,
		Logger:       logger,
		OnClose:      ds.Close,
	})
	if err != nil {
		ds.Close()
		return fmt.Errorf("failed to create server: %w", err)
	}

	logger.Info("match engine ready",
		zap.String("policy", string(engine.Policy())),
		zap.String("suggest", cfg.Suggest.Algorithm),
		zap.Int("skills", srv.Index().Len()))

	return srv.Start()
}
