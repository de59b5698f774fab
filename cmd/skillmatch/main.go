package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logger"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/skillmatch/internal/ai"
	"github.com/xxxsen/skillmatch/internal/catalog"
	"github.com/xxxsen/skillmatch/internal/config"
	"github.com/xxxsen/skillmatch/internal/db"
	"github.com/xxxsen/skillmatch/internal/recommend"
	"github.com/xxxsen/skillmatch/internal/repo"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "skillmatch",
		Short: "skill to side hustle recommendation backend",
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config.json (optional, env overrides apply)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run the http server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			return runServer(cfg)
		},
	}

	var skillsFlag []string
	var modeFlag string
	matchCmd := &cobra.Command{
		Use:   "match",
		Short: "print recommendations for a list of skills",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if modeFlag != "" {
				cfg.Recommend.Mode = modeFlag
			}
			return runMatch(cmd.Context(), cfg, append(skillsFlag, args...))
		},
	}
	matchCmd.Flags().StringSliceVar(&skillsFlag, "skills", nil, "comma separated skills")
	matchCmd.Flags().StringVar(&modeFlag, "mode", "", "semantic or keyword, overrides config")

	warmCmd := &cobra.Command{
		Use:   "warm",
		Short: "embed the catalog into the persisted embedding cache",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			return runWarm(cmd.Context(), cfg)
		},
	}

	rootCmd.AddCommand(runCmd, matchCmd, warmCmd)

	if err := rootCmd.Execute(); err != nil {
		logutil.GetLogger(context.Background()).Fatal("startup error", zap.Error(err))
	}
}

func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	logger.Init(
		cfg.LogConfig.File,
		cfg.LogConfig.Level,
		int(cfg.LogConfig.FileCount),
		int(cfg.LogConfig.FileSize),
		int(cfg.LogConfig.KeepDays),
		cfg.LogConfig.Console,
	)
	logutil.GetLogger(context.Background()).Info("config loaded",
		zap.String("config", path),
		zap.String("mode", cfg.Recommend.Mode),
		zap.String("embedding_provider", cfg.Embedding.Provider),
	)
	return cfg, nil
}

// runMatch recommends offline without the database or response cache.
func runMatch(ctx context.Context, cfg *config.Config, skills []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	var embedder ai.IEmbedder
	if !strings.EqualFold(cfg.Recommend.Mode, recommend.ModeKeyword) {
		e, err := buildEmbedder(cfg, nil)
		if err != nil {
			return err
		}
		embedder = e
	}
	rec, err := recommend.New(ctx, recommend.Config{
		Mode:      cfg.Recommend.Mode,
		TopK:      cfg.Recommend.TopK,
		BatchSize: cfg.Embedding.BatchSize,
	}, catalog.SideHustles(), embedder)
	if err != nil {
		return err
	}
	for _, line := range recommend.Recommend(ctx, rec, skills) {
		fmt.Fprintln(os.Stdout, line)
	}
	return nil
}

// runWarm fills the postgres embedding cache so a later server start does
// not have to call the embedding backend for the catalog.
func runWarm(ctx context.Context, cfg *config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if !cfg.Database.Enabled() {
		return fmt.Errorf("warm needs a database")
	}
	conn, err := db.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer func() { _ = conn.Close() }()
	if err := db.ApplyMigrations(ctx, conn); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	embedder, err := buildEmbedder(cfg, repo.NewEmbeddingCacheRepo(conn))
	if err != nil {
		return err
	}
	rec, err := recommend.NewSemanticRecommender(ctx, catalog.SideHustles(), embedder, recommend.WithBatchSize(cfg.Embedding.BatchSize))
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "cached %d catalog embeddings (dim=%d, model=%s)\n", len(rec.Entries()), rec.Dimension(), embedder.ModelName())
	return nil
}
