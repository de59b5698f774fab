package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/common/webapi"
	"go.uber.org/zap"

	"github.com/xxxsen/skillmatch/internal/ai"
	"github.com/xxxsen/skillmatch/internal/catalog"
	"github.com/xxxsen/skillmatch/internal/config"
	"github.com/xxxsen/skillmatch/internal/db"
	"github.com/xxxsen/skillmatch/internal/embedcache"
	"github.com/xxxsen/skillmatch/internal/handler"
	"github.com/xxxsen/skillmatch/internal/job"
	"github.com/xxxsen/skillmatch/internal/matchcache"
	"github.com/xxxsen/skillmatch/internal/middleware"
	"github.com/xxxsen/skillmatch/internal/recommend"
	"github.com/xxxsen/skillmatch/internal/repo"
	"github.com/xxxsen/skillmatch/internal/schedule"
	"github.com/xxxsen/skillmatch/internal/service"
)

func runServer(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	logger := logutil.GetLogger(ctx)
	logger.Info("starting server",
		zap.Int("port", cfg.Port),
		zap.Bool("database", cfg.Database.Enabled()),
		zap.Bool("cache", cfg.Cache.URL != ""),
	)

	var conn *sql.DB
	if cfg.Database.Enabled() {
		var err error
		conn, err = db.Open(cfg.Database)
		if err != nil {
			return fmt.Errorf("open db: %w", err)
		}
		defer func() { _ = conn.Close() }()
		if err := db.ApplyMigrations(ctx, conn); err != nil {
			return fmt.Errorf("migrations: %w", err)
		}
		logger.Info("database connected")
	} else {
		logger.Warn("no database configured, account routes disabled")
	}

	var embeddingRepo *repo.EmbeddingCacheRepo
	var embedder ai.IEmbedder
	if !strings.EqualFold(cfg.Recommend.Mode, recommend.ModeKeyword) {
		var cacheRepo embedcache.IEmbeddingCacheRepo
		if conn != nil && cfg.Embedding.PersistCache {
			embeddingRepo = repo.NewEmbeddingCacheRepo(conn)
			cacheRepo = embeddingRepo
		}
		e, err := buildEmbedder(cfg, cacheRepo)
		if err != nil {
			return err
		}
		embedder = e
	}
	recommender, err := recommend.New(ctx, recommend.Config{
		Mode:      cfg.Recommend.Mode,
		TopK:      cfg.Recommend.TopK,
		BatchSize: cfg.Embedding.BatchSize,
	}, catalog.SideHustles(), embedder)
	if err != nil {
		return fmt.Errorf("init recommender: %w", err)
	}
	logger.Info("recommender ready", zap.String("mode", recommender.Mode()), zap.Bool("dedup", recommender.Dedup()))

	backend, err := matchcache.Open(ctx, cfg.Cache.URL)
	if err != nil {
		logger.Error("response cache unavailable, proceeding without caching", zap.Error(err))
		backend = nil
	}
	cache := matchcache.New(backend, time.Duration(cfg.Cache.TTLSeconds)*time.Second)
	defer func() { _ = cache.Close() }()

	matchService := service.NewMatchService(recommender, recommend.NewAdvisor(catalog.Interests(), catalog.Habits()), cache)
	deps := handler.RouterDeps{
		Match:           handler.NewMatchHandler(matchService),
		JWTSecret:       []byte(cfg.JWTSecret),
		RateLimitWindow: time.Duration(cfg.RateLimitSeconds) * time.Second,
	}
	if conn != nil {
		userRepo := repo.NewUserRepo(conn)
		profileRepo := repo.NewProfileRepo(conn)
		authService := service.NewAuthService(userRepo, []byte(cfg.JWTSecret), time.Hour*time.Duration(cfg.JWTTTLHours))
		dashboardService := service.NewDashboardService(userRepo, profileRepo, matchService)
		deps.Auth = handler.NewAuthHandler(authService)
		deps.Dashboard = handler.NewDashboardHandler(dashboardService)
	}

	scheduler := schedule.NewCronScheduler()
	if embeddingRepo != nil {
		cleanup := job.NewEmbeddingCacheCleanupJob(embeddingRepo, cfg.Jobs.EmbeddingCacheMaxAgeDays)
		if err := scheduler.AddJob(cleanup, cfg.Jobs.EmbeddingCacheCleanupSpec); err != nil {
			return err
		}
	}
	scheduler.Start(ctx)
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		scheduler.Stop(stopCtx)
	}()

	addr := fmt.Sprintf("0.0.0.0:%d", cfg.Port)
	engine, err := webapi.NewEngine(
		"/",
		addr,
		webapi.WithRegister(func(group *gin.RouterGroup) {
			handler.RegisterRoutes(group, deps)
		}),
		webapi.WithExtraMiddlewares(
			middleware.CORS(cfg.AllowedOrigins),
			middleware.RequestID(),
			gzip.Gzip(gzip.DefaultCompression),
		),
	)
	if err != nil {
		return fmt.Errorf("init web engine: %w", err)
	}
	logger.Info("http server listening", zap.String("addr", addr), zap.Strings("allowed_origins", cfg.AllowedOrigins))

	go func() {
		if err := engine.Run(); err != nil && err != http.ErrServerClosed {
			logutil.GetLogger(context.Background()).Error("server error", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("server stopping...")
	return nil
}

// buildEmbedder chains the primary backend and its fallbacks, then layers
// the persistent and in-process caches on top.
func buildEmbedder(cfg *config.Config, cacheRepo embedcache.IEmbeddingCacheRepo) (ai.IEmbedder, error) {
	backends := append([]config.EmbeddingBackend{cfg.Embedding.EmbeddingBackend}, cfg.Embedding.Fallbacks...)
	entries := make([]ai.EmbedderEntry, 0, len(backends))
	for _, b := range backends {
		var args interface{}
		if b.Data != nil {
			args = b.Data
		}
		provider, err := ai.NewEmbedProvider(b.Provider, args)
		if err != nil {
			return nil, fmt.Errorf("init embedding provider %s: %w", b.Provider, err)
		}
		name := b.Provider + "/" + b.Model
		e := ai.NewEmbedder(provider, b.Model)
		if cfg.Embedding.Breaker && !strings.EqualFold(b.Provider, "hash") {
			e = ai.WrapBreaker(e, name, ai.DefaultBreakerConfig())
		}
		entries = append(entries, ai.EmbedderEntry{Name: name, Embedder: e})
	}
	embedder := ai.NewGroupEmbedder(entries)
	if cacheRepo != nil {
		embedder = embedcache.WrapDBCacheToEmbedder(embedder, cacheRepo)
	}
	embedder = embedcache.WrapLruCacheToEmbedder(embedder, cfg.Embedding.LRUSize, time.Duration(cfg.Embedding.LRUTTLSeconds)*time.Second)
	return embedder, nil
}
