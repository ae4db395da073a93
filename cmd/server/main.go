package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"astrolabe/internal/cache"
	apodclient "astrolabe/internal/client/apod"
	"astrolabe/internal/client/contentfeed"
	"astrolabe/internal/config"
	cronrunner "astrolabe/internal/cron"
	"astrolabe/internal/db"
	"astrolabe/internal/ephemeris"
	"astrolabe/internal/events"
	"astrolabe/internal/handler"
	"astrolabe/internal/logger"
	gormrepository "astrolabe/internal/repository/gorm"
	"astrolabe/internal/resolver"
	"astrolabe/internal/sanitize"
	"astrolabe/internal/service"

	_ "astrolabe/docs"
)

func main() {
	cfgPath := os.Getenv("ASTRO_CONFIG")
	if cfgPath == "" {
		cfgPath = "config/config.yaml"
	}

	envOnly := false
	if envOnlyRaw := os.Getenv("ASTRO_ENV_ONLY"); envOnlyRaw != "" {
		envOnly = strings.EqualFold(envOnlyRaw, "true") || envOnlyRaw == "1"
	}

	cfg, err := config.Load(cfgPath, envOnly)
	if err != nil {
		panic(err)
	}

	logger, err := logger.New(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	dbConn, err := db.Open(cfg.DB)
	if err != nil {
		logger.Fatal("db open failed", zap.Error(err))
	}
	defer db.Close(dbConn)

	if err := db.SetTimezone(dbConn, cfg.DB.Timezone); err != nil {
		logger.Warn("failed to set timezone", zap.Error(err))
	}
	if err := db.AutoMigrate(dbConn); err != nil {
		logger.Fatal("auto-migrate failed", zap.Error(err))
	}

	store := gormrepository.New(dbConn.Gorm)
	cacheStore := openCache(cfg.Cache, logger)
	filter := sanitize.NewFilter(nil)
	bus := events.NewBus()

	feedHTTP := &http.Client{Timeout: cfg.ContentFeed.Timeout}
	feedClient := contentfeed.NewClient(feedHTTP, cfg.ContentFeed.BaseURL, cfg.ContentFeed.APIKey)
	apodHTTP := &http.Client{Timeout: cfg.Apod.Timeout}
	apodClient := apodclient.NewClient(apodHTTP, cfg.Apod.BaseURL, cfg.Apod.APIKey)

	syncService := &service.ContentSyncService{
		Store:  store,
		Feed:   feedClient,
		Filter: filter,
		Bus:    bus,
		Logger: logger,
	}
	queryService := &service.ContentQueryService{Repo: store}
	apodService := &service.ApodService{
		Repo:   store,
		Client: apodClient,
		Bus:    bus,
		Logger: logger,
	}

	defaultLoc := time.UTC
	if cfg.Resolver.DefaultTimezone != "" {
		loc, err := time.LoadLocation(cfg.Resolver.DefaultTimezone)
		if err != nil {
			logger.Warn("bad default timezone, using UTC",
				zap.String("tz", cfg.Resolver.DefaultTimezone), zap.Error(err))
		} else {
			defaultLoc = loc
		}
	}
	contentResolver := &resolver.Resolver{
		Repo:            store,
		Cache:           cacheStore,
		Filter:          filter,
		Logger:          logger,
		DefaultLocation: defaultLoc,
		DeviceLocation:  time.Local,
		CacheTTL:        cfg.Resolver.CacheTTL,
		CacheEnabled:    cfg.Resolver.CacheEnabled,
	}

	engine := ephemeris.NewEngine()
	fallback := ephemeris.NewFallback()

	if strings.EqualFold(cfg.App.Env, "dev") {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	healthHandler := &handler.HealthHandler{DB: dbConn}
	healthHandler.Register(router)
	handler.RegisterDocs(router)
	horoscopeHandler := &handler.HoroscopeHandler{Resolver: contentResolver, Logger: logger}
	horoscopeHandler.Register(router)
	ephemerisHandler := &handler.EphemerisHandler{Engine: engine, Fallback: fallback, Logger: logger}
	ephemerisHandler.Register(router)
	contentHandler := &handler.ContentHandler{Sync: syncService, Query: queryService, Logger: logger}
	contentHandler.Register(router)
	apodHandler := &handler.ApodHandler{Service: apodService, Logger: logger}
	apodHandler.Register(router)
	updatesHandler := &handler.UpdatesHandler{Bus: bus, Logger: logger}
	updatesHandler.Register(router)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Cron.Enabled {
		cronRunner := cronrunner.New(logger, ctx)
		_, err = cronRunner.Add(cfg.Cron.ContentSync, func(ctx context.Context) {
			result, err := syncService.Sync(ctx, service.SyncOptions{
				Hemispheres:   cfg.ContentSync.Hemispheres,
				LookaheadDays: cfg.ContentSync.LookaheadDays,
			})
			if err != nil {
				logger.Warn("cron content sync failed", zap.Error(err))
				return
			}
			logger.Info("cron content sync ok",
				zap.Int("scopes", result.Scopes),
				zap.Int("upserted", result.Upserted),
				zap.Int("skipped", result.Skipped),
			)
		})
		if err != nil {
			logger.Warn("cron register content sync failed", zap.Error(err))
		}
		if apodService.Enabled() {
			_, err = cronRunner.Add(cfg.Cron.ApodRefresh, func(ctx context.Context) {
				if _, err := apodService.Refresh(ctx, ""); err != nil {
					logger.Warn("cron apod refresh failed", zap.Error(err))
				}
			})
			if err != nil {
				logger.Warn("cron register apod refresh failed", zap.Error(err))
			}
		}
		cronRunner.Start()
		defer cronRunner.Stop()
	}

	go func() {
		logger.Info("http server listening", zap.String("addr", cfg.Server.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http shutdown failed", zap.Error(err))
	}
}

func openCache(cfg config.CacheConfig, logger *zap.Logger) cache.Store {
	if strings.EqualFold(cfg.Backend, "redis") {
		store, err := cache.NewRedisStoreFromURL(cfg.RedisURL)
		if err != nil {
			logger.Warn("redis cache unavailable, using memory", zap.Error(err))
			return cache.NewMemoryStore()
		}
		return store
	}
	return cache.NewMemoryStore()
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type,Authorization")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
