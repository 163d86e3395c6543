package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kacchi/config"
	"kacchi/handler"
	"kacchi/repository"
	"kacchi/repository/memory"
	"kacchi/services"
	"kacchi/utils"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("invalid configuration", "err", err)
	}

	utils.InitLogger(cfg.App.LogLevel, cfg.App.IsProduction())
	utils.Production = cfg.App.IsProduction()
	utils.InitValidator()
	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	store, err := openStore(ctx, cfg.Database)
	if err != nil {
		log.Fatal("failed to open store", "driver", cfg.Database.Driver, "err", err)
	}

	deps := handler.Deps{
		Store:          store,
		Tokens:         services.NewTokenService(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Expiration),
		Limiter:        services.NoopLoginLimiter{},
		Media:          services.DisabledPresigner{},
		AllowedOrigins: cfg.App.CORSOrigins,
		MaxBodyBytes:   cfg.App.MaxBodyBytes,
	}

	if cfg.Redis.URL != "" {
		client, err := services.NewRedisClient(ctx, cfg.Redis.URL)
		if err != nil {
			log.Fatal("failed to connect to Redis", "err", err)
		}
		defer client.Close()
		deps.Limiter = services.NewRedisLoginLimiter(client, cfg.Login.MaxAttempts, cfg.Login.Window)
		log.Info("login throttling enabled", "maxAttempts", cfg.Login.MaxAttempts, "window", cfg.Login.Window)
	}

	if cfg.S3.Enabled() {
		presigner, err := services.NewS3Presigner(ctx, services.S3Options{
			Region:    cfg.S3.Region,
			Endpoint:  cfg.S3.Endpoint,
			Bucket:    cfg.S3.Bucket,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
		})
		if err != nil {
			log.Fatal("failed to configure S3", "err", err)
		}
		deps.Media = presigner
		log.Info("media uploads enabled", "bucket", cfg.S3.Bucket)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           handler.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Info("server starting", "addr", srv.Addr, "env", cfg.App.Env, "store", cfg.Database.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", "err", err)
		}
	}()

	sig := <-signalChan
	log.Info("shutdown requested", "signal", sig.String())

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown failed", "err", err)
	}
	if err := store.Close(shutdownCtx); err != nil {
		log.Error("store close failed", "err", err)
	}
	log.Info("server shutdown complete")
}

func openStore(ctx context.Context, db config.DatabaseConfig) (*repository.Store, error) {
	if db.Driver == config.DriverMemory {
		log.Warn("using in-memory store; data is lost on restart")
		return memory.NewStore(), nil
	}

	client, err := utils.ConnectMongo(ctx, db.MongoOptions())
	if err != nil {
		return nil, err
	}
	if err := repository.SetupIndexes(ctx, client.Database(db.DatabaseName)); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return repository.NewMongoStore(client, db.DatabaseName), nil
}
