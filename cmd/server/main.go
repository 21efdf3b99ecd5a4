package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cristhianleonardo/ventas-inteligentes/internal/auth"
	"github.com/cristhianleonardo/ventas-inteligentes/internal/config"
	"github.com/cristhianleonardo/ventas-inteligentes/internal/httpapi/handler"
	"github.com/cristhianleonardo/ventas-inteligentes/internal/httpapi/router"
	"github.com/cristhianleonardo/ventas-inteligentes/internal/logger"
	"github.com/cristhianleonardo/ventas-inteligentes/internal/recommender"
	"github.com/cristhianleonardo/ventas-inteligentes/internal/repository"
	"github.com/cristhianleonardo/ventas-inteligentes/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	defer logger.Sync(log) //nolint:errcheck

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := run(cfg, log); err != nil {
		log.Fatal("server exited", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := repository.Migrate(cfg.Database.URL(), cfg.Database.MigrationsPath, log); err != nil {
		return err
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.Database.URL())
	if err != nil {
		return err
	}
	poolCfg.MaxConns = cfg.Database.MaxConns

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return err
	}
	log.Info("connected to postgres", zap.String("host", cfg.Database.Host))

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	cartRepo := repository.NewCart(pool)
	productRepo := repository.NewProduct(pool)
	orderRepo := repository.NewOrder(pool)
	userRepo := repository.NewUser(pool)
	txScope := repository.NewTxScope(pool)

	cartService := service.NewCartService(cartRepo, productRepo, txScope, log)
	catalogService := service.NewCatalogService(productRepo)
	userService := service.NewUserService(userRepo)
	orderService := service.NewOrderService(orderRepo, cartRepo, txScope, log)

	jwtService := auth.NewJWTService(cfg.JWT)

	rec := recommender.NewCaching(
		recommender.NewClient(cfg.AI), rdb, cfg.AI.CacheTTL, log)

	handlers := router.Handlers{
		Auth:           handler.NewAuthHandler(userService, jwtService, log),
		User:           handler.NewUserHandler(userService, log),
		Product:        handler.NewProductHandler(catalogService, log),
		Cart:           handler.NewCartHandler(cartService, log),
		Order:          handler.NewOrderHandler(orderService, log),
		Recommendation: handler.NewRecommendationHandler(rec, log),
	}

	engine := router.New(handlers, jwtService, log)

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
