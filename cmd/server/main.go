package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ziggler-bot/internal/cart"
	"ziggler-bot/internal/category"
	"ziggler-bot/internal/config"
	"ziggler-bot/internal/db"
	"ziggler-bot/internal/favorite"
	"ziggler-bot/internal/handler"
	"ziggler-bot/internal/logger"
	"ziggler-bot/internal/metrics"
	"ziggler-bot/internal/middleware"
	"ziggler-bot/internal/order"
	"ziggler-bot/internal/product"
	"ziggler-bot/internal/user"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

var (
	initDBFunc      = db.InitDB
	startServerFunc = startServer
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.LoadServerConfigE()
	if err != nil {
		return err
	}

	if err := logger.Init(logger.Options{Env: cfg.AppEnv, Level: cfg.LogLevel}); err != nil {
		return err
	}
	defer logger.Sync()

	database := initDBFunc(cfg)
	defer database.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger.L().Info("server starting",
		zap.String("port", cfg.AppPort),
		zap.String("env", cfg.AppEnv),
		zap.Int("admins", len(cfg.AdminIDs)),
	)
	return startServerFunc(":"+cfg.AppPort, newServer(ctx, cfg, database))
}

// newServer wires repositories, services and the HTTP stack. ctx bounds the
// rate limiter's background cleanup.
func newServer(ctx context.Context, cfg *config.Config, database *sql.DB) http.Handler {
	productSvc := product.NewService(product.NewRepository(database))
	categorySvc := category.NewService(category.NewRepository(database))
	cartSvc := cart.NewService(cart.NewRepository(database), productSvc)
	orderSvc := order.NewService(order.NewRepository(database), cartSvc)
	userSvc := user.NewService(user.NewRepository(database))
	favoriteSvc := favorite.NewService(favorite.NewRepository(database), productSvc)

	reg := metrics.NewRegistry()
	contacts := handler.Contacts{SupportEmail: cfg.SupportEmail}
	h := handler.New(categorySvc, productSvc, cartSvc, orderSvc, userSvc, favoriteSvc, reg, contacts)
	router := setupRouter(h, cfg, middleware.NewRateLimiter(ctx))

	var stack http.Handler = router
	stack = reg.Middleware(stack)
	stack = logger.LoggingMiddleware(stack)
	stack = logger.RequestIDMiddleware(stack)
	stack = middleware.Recover(stack)
	return stack
}

func setupRouter(h *handler.Handler, cfg *config.Config, limiter *middleware.RateLimiter) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.Identity([]byte(cfg.GatewaySecret)))
	r.Use(limiter.Middleware)
	h.Routes(r, cfg.IsAdmin)
	return r
}

func startServer(addr string, h http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
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

	logger.L().Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
