// @title                       Employee API
// @version                     1.0
// @description                 Employee and equipment records behind signup, login and role-based access.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the JWT.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/staffhub/employee-api/internal/api"
	"github.com/staffhub/employee-api/internal/api/handler"
	"github.com/staffhub/employee-api/internal/core/service"
	mongostore "github.com/staffhub/employee-api/internal/infrastructure/db/mongo"
	redisstore "github.com/staffhub/employee-api/internal/infrastructure/db/redis"
	"github.com/staffhub/employee-api/internal/infrastructure/queue"
	"github.com/staffhub/employee-api/internal/infrastructure/security"
	"github.com/staffhub/employee-api/internal/pkg/config"
	"github.com/staffhub/employee-api/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "employee-api",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Stores ---
	mongoClient, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connect")
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(dctx)
	}()

	rdb, err := redisstore.Connect(ctx, redisstore.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connect")
	}
	defer rdb.Close()

	users := mongostore.NewUserRepository(db)
	employees := mongostore.NewEmployeeRepository(db)
	auditLog := mongostore.NewAuditRepository(db)
	if err := mongostore.EnsureIndexes(ctx, users, employees, auditLog); err != nil {
		log.Fatal().Err(err).Msg("mongo indexes")
	}

	// --- Security ---
	tokens, err := security.NewJWTService(security.TokenConfig{
		Secret: cfg.Auth.JWTSecret,
		Issuer: cfg.Auth.JWTIssuer,
		TTL:    cfg.Auth.JWTTTL,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("token service")
	}
	hasher := security.NewBcryptHasher(cfg.Auth.BcryptCost)

	// --- Services ---
	authService := service.NewAuthService(users, hasher, tokens, service.AuthOptions{
		AllowSignupRole: cfg.Auth.AllowSignupRole,
		Throttle:        redisstore.NewLoginThrottle(rdb, cfg.Auth.LoginMaxAttempts, cfg.Auth.LoginWindow),
	}, log)

	dispatcher := queue.NewDispatcher(cfg.Audit.Workers, service.NewAuditService(auditLog, log), log)
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	dispatcher.Start(workerCtx)

	employeeService := service.NewEmployeeService(employees, dispatcher, log)

	// --- HTTP ---
	e := api.NewRouter(api.Deps{
		Log:       log,
		Auth:      authService,
		Tokens:    tokens,
		Employees: employeeService,
		Health: map[string]handler.Check{
			"mongodb": handler.MongoCheck(db),
			"redis":   handler.RedisCheck(rdb),
		},
		CORSAllowedOrigins: cfg.HTTP.CORSAllowedOrigins,
		AuthRateLimit:      cfg.HTTP.AuthRateLimit,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	case err := <-errCh:
		log.Error().Err(err).Msg("server crashed")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
		_ = e.Close()
	}

	// Requests are drained; flush pending audit entries before closing stores.
	stopWorkers()
	dispatcher.Wait()

	log.Info().Msg("shutdown complete")
}
