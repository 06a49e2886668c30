// Package healthtracker собирает основное HTTP-приложение дневника здоровья:
// подключение к базе, миграции, кеш, брокер уведомлений и сервер с маршрутами.
package healthtracker

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/health-tracker/internal/cache"
	"github.com/magabrotheeeer/health-tracker/internal/config"
	"github.com/magabrotheeeer/health-tracker/internal/lib/jwt"
	"github.com/magabrotheeeer/health-tracker/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/health-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/health-tracker/internal/migrations"
	alertservice "github.com/magabrotheeeer/health-tracker/internal/services/alert"
	authservice "github.com/magabrotheeeer/health-tracker/internal/services/auth"
	chartservice "github.com/magabrotheeeer/health-tracker/internal/services/chart"
	recordservice "github.com/magabrotheeeer/health-tracker/internal/services/record"
	statsservice "github.com/magabrotheeeer/health-tracker/internal/services/stats"
	"github.com/magabrotheeeer/health-tracker/internal/storage/repository"
)

// App хранит зависимости HTTP-приложения и управляет его жизненным циклом.
type App struct {
	server   *http.Server
	logger   *slog.Logger
	db       *repository.Storage
	cache    *cache.Cache
	amqpConn *amqp.Connection
}

// New собирает приложение: базу, миграции, кеш, сервисы и маршруты.
// Брокер уведомлений необязателен: при недоступном RabbitMQ записи
// создаются без отправки алертов.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	authService := authservice.NewAuthService(db, jwtMaker)

	var publisher recordservice.AlertPublisher
	var amqpConn *amqp.Connection
	if cfg.RabbitMQURL != "" {
		amqpConn, err = rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
		if err != nil {
			logger.Warn("rabbitmq is unavailable, alerts are disabled", sl.Err(err))
		} else {
			ch, err := rabbitmq.SetupChannel(amqpConn, rabbitmq.GetAlertQueues())
			if err != nil {
				logger.Warn("failed to setup rabbitmq channel, alerts are disabled", sl.Err(err))
			} else {
				publisher = alertservice.NewChannelPublisher(ch)
			}
		}
	}

	recordService := recordservice.NewRecordService(db, cacheRedis, publisher, logger)
	chartService := chartservice.NewChartService(db, cacheRedis, logger)
	statsService := statsservice.NewStatsService(db, cacheRedis, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, authService, recordService, chartService, statsService, db)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server:   srv,
		logger:   logger,
		db:       db,
		cache:    cacheRedis,
		amqpConn: amqpConn,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его по завершению контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if a.amqpConn != nil {
			_ = a.amqpConn.Close()
		}
		a.db.DB.Close()
		return err
	}
}
