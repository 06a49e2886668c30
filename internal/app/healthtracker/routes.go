package healthtracker

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/health-tracker/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/health-tracker/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/health-tracker/internal/http/handlers/chart"
	diseasecreate "github.com/magabrotheeeer/health-tracker/internal/http/handlers/disease/create"
	diseaselist "github.com/magabrotheeeer/health-tracker/internal/http/handlers/disease/list"
	diseaseremove "github.com/magabrotheeeer/health-tracker/internal/http/handlers/disease/remove"
	"github.com/magabrotheeeer/health-tracker/internal/http/handlers/health"
	mealcreate "github.com/magabrotheeeer/health-tracker/internal/http/handlers/meal/create"
	meallist "github.com/magabrotheeeer/health-tracker/internal/http/handlers/meal/list"
	mealremove "github.com/magabrotheeeer/health-tracker/internal/http/handlers/meal/remove"
	"github.com/magabrotheeeer/health-tracker/internal/http/handlers/stats"
	vitalcreate "github.com/magabrotheeeer/health-tracker/internal/http/handlers/vital/create"
	vitallist "github.com/magabrotheeeer/health-tracker/internal/http/handlers/vital/list"
	vitalremove "github.com/magabrotheeeer/health-tracker/internal/http/handlers/vital/remove"
	"github.com/magabrotheeeer/health-tracker/internal/http/middlewarectx"
	authservice "github.com/magabrotheeeer/health-tracker/internal/services/auth"
	chartservice "github.com/magabrotheeeer/health-tracker/internal/services/chart"
	recordservice "github.com/magabrotheeeer/health-tracker/internal/services/record"
	statsservice "github.com/magabrotheeeer/health-tracker/internal/services/stats"
	"github.com/magabrotheeeer/health-tracker/internal/storage/repository"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger,
	authService *authservice.AuthService,
	recordService *recordservice.RecordService,
	chartService *chartservice.ChartService,
	statsService *statsservice.StatsService,
	db *repository.Storage,
) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
		middlewarectx.MetricsMiddleware,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, authService).ServeHTTP)
		r.Post("/login", login.New(logger, authService).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(authService, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Post("/vitals", vitalcreate.New(logger, recordService).ServeHTTP)
			r.Get("/vitals", vitallist.New(logger, recordService).ServeHTTP)
			r.Delete("/vitals/{id}", vitalremove.New(logger, recordService).ServeHTTP)

			r.Post("/meals", mealcreate.New(logger, recordService).ServeHTTP)
			r.Get("/meals", meallist.New(logger, recordService).ServeHTTP)
			r.Delete("/meals/{id}", mealremove.New(logger, recordService).ServeHTTP)

			r.Post("/diseases", diseasecreate.New(logger, recordService).ServeHTTP)
			r.Get("/diseases", diseaselist.New(logger, recordService).ServeHTTP)
			r.Delete("/diseases/{id}", diseaseremove.New(logger, recordService).ServeHTTP)

			r.Get("/charts/{metric}", chart.New(logger, chartService).ServeHTTP)
			r.Get("/admin/stats", stats.New(logger, statsService).ServeHTTP)
		})
	})

	r.Get("/health", health.New(logger, func() error {
		return repository.CheckDatabaseReady(db)
	}).ServeHTTP)

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
