// Package chart реализует HTTP-обработчик данных графиков здоровья.
//
// Масштаб окна и смещение приходят в query-строке, метрика — в пути.
// Опорный момент времени фиксируется один раз на запрос, чтобы
// вычисление окна было детерминированным.
package chart

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/health-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/health-tracker/internal/http/response"
	"github.com/magabrotheeeer/health-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/health-tracker/internal/models"
)

// Handler управляет HTTP-запросами данных графиков.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
	now      func() time.Time // подменяется в тестах
}

// Service описывает интерфейс бизнес-логики построения графика.
type Service interface {
	BuildChart(ctx context.Context, username string, req models.DummyChartFilter, now time.Time) (*models.ChartData, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
		now:      time.Now,
	}
}

// ServeHTTP godoc
// @Summary Данные графика метрики
// @Description Возвращает окно дат, заголовок и точки графика для метрики. Масштаб задается параметром granularity, смещение назад — offset.
// @Tags Charts
// @Produce  json
// @Param metric path string true "Метрика: pressure, spo2, glucose, weight"
// @Param granularity query string true "Масштаб: week, month, 6months, year"
// @Param offset query int false "Сколько периодов назад (по умолчанию 0)"
// @Success 200 {object} map[string]any "Данные графика"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /charts/{metric} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.chart"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	offset := 0
	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		parsed, err := strconv.Atoi(offsetStr)
		if err != nil {
			log.Error("invalid offset format", sl.Err(err))
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error("invalid offset"))
			return
		}
		offset = parsed
	}

	req := models.DummyChartFilter{
		Metric:      chi.URLParam(r, "metric"),
		Granularity: r.URL.Query().Get("granularity"),
		Offset:      offset,
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated", slog.String("metric", req.Metric),
		slog.String("granularity", req.Granularity), slog.Int("offset", req.Offset))

	username, ok := r.Context().Value(middlewarectx.User).(string)
	if !ok || username == "" {
		log.Error("username not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	// Опорный момент читается ровно один раз на запрос.
	now := h.now()

	data, err := h.service.BuildChart(r.Context(), username, req, now)
	if err != nil {
		log.Error("failed to build chart", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to build chart"))
		return
	}

	log.Info("chart built", slog.String("title", data.Title), slog.Int("points", len(data.Points)))
	render.JSON(w, r, response.StatusOKWithData(data))
}
