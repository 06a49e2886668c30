// Package services содержит конвейер уведомлений о критических показателях:
// планировщик находит опасные записи и публикует их в RabbitMQ,
// отправитель читает очередь и рассылает письма.
package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/health-tracker/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/health-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/health-tracker/internal/models"
)

// AlertRepository ищет записи с показателями за критическими пределами.
type AlertRepository interface {
	FindAbnormalVitalsSince(ctx context.Context, since time.Time) ([]*models.AlertInfo, error)
}

// SchedulerService периодически сканирует записи и публикует уведомления.
type SchedulerService struct {
	repo     AlertRepository
	interval time.Duration
	log      *slog.Logger
}

// NewSchedulerService создает новый экземпляр SchedulerService.
func NewSchedulerService(repo AlertRepository, interval time.Duration, log *slog.Logger) *SchedulerService {
	return &SchedulerService{
		repo:     repo,
		interval: interval,
		log:      log,
	}
}

// FindAbnormalVitals запускает периодический поиск критических показателей
// и публикацию уведомлений, пока контекст не отменен.
func (s *SchedulerService) FindAbnormalVitals(ctx context.Context, channel *amqp.Channel) {
	s.runFindAbnormalVitals(ctx, channel)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.runFindAbnormalVitals(ctx, channel)
		case <-ctx.Done():
			return
		}
	}
}

func (s *SchedulerService) runFindAbnormalVitals(ctx context.Context, channel *amqp.Channel) {
	s.log.Info("starting scan for abnormal vitals")
	since := time.Now().UTC().Add(-s.interval)

	alerts, err := s.repo.FindAbnormalVitalsSince(ctx, since)
	if err != nil {
		s.log.Error("failed to find abnormal vitals", sl.Err(err))
		return
	}
	if len(alerts) == 0 {
		s.log.Info("no abnormal vitals found")
		return
	}
	s.log.Info("found abnormal vitals", "count", len(alerts))
	for _, alert := range alerts {
		err = rabbitmq.PublishMessage(channel, rabbitmq.AlertExchange, rabbitmq.AbnormalRoutingKey, alert)
		if err != nil {
			s.log.Error("failed to publish message", sl.Err(err))
		}
	}
}

// ChannelPublisher публикует одиночное уведомление в обменник "alerts".
// Используется основным приложением при создании критической записи.
type ChannelPublisher struct {
	ch *amqp.Channel
}

// NewChannelPublisher создает новый экземпляр ChannelPublisher.
func NewChannelPublisher(ch *amqp.Channel) *ChannelPublisher {
	return &ChannelPublisher{ch: ch}
}

// PublishAlert отправляет уведомление в очередь рассылки.
func (p *ChannelPublisher) PublishAlert(alert models.AlertInfo) error {
	return rabbitmq.PublishMessage(p.ch, rabbitmq.AlertExchange, rabbitmq.AbnormalRoutingKey, alert)
}
