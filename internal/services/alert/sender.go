package services

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/magabrotheeeer/health-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/health-tracker/internal/lib/smtp"
	"github.com/magabrotheeeer/health-tracker/internal/models"
)

// metricTitles — человекочитаемые названия метрик для писем.
var metricTitles = map[string]string{
	models.MetricPressure: "артериальное давление",
	models.MetricSpO2:     "сатурация кислорода",
	models.MetricGlucose:  "глюкоза крови",
	models.MetricWeight:   "вес",
}

// SenderService читает уведомления из очереди и рассылает письма.
type SenderService struct {
	transport smtp.TransportInterface
	log       *slog.Logger
}

// NewSenderService создает новый экземпляр SenderService.
func NewSenderService(transport smtp.TransportInterface, log *slog.Logger) *SenderService {
	return &SenderService{
		transport: transport,
		log:       log,
	}
}

// SendAbnormalVitalAlert обрабатывает сообщение очереди "alerts.abnormal":
// разбирает уведомление и отправляет письмо пользователю. Сообщение без
// адреса получателя недоставляемо — оно подтверждается и отбрасывается,
// иначе consumer будет бесконечно возвращать его в очередь.
func (s *SenderService) SendAbnormalVitalAlert(body []byte) error {
	var message models.AlertInfo
	if err := json.Unmarshal(body, &message); err != nil {
		s.log.Error("failed to unmarshal message body", sl.Err(err))
		return fmt.Errorf("error unmarshalling message: %w", err)
	}

	if message.Email == "" {
		s.log.Warn("alert has no recipient email, dropping",
			slog.String("username", message.Username), slog.String("metric", message.Metric))
		return nil
	}

	metricTitle, ok := metricTitles[message.Metric]
	if !ok {
		metricTitle = message.Metric
	}

	to := []string{message.Email}
	subject := "Внимание: критический показатель здоровья"
	bodyText := fmt.Sprintf(
		"Здравствуйте, %s!\n\nЗапись от %s: %s — значение %.1f вышло за безопасные пределы.\n\nПожалуйста, обратитесь к врачу.",
		message.Username, message.RecordedAt.Format("02.01.2006 15:04"), metricTitle, message.Value)

	return s.sendEmail(to, subject, bodyText)
}

func (s *SenderService) sendEmail(to []string, subject, bodyText string) error {
	msg := strings.Join([]string{
		"From: " + s.transport.GetSMTPUser(),
		"To: " + strings.Join(to, ";"),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		bodyText,
	}, "\r\n")

	client, err := s.transport.Connect()
	if err != nil {
		s.log.Error("failed to connect to SMTP server", sl.Err(err))
		return err
	}
	defer client.Close()

	if err := client.Mail(s.transport.GetSMTPUser()); err != nil {
		s.log.Error("failed to set MAIL FROM", "from", s.transport.GetSMTPUser(), "error", sl.Err(err))
		return err
	}

	for _, addr := range to {
		if err := client.Rcpt(addr); err != nil {
			s.log.Error("failed to set RCPT TO", "recipient", addr, "error", sl.Err(err))
			return err
		}
	}

	wc, err := client.Data()
	if err != nil {
		s.log.Error("failed to get Data writer", sl.Err(err))
		return err
	}

	_, err = wc.Write([]byte(msg))
	if err != nil {
		s.log.Error("failed to write email body", sl.Err(err))
		return err
	}

	if err = wc.Close(); err != nil {
		s.log.Error("failed to close Data writer", sl.Err(err))
		return err
	}

	if err = client.Quit(); err != nil {
		s.log.Error("failed to quit SMTP client", sl.Err(err))
		return err
	}

	s.log.Info("email sent successfully", "to", to)
	return nil
}
