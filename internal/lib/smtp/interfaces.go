// Package smtp реализует транспорт для отправки почтовых уведомлений
// о критических показателях здоровья.
package smtp

import "io"

// Client описывает минимальный набор SMTP-операций, которые нужны
// отправителю письма. Реализуется обёрткой над *smtp.Client и моками
// в тестах.
type Client interface {
	Mail(from string) error
	Rcpt(to string) error
	Data() (io.WriteCloser, error)
	Quit() error
	Close() error
}

// TransportInterface создаёт готовые к отправке SMTP-соединения.
type TransportInterface interface {
	Connect() (Client, error)
	GetSMTPUser() string
}
