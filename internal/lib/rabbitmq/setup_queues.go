package rabbitmq

// Имена обменника и маршрутов пайплайна алертов. Планировщик публикует
// с этими ключами, отправитель подписывается на соответствующие очереди.
const (
	AlertExchange      = "alerts"
	AbnormalQueue      = "alerts.abnormal"
	AbnormalRoutingKey = "abnormal"
)

// QueueConfig связывает очередь с ключом маршрутизации в обменнике алертов.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// GetAlertQueues возвращает очереди пайплайна алертов.
func GetAlertQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: AbnormalQueue, RoutingKey: AbnormalRoutingKey},
		// при необходимости дополнительные очереди для других воркеров
	}
}
