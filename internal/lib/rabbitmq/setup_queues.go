package rabbitmq

// QueueConfig очередь и ключ маршрутизации, с которым она привязана к обменнику.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// Очередь поздравлений с днём рождения.
const (
	BirthdayQueue      = "notification.birthday"
	BirthdayRoutingKey = "birthday"
)

// GetNotificationQueues возвращает очереди, которые нужны планировщику и отправителю.
func GetNotificationQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: BirthdayQueue, RoutingKey: BirthdayRoutingKey},
	}
}
