package models

// BirthdayGreeting сообщение, которое планировщик публикует в RabbitMQ
// для каждого счёта, у владельца которого сегодня день рождения.
type BirthdayGreeting struct {
	AccountID   int    `json:"account_id"`
	AccountNo   string `json:"account_no"`
	ClientName  string `json:"client_name"`
	ClientEmail string `json:"client_email"`
	ProductName string `json:"product_name"`
	Date        string `json:"date"`
}
