package worker

import (
	"context"
	"encoding/json"
	"log"

	"github.com/hirwaf/task-management-be/internal/entity"
	"github.com/hirwaf/task-management-be/internal/infrastructure/client"
	"github.com/hirwaf/task-management-be/internal/repository"
	"github.com/hirwaf/task-management-be/internal/usecase"
	amqp "github.com/rabbitmq/amqp091-go"
)

type AuditWorker struct {
	amqpURL   string
	auditRepo repository.ITaskAuditRepository
}

func NewAuditWorker(amqpURL string, auditRepo repository.ITaskAuditRepository) *AuditWorker {
	return &AuditWorker{
		amqpURL:   amqpURL,
		auditRepo: auditRepo,
	}
}

func (w *AuditWorker) Start(ctx context.Context) {
	// Создаем отдельное соединение и канал для consumer'а
	conn, err := amqp.Dial(w.amqpURL)
	if err != nil {
		log.Printf("❌ Ошибка подключения к RabbitMQ для воркера: %v", err)
		return
	}
	defer conn.Close()

	channel, err := conn.Channel()
	if err != nil {
		log.Printf("❌ Ошибка создания канала для воркера: %v", err)
		return
	}
	defer channel.Close()

	// Убеждаемся, что очередь существует
	_, err = channel.QueueDeclare(
		client.AuditQueue, // name
		true,              // durable
		false,             // delete when unused
		false,             // exclusive
		false,             // no-wait
		nil,               // arguments
	)
	if err != nil {
		log.Printf("❌ Ошибка объявления очереди: %v", err)
		return
	}

	msgs, err := channel.Consume(
		client.AuditQueue, // queue
		"audit_worker",    // consumer tag
		false,             // auto-ack
		false,             // exclusive
		false,             // no-local
		false,             // no-wait
		nil,               // args
	)
	if err != nil {
		log.Printf("❌ Ошибка создания consumer: %v", err)
		return
	}

	log.Println("✅ Audit Worker запущен. Ожидаем сообщения...")

	for {
		select {
		case <-ctx.Done():
			log.Println("🛑 Audit Worker остановлен")
			return
		case msg, ok := <-msgs:
			if !ok {
				log.Println("Канал сообщений закрыт")
				return
			}
			w.processMessage(msg)
		}
	}
}

func (w *AuditWorker) processMessage(msg amqp.Delivery) {
	ctx := context.Background()

	var auditMsg entity.AuditMessage
	if err := json.Unmarshal(msg.Body, &auditMsg); err != nil {
		log.Printf("❌ Ошибка парсинга сообщения: %v", err)
		msg.Nack(false, false) // Не возвращаем в очередь
		return
	}

	taskAudit := &entity.TaskAudit{
		Action:    auditMsg.Action,
		UserID:    auditMsg.UserID,
		EntityID:  auditMsg.EntityID,
		OldValues: usecase.MarshalValues(auditMsg.OldValues),
		NewValues: usecase.MarshalValues(auditMsg.NewValues),
		Changes:   usecase.MarshalValues(auditMsg.Changes),
	}

	if err := w.auditRepo.Create(ctx, taskAudit); err != nil {
		log.Printf("❌ Ошибка сохранения аудита: %v", err)
		msg.Nack(false, true) // Возвращаем в очередь для повторной обработки
		return
	}

	msg.Ack(false)
}
