package mail

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/ipt-demo/hr-portal/backend/internal/domain"
)

// Channel 是 Publisher 需要的 amqp.Channel 方法
type Channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// DeclareQueue 声明持久化的邮件队列，生产者和消费者都需要调用
func DeclareQueue(ch *amqp.Channel, name string) (amqp.Queue, error) {
	return ch.QueueDeclare(
		name,
		true,  // 持久化
		false, // 没有消费者时不删除
		false,
		false,
		nil,
	)
}

// Publisher 把邮件投递到消息队列，由 mail worker 负责真正发送
type Publisher struct {
	ch        Channel
	queue     string
	timeout   time.Duration
	verifyURL string
}

func NewPublisher(ch Channel, queue string, timeout time.Duration, verifyURL string) *Publisher {
	return &Publisher{
		ch:        ch,
		queue:     queue,
		timeout:   timeout,
		verifyURL: verifyURL,
	}
}

func (p *Publisher) SendVerification(acc *domain.Account) error {
	return p.publish(domain.MailMessage{
		Type: domain.MailTypeVerifyEmail,
		To:   acc.Email,
		Data: domain.VerifyEmailMailData{
			FullName:  acc.FullName(),
			Email:     acc.Email,
			VerifyURL: p.verifyURL,
		},
	})
}

func (p *Publisher) publish(msg domain.MailMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	return p.ch.PublishWithContext(
		ctx,
		"",
		p.queue,
		true,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
}

// Discard 在没有配置消息队列时使用，只记录日志
type Discard struct {
	Logger *slog.Logger
}

func (d Discard) SendVerification(acc *domain.Account) error {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("未配置消息队列，跳过验证邮件", "email", acc.Email)
	return nil
}
