package rabbit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"github.com/aslanbek-j/accounts-service/internal/domain/models"
	"github.com/aslanbek-j/accounts-service/pkg/logger"
	wrap "github.com/aslanbek-j/accounts-service/pkg/logger/wrapper"
	"github.com/aslanbek-j/accounts-service/pkg/rabbit"
)

const (
	AccountsExchange = "accounts_topic"

	keyUserRegistered  = "user.registered"
	keyPasswordChanged = "user.password_changed"
)

// AccountEvent is the payload published for account lifecycle events.
type AccountEvent struct {
	UserID     string    `json:"user_id"`
	Email      string    `json:"email"`
	Username   string    `json:"username"`
	OccurredAt time.Time `json:"occurred_at"`
}

// AccountBroker publishes account lifecycle events. Failures are for the
// caller to log; no event is worth failing the originating request.
type AccountBroker struct {
	client   *rabbit.RabbitMQ
	exchange string

	l logger.Logger
}

func NewAccountBroker(ctx context.Context, client *rabbit.RabbitMQ, log logger.Logger) (*AccountBroker, error) {
	b := &AccountBroker{
		client:   client,
		exchange: AccountsExchange,

		l: log,
	}

	if err := client.Channel.ExchangeDeclare(
		b.exchange, // name
		"topic",    // kind
		true,       // durable
		false,      // auto-delete
		false,      // internal
		false,      // no-wait
		nil,
	); err != nil {
		return nil, fmt.Errorf("failed to declare exchange %q: %w", b.exchange, err)
	}

	return b, nil
}

// PublishUserRegistered announces a newly created account.
func (b *AccountBroker) PublishUserRegistered(ctx context.Context, user *models.User) error {
	return b.publish(wrap.WithAction(ctx, "rabbitmq_publish_user_registered"), keyUserRegistered, user)
}

// PublishPasswordChanged announces a successful password change.
func (b *AccountBroker) PublishPasswordChanged(ctx context.Context, user *models.User) error {
	return b.publish(wrap.WithAction(ctx, "rabbitmq_publish_password_changed"), keyPasswordChanged, user)
}

func (b *AccountBroker) publish(ctx context.Context, key string, user *models.User) error {
	if err := b.client.EnsureConnection(ctx); err != nil {
		b.l.Error(ctx, "ensure connection failed", err)
		return wrap.Error(ctx, err)
	}

	event := AccountEvent{
		UserID:     user.ID.String(),
		Email:      user.Email,
		Username:   user.Username,
		OccurredAt: time.Now().UTC(),
	}

	body, err := json.Marshal(event)
	if err != nil {
		return wrap.Error(ctx, fmt.Errorf("failed to marshal event: %w", err))
	}

	if err := retry(5, time.Second, func() error {
		return b.client.Channel.PublishWithContext(
			ctx,
			b.exchange, // exchange
			key,        // routing key
			false,      // mandatory
			false,      // immediate
			amqp091.Publishing{
				ContentType: "application/json",
				Body:        body,
				Timestamp:   time.Now(),
			},
		)
	}); err != nil {
		return wrap.Error(ctx, fmt.Errorf("failed to publish %s: %w", key, err))
	}

	return nil
}

func retry(n int, sleep time.Duration, fn func() error) error {
	var err error
	for range n {
		if err = fn(); err == nil {
			return nil
		}
		time.Sleep(sleep)
	}
	return err
}
