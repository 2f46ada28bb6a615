package rabbit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/aslanbek-j/accounts-service/pkg/logger"
	wrap "github.com/aslanbek-j/accounts-service/pkg/logger/wrapper"
	amqp "github.com/rabbitmq/amqp091-go"
)

type RabbitMQ struct {
	Conn      *amqp.Connection
	Channel   *amqp.Channel
	closeChan chan *amqp.Error
	isClosed  bool
	mu        sync.Mutex
	dsn       string

	log logger.Logger
}

// New creates a RabbitMQ client
func New(ctx context.Context, dsn string, log logger.Logger) (*RabbitMQ, error) {
	conn, err := amqp.DialConfig(dsn, amqp.Config{
		Heartbeat: 10 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}

	connCloseChan := make(chan *amqp.Error, 1)
	chCloseChan := make(chan *amqp.Error, 1)

	conn.NotifyClose(connCloseChan)
	channel.NotifyClose(chCloseChan)

	// Merge both close notifications into one channel for monitoring
	mergedCloseChan := make(chan *amqp.Error, 2)
	go func() {
		select {
		case err := <-connCloseChan:
			mergedCloseChan <- err
		case err := <-chCloseChan:
			mergedCloseChan <- err
		}
	}()

	log.Info(wrap.WithAction(ctx, "rabbitmq_connected"), "connected to rabbitMQ")

	r := &RabbitMQ{
		Conn:      conn,
		Channel:   channel,
		closeChan: mergedCloseChan,
		isClosed:  false,
		dsn:       dsn,
		log:       log,
	}

	go r.monitorConnection()

	return r, nil
}

func (r *RabbitMQ) monitorConnection() {
	closeErr := <-r.closeChan
	r.isClosed = true

	ctx := wrap.WithAction(context.Background(), "rabbitmq_connection_closed")

	if closeErr != nil {
		r.log.Error(ctx, "RabbitMQ connection closed with error", closeErr)
	} else {
		r.log.Debug(ctx, "RabbitMQ connection closed gracefully")
	}
}

// IsConnectionClosed checks if the connection is closed
func (r *RabbitMQ) IsConnectionClosed() bool {
	if r.Conn == nil {
		return true
	}
	return r.isClosed || r.Conn.IsClosed() || r.Channel.IsClosed()
}

// Close closes the channel and connection
func (r *RabbitMQ) Close(ctx context.Context) error {
	ctx = wrap.WithAction(ctx, "rabbitmq_connection_closing")

	r.mu.Lock()
	if r.isClosed {
		r.mu.Unlock()
		return nil
	}
	// mark closed early to avoid races with concurrent Close calls
	r.isClosed = true
	ch := r.Channel
	conn := r.Conn
	r.Channel = nil
	r.Conn = nil
	r.mu.Unlock()

	if ch != nil {
		if err := closeWithCtxFunc(ctx, ch.Close); err != nil {
			if ctx.Err() != nil {
				r.log.Debug(ctx, "context cancelled while closing channel")
			} else {
				r.log.Error(ctx, "error closing channel", err)
			}
		}
	}

	if conn != nil {
		if err := closeWithCtxFunc(ctx, conn.Close); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("failed to close connection: %w", err)
		}
	}

	r.log.Info(ctx, "rabbitMQ closed")

	return nil
}

// closeWithCtxFunc closes a resource while honouring context cancellation
func closeWithCtxFunc(ctx context.Context, fn func() error) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- fn()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		// The goroutine can still write into the buffered channel and exit.
		return ctx.Err()
	}
}

func (r *RabbitMQ) Reconnect(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.dsn == "" {
		return fmt.Errorf("dsn is empty: can't reconnect")
	}

	if !r.isClosed && r.Conn != nil && !r.Conn.IsClosed() && r.Channel != nil && !r.Channel.IsClosed() {
		return nil
	}

	var conn *amqp.Connection
	var err error

	for i := range 5 {
		conn, err = amqp.DialConfig(r.dsn, amqp.Config{
			Heartbeat: 10 * time.Second,
		})
		if err == nil {
			break
		}

		wait := time.Duration(i+1) * 2 * time.Second
		r.log.Debug(ctx, fmt.Sprintf("reconnect attempt %d failed, retrying in %v", i+1, wait))

		select {
		case <-ctx.Done():
			r.log.Debug(ctx, "graceful shutdown, stopping reconnect attempts")
			return ctx.Err()
		case <-time.After(wait):
		}
	}

	if err != nil {
		return fmt.Errorf("failed to reconnect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to open a channel after reconnect: %w", err)
	}

	closeChan := make(chan *amqp.Error, 1)
	conn.NotifyClose(closeChan)

	r.Conn = conn
	r.Channel = ch
	r.closeChan = closeChan
	r.isClosed = false

	go r.monitorConnection()

	r.log.Info(wrap.WithAction(ctx, "rabbitmq_reconnected"), "RabbitMQ reconnected successfully")

	return nil
}

func (r *RabbitMQ) EnsureConnection(ctx context.Context) error {
	if r.IsConnectionClosed() {
		r.log.Warn(ctx, "rabbit connection closed, reconnecting...")
		if err := r.Reconnect(ctx); err != nil {
			return fmt.Errorf("failed to reconnect to RabbitMQ: %w", err)
		}
	}
	return nil
}
