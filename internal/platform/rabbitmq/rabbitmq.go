package rabbitmq

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// New dials the broker and declares queue so publishers never race its creation.
func New(ctx context.Context, url, queue string) (*amqp.Connection, error) {
	conn, err := amqp.DialConfig(url, amqp.Config{
		Heartbeat: 10 * time.Second,
		Dial:      amqp.DefaultDial(3 * time.Second),
	})
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq failed: %w", err)
	}

	declared := make(chan error, 1)
	go func() {
		ch, err := conn.Channel()
		if err != nil {
			declared <- fmt.Errorf("open rabbitmq channel failed: %w", err)
			return
		}
		defer ch.Close()
		if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
			declared <- fmt.Errorf("declare queue %s failed: %w", queue, err)
			return
		}
		declared <- nil
	}()

	checkCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	select {
	case <-checkCtx.Done():
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq setup timeout: %w", checkCtx.Err())
	case err := <-declared:
		if err != nil {
			_ = conn.Close()
			return nil, err
		}
		return conn, nil
	}
}
