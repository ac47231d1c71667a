// Package messaging publica los eventos del motor de inventario.
package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/streadway/amqp"

	"github.com/jhoicas/stylelane-api/internal/application/inventory"
	"github.com/jhoicas/stylelane-api/internal/domain/event"
)

var _ inventory.Notifier = (*RabbitMQNotifier)(nil)

// channel subconjunto de *amqp.Channel que usa el notifier.
type channel interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// connection subconjunto de *amqp.Connection.
type connection interface {
	IsClosed() bool
	Close() error
}

// RabbitMQConfig conexión y exchange.
type RabbitMQConfig struct {
	URL        string
	Exchange   string
	RetryCount int
	RetryDelay time.Duration
}

// RabbitMQNotifier publica cada evento en un exchange topic con routing key stylelane.<tipo>.
// Si la conexión cae, Publish falla de inmediato y la reconexión corre en segundo plano.
type RabbitMQNotifier struct {
	cfg  RabbitMQConfig
	dial func() (connection, channel, error)

	mu           sync.Mutex
	conn         connection
	ch           channel
	reconnecting bool
	closed       bool
}

// NewRabbitMQNotifier conecta y declara el exchange (topic, durable).
func NewRabbitMQNotifier(cfg RabbitMQConfig) (*RabbitMQNotifier, error) {
	if cfg.RetryCount <= 0 {
		cfg.RetryCount = 1
	}
	n := &RabbitMQNotifier{cfg: cfg}
	n.dial = n.connect
	conn, ch, err := n.dial()
	if err != nil {
		return nil, err
	}
	n.conn, n.ch = conn, ch
	return n, nil
}

// newWithChannel construye el notifier sobre un canal ya abierto.
func newWithChannel(exchange string, ch channel) *RabbitMQNotifier {
	return &RabbitMQNotifier{cfg: RabbitMQConfig{Exchange: exchange}, ch: ch}
}

// connect abre conexión y canal con RetryCount intentos separados por RetryDelay.
func (n *RabbitMQNotifier) connect() (connection, channel, error) {
	var lastErr error
	for i := 0; i < n.cfg.RetryCount; i++ {
		conn, err := amqp.Dial(n.cfg.URL)
		if err != nil {
			lastErr = err
			log.Warn().Err(err).Int("attempt", i+1).Int("of", n.cfg.RetryCount).Msg("rabbitmq: error de conexión")
			if i < n.cfg.RetryCount-1 {
				time.Sleep(n.cfg.RetryDelay)
			}
			continue
		}
		ch, err := conn.Channel()
		if err != nil {
			conn.Close()
			return nil, nil, fmt.Errorf("rabbitmq: abrir canal: %w", err)
		}
		err = ch.ExchangeDeclare(
			n.cfg.Exchange, // name
			"topic",        // type
			true,           // durable
			false,          // auto-deleted
			false,          // internal
			false,          // no-wait
			nil,            // arguments
		)
		if err != nil {
			ch.Close()
			conn.Close()
			return nil, nil, fmt.Errorf("rabbitmq: declarar exchange: %w", err)
		}
		log.Info().Str("exchange", n.cfg.Exchange).Msg("rabbitmq: conectado")
		return conn, ch, nil
	}
	return nil, nil, fmt.Errorf("rabbitmq: conectar: %w", lastErr)
}

// reconnectLocked lanza una única reconexión en segundo plano. Requiere n.mu tomado.
func (n *RabbitMQNotifier) reconnectLocked() {
	if n.reconnecting || n.closed || n.dial == nil {
		return
	}
	n.reconnecting = true
	go func() {
		conn, ch, err := n.dial()

		n.mu.Lock()
		defer n.mu.Unlock()
		n.reconnecting = false
		if err != nil {
			log.Error().Err(err).Msg("rabbitmq: reconexión fallida")
			return
		}
		if n.closed {
			ch.Close()
			conn.Close()
			return
		}
		n.conn, n.ch = conn, ch
	}()
}

// Publish serializa el evento y lo publica como mensaje persistente.
func (n *RabbitMQNotifier) Publish(ctx context.Context, ev event.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("rabbitmq: serializar evento: %w", err)
	}
	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    ev.ID,
		Timestamp:    ev.OccurredAt,
		Type:         string(ev.Type),
		Body:         body,
		Headers: amqp.Table{
			"event_type": string(ev.Type),
			"store_id":   ev.StoreID,
		},
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	if n.ch == nil || (n.conn != nil && n.conn.IsClosed()) {
		n.reconnectLocked()
		return fmt.Errorf("rabbitmq: sin conexión")
	}
	if err := n.ch.Publish(n.cfg.Exchange, ev.RoutingKey(), false, false, msg); err != nil {
		return fmt.Errorf("rabbitmq: publicar %s: %w", ev.Type, err)
	}
	return nil
}

// Close cierra canal y conexión.
func (n *RabbitMQNotifier) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.closed = true
	var firstErr error
	if n.ch != nil {
		if err := n.ch.Close(); err != nil {
			firstErr = fmt.Errorf("rabbitmq: cerrar canal: %w", err)
		}
		n.ch = nil
	}
	if n.conn != nil {
		if err := n.conn.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("rabbitmq: cerrar conexión: %w", err)
		}
		n.conn = nil
	}
	return firstErr
}
