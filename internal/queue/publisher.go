package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/three-level-auth/internal/logging"
)

const (
	defaultBuffer      = 256
	defaultDialTimeout = 3 * time.Second
	sendTimeout        = 5 * time.Second
)

var (
	// ErrBufferFull is returned when the outgoing buffer is full and the
	// event was dropped.
	ErrBufferFull = errors.New("audit buffer full, event dropped")
	// ErrPublisherClosed is returned by Publish after Close.
	ErrPublisherClosed = errors.New("publisher closed")
)

// Publisher sends AuthEvents to a durable queue on the default exchange.
// Publish only enqueues; a single background goroutine owns the broker
// connection, opens it lazily and reopens it after the broker drops it.
type Publisher struct {
	url         string
	queue       string
	dialTimeout time.Duration
	log         logging.Logger

	events chan amqp.Publishing
	quit   chan struct{}
	done   chan struct{}
	once   sync.Once

	// owned by run
	conn *amqp.Connection
	ch   *amqp.Channel
}

// PublisherOption tunes a Publisher.
type PublisherOption func(*Publisher)

// WithBuffer sets how many events may wait for the broker before new ones
// are dropped.
func WithBuffer(n int) PublisherOption {
	return func(p *Publisher) {
		if n > 0 {
			p.events = make(chan amqp.Publishing, n)
		}
	}
}

// WithDialTimeout bounds the TCP connect and the AMQP handshake.
func WithDialTimeout(d time.Duration) PublisherOption {
	return func(p *Publisher) {
		if d > 0 {
			p.dialTimeout = d
		}
	}
}

// NewPublisher starts the sending goroutine.  Call Close to stop it.
func NewPublisher(url, queue string, log logging.Logger, opts ...PublisherOption) *Publisher {
	if log == nil {
		log = logging.Nop()
	}
	p := &Publisher{
		url:         url,
		queue:       queue,
		dialTimeout: defaultDialTimeout,
		log:         log,
		events:      make(chan amqp.Publishing, defaultBuffer),
		quit:        make(chan struct{}),
		done:        make(chan struct{}),
	}
	for _, o := range opts {
		o(p)
	}
	go p.run()
	return p
}

// Publish marshals ev and hands it to the sending goroutine.  It never waits
// for the broker: a full buffer drops the event with ErrBufferFull.
func (p *Publisher) Publish(ctx context.Context, ev AuthEvent) error {
	msg, err := newPublishing(ev)
	if err != nil {
		return err
	}
	select {
	case <-p.quit:
		return ErrPublisherClosed
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	select {
	case p.events <- msg:
		return nil
	default:
		return ErrBufferFull
	}
}

// Close stops the sending goroutine and releases the broker connection.
// Events still buffered are discarded.
func (p *Publisher) Close() error {
	p.once.Do(func() { close(p.quit) })
	<-p.done
	return nil
}

func (p *Publisher) run() {
	defer close(p.done)
	defer p.reset()
	for {
		select {
		case <-p.quit:
			return
		case msg := <-p.events:
			if err := p.send(msg); err != nil {
				p.log.Warn(context.Background(), "audit publish failed", "queue", p.queue, "type", msg.Type, "err", err)
			}
		}
	}
}

func (p *Publisher) send(msg amqp.Publishing) error {
	if err := p.ensureChannel(); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()
	if err := p.ch.PublishWithContext(ctx,
		"",      // default exchange
		p.queue, // routing key = queue name
		false,   // mandatory
		false,   // immediate
		msg,
	); err != nil {
		p.reset()
		return fmt.Errorf("publish: %w", err)
	}
	return nil
}

func (p *Publisher) ensureChannel() error {
	if p.conn != nil && !p.conn.IsClosed() && p.ch != nil && !p.ch.IsClosed() {
		return nil
	}
	p.reset()

	conn, err := amqp.DialConfig(p.url, amqp.Config{
		Locale: "en_US",
		Dial:   amqp.DefaultDial(p.dialTimeout),
	})
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("channel open: %w", err)
	}
	// Durable so events survive broker restarts.
	if _, err := ch.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
		_ = conn.Close()
		return fmt.Errorf("queue declare: %w", err)
	}
	p.conn, p.ch = conn, ch
	return nil
}

func (p *Publisher) reset() {
	if p.conn != nil {
		_ = p.conn.Close()
	}
	p.conn, p.ch = nil, nil
}

func newPublishing(ev AuthEvent) (amqp.Publishing, error) {
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now().UTC()
	}
	body, err := json.Marshal(ev)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("marshal event: %w", err)
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    ev.OccurredAt,
		Type:         ev.Type,
		Body:         body,
	}, nil
}
