// Package analytics publishes best-effort post view events.
package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"marketplace/internal/config"
	"marketplace/internal/observability"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
)

const (
	BackendNone  = "none"
	BackendRedis = "redis"
	BackendNATS  = "nats"

	// streamMaxLen caps the redis stream; trimming is approximate.
	streamMaxLen = 100000
)

// PostViewEvent is emitted once per counted post view.
type PostViewEvent struct {
	ID       string    `json:"id"`
	Post     string    `json:"post"`
	Author   string    `json:"author"`
	Viewer   string    `json:"viewer,omitempty"`
	Views    int64     `json:"views"`
	ViewedAt time.Time `json:"viewed_at"`
}

// Publisher delivers view events. Callers treat failures as non-fatal.
type Publisher interface {
	PostViewed(ctx context.Context, event PostViewEvent) error
	Close() error
}

func stamp(event *PostViewEvent) {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.ViewedAt.IsZero() {
		event.ViewedAt = time.Now().UTC()
	}
}

// Noop drops every event.
type Noop struct{}

func (Noop) PostViewed(context.Context, PostViewEvent) error { return nil }
func (Noop) Close() error                                    { return nil }

// RedisStream appends events to a redis stream with XADD.
type RedisStream struct {
	rdb    *redis.Client
	stream string
}

// NewRedisStream returns a publisher writing to stream.
func NewRedisStream(rdb *redis.Client, stream string) *RedisStream {
	return &RedisStream{rdb: rdb, stream: stream}
}

func (p *RedisStream) PostViewed(ctx context.Context, event PostViewEvent) error {
	if p.rdb == nil {
		return nil
	}
	stamp(&event)
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	err = p.rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		MaxLen: streamMaxLen,
		Approx: true,
		Values: map[string]interface{}{
			"id":      event.ID,
			"post":    event.Post,
			"payload": string(payload),
		},
	}).Err()
	if err != nil {
		observability.AnalyticsPublishFailures.WithLabelValues(BackendRedis).Inc()
		return fmt.Errorf("xadd %s: %w", p.stream, err)
	}
	return nil
}

// Close leaves the shared redis client open.
func (p *RedisStream) Close() error { return nil }

// natsConn is the subset of *nats.Conn the publisher uses.
type natsConn interface {
	Publish(subject string, data []byte) error
	Close()
}

// natsConnect is swapped in tests.
var natsConnect = func(url string) (natsConn, error) {
	return nats.Connect(url, nats.Name("marketplace-analytics"), nats.MaxReconnects(-1))
}

// NATS publishes events as core NATS messages on subject.
type NATS struct {
	nc      natsConn
	subject string
}

// NewNATS connects to url.
func NewNATS(url, subject string) (*NATS, error) {
	if url == "" {
		url = nats.DefaultURL
	}
	nc, err := natsConnect(url)
	if err != nil {
		return nil, fmt.Errorf("connect nats %s: %w", url, err)
	}
	return &NATS{nc: nc, subject: subject}, nil
}

func (p *NATS) PostViewed(_ context.Context, event PostViewEvent) error {
	stamp(&event)
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	if err := p.nc.Publish(p.subject, payload); err != nil {
		observability.AnalyticsPublishFailures.WithLabelValues(BackendNATS).Inc()
		return fmt.Errorf("publish %s: %w", p.subject, err)
	}
	return nil
}

func (p *NATS) Close() error {
	p.nc.Close()
	return nil
}

// New selects the backend named by cfg.AnalyticsBackend.
func New(cfg *config.Config, rdb *redis.Client) (Publisher, error) {
	switch cfg.AnalyticsBackend {
	case BackendRedis:
		if rdb == nil {
			return Noop{}, nil
		}
		return NewRedisStream(rdb, cfg.AnalyticsStream), nil
	case BackendNATS:
		return NewNATS(cfg.NATSURL, cfg.AnalyticsStream)
	case "", BackendNone:
		return Noop{}, nil
	default:
		return nil, fmt.Errorf("unknown analytics backend %q", cfg.AnalyticsBackend)
	}
}
