// Package changefeed fans out store writes to listeners over Redis pub/sub.
//
// Every committed write to a collection publishes one Change. Listeners re-read whatever
// they need; a Change only says that something moved.
package changefeed

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const channelPrefix = "volunteer:changes:" // Pub/Sub channel per collection: volunteer:changes:{collection}

// Collections that publish changes.
const (
	Projects     = "projects"
	Applications = "applications"
)

type Op string

const (
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

type Change struct {
	Collection string    `json:"collection"`
	Op         Op        `json:"op"`
	ID         uuid.UUID `json:"id"`
	ProjectID  uuid.UUID `json:"projectId"`
	At         time.Time `json:"at"`
}

type Feed struct {
	client *redis.Client
	logger zerolog.Logger
}

func New(client *redis.Client) *Feed {
	return &Feed{
		client: client,
		logger: log.With().Str("component", "changefeed").Logger(),
	}
}

// NewClient connects to Redis and checks the connection.
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	return client, nil
}

func channel(collection string) string {
	return channelPrefix + collection
}

// Publish announces change on the collection's channel.
func (f *Feed) Publish(ctx context.Context, collection string, change Change) error {
	change.Collection = collection
	if change.At.IsZero() {
		change.At = time.Now().UTC()
	}

	data, err := json.Marshal(change)
	if err != nil {
		return fmt.Errorf("failed to marshal change: %w", err)
	}
	if err := f.client.Publish(ctx, channel(collection), data).Err(); err != nil {
		return fmt.Errorf("failed to publish change on %s: %w", collection, err)
	}
	return nil
}

// Subscribe calls onChange for every change published on collection until ctx is done or
// the returned unsubscribe func is called. onChange runs on a single goroutine, in
// publication order, and must not call unsubscribe itself.
func (f *Feed) Subscribe(ctx context.Context, collection string, onChange func(Change)) (func(), error) {
	pubsub := f.client.Subscribe(ctx, channel(collection))
	// Wait for the subscription confirmation so nothing published after we return is missed.
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to %s: %w", collection, err)
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	go func() {
		defer close(done)
		defer pubsub.Close()

		messages := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-messages:
				if !ok {
					return
				}
				var change Change
				if err := json.Unmarshal([]byte(msg.Payload), &change); err != nil {
					f.logger.Warn().Err(err).Str("channel", msg.Channel).Msg("dropping undecodable change")
					continue
				}
				onChange(change)
			}
		}
	}()

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			cancel()
			<-done
		})
	}
	return unsubscribe, nil
}
