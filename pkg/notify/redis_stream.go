package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"krishi/pkg/cropcal"
)

type streamAdder interface {
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
}

// RedisStreamNotifier appends reminders to a Redis stream for downstream
// SMS or push workers.
type RedisStreamNotifier struct {
	client streamAdder
	closer func() error
	stream string
}

func NewRedisStream(ctx context.Context, addr, password string, db int, stream string) (*RedisStreamNotifier, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return &RedisStreamNotifier{client: client, closer: client.Close, stream: stream}, nil
}

func (n *RedisStreamNotifier) Notify(ctx context.Context, r cropcal.Reminder) error {
	data, err := payload(r)
	if err != nil {
		return err
	}
	err = n.client.XAdd(ctx, &redis.XAddArgs{
		Stream: n.stream,
		Values: map[string]interface{}{
			"farmer_phone": r.FarmerPhone,
			"data":         string(data),
			"timestamp":    time.Now().Unix(),
		},
	}).Err()
	if err != nil {
		return fmt.Errorf("xadd %s: %w", n.stream, err)
	}
	return nil
}

func (n *RedisStreamNotifier) Close() error {
	if n.closer == nil {
		return nil
	}
	return n.closer()
}
