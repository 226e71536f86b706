package redisclient

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"evently/internal/jobs"

	"github.com/redis/go-redis/v9"
)

// default list backing the booking confirmation queue
const DefaultQueue = "evently:jobs:booking_confirmation"

// returned by Dequeue when the blocking pop times out with nothing to do
var ErrEmpty = errors.New("queue is empty")

type Config struct {
	Addr     string
	Password string
	DB       int
	Queue    string
}

type Client struct {
	redisdb *redis.Client
	queue   string
}

func New(cfg Config) *Client {
	if cfg.Queue == "" {
		cfg.Queue = DefaultQueue
	}

	redisdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  -1, // blocking pops manage their own deadline
		WriteTimeout: 2 * time.Second,
	})

	return &Client{redisdb: redisdb, queue: cfg.Queue}
}

func (c *Client) Ping(ctx context.Context) error {
	return c.redisdb.Ping(ctx).Err()
}

func (c *Client) Close() error {
	return c.redisdb.Close()
}

// Enqueue pushes a job onto the head of the list; workers pop from the
// tail, so the queue is FIFO.
func (c *Client) Enqueue(ctx context.Context, j jobs.Job) error {
	raw, err := json.Marshal(j)

	if err != nil {
		return err
	}

	return c.redisdb.LPush(ctx, c.queue, raw).Err()
}

// Dequeue blocks up to timeout waiting for the next job.
func (c *Client) Dequeue(ctx context.Context, timeout time.Duration) (jobs.Job, error) {
	res, err := c.redisdb.BRPop(ctx, timeout, c.queue).Result()

	if err != nil {
		if errors.Is(err, redis.Nil) {
			return jobs.Job{}, ErrEmpty
		}

		return jobs.Job{}, err
	}

	// BRPop returns [key, value]
	if len(res) < 2 {
		return jobs.Job{}, ErrEmpty
	}

	var j jobs.Job

	if err := json.Unmarshal([]byte(res[1]), &j); err != nil {
		return jobs.Job{}, err
	}

	return j, nil
}
