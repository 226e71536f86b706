package db

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// returned on every call when the connection string was missing at startup
var ErrMissingURI = errors.New("MONGODB_URI is not set")

type DialFunc func(ctx context.Context, uri string) (*mongo.Client, error)

// Connector hands out one shared mongo client per process. The first
// caller starts the dial; everyone arriving while it is in flight waits
// on the same attempt instead of dialing again. A failed attempt is
// cleared so the next call starts fresh.
type Connector struct {
	uri  string
	name string
	dial DialFunc

	mu       sync.Mutex
	client   *mongo.Client
	inflight *attempt
}

type attempt struct {
	done   chan struct{}
	client *mongo.Client
	err    error
}

func NewConnector(uri, name string) *Connector {
	return &Connector{
		uri:  uri,
		name: name,
		dial: defaultDial,
	}
}

// NewConnectorWithDial lets tests swap the dial function.
func NewConnectorWithDial(uri, name string, dial DialFunc) *Connector {
	return &Connector{
		uri:  uri,
		name: name,
		dial: dial,
	}
}

func (c *Connector) Get(ctx context.Context) (*mongo.Client, error) {
	if c.uri == "" {
		return nil, ErrMissingURI
	}

	c.mu.Lock()

	if c.client != nil {
		cl := c.client
		c.mu.Unlock()
		return cl, nil
	}

	a := c.inflight

	if a == nil {
		a = &attempt{done: make(chan struct{})}
		c.inflight = a

		go c.connect(a)
	}

	c.mu.Unlock()

	select {
	case <-a.done:
		return a.client, a.err
	case <-ctx.Done():
		// the attempt keeps running for other waiters
		return nil, ctx.Err()
	}
}

// Database resolves the configured database through the shared client.
func (c *Connector) Database(ctx context.Context) (*mongo.Database, error) {
	client, err := c.Get(ctx)

	if err != nil {
		return nil, err
	}

	return client.Database(c.name), nil
}

func (c *Connector) connect(a *attempt) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := c.dial(ctx, c.uri)

	c.mu.Lock()

	if err != nil {
		// clear the slot so a later call retries from scratch
		c.inflight = nil
	} else {
		c.client = client
		c.inflight = nil
	}

	c.mu.Unlock()

	a.client = client
	a.err = err
	close(a.done)
}

func (c *Connector) Close(ctx context.Context) error {
	c.mu.Lock()
	client := c.client
	c.client = nil
	c.mu.Unlock()

	if client == nil {
		return nil
	}

	return client.Disconnect(ctx)
}

func defaultDial(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))

	if err != nil {
		return nil, err
	}

	err = client.Ping(ctx, readpref.Primary())

	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	return client, nil
}
