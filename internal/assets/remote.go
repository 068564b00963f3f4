package assets

import (
	"context"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"
)

// RemoteCache is a byte cache shared between viewer processes.
type RemoteCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte) error
	Close()
}

const valkeyKeyPrefix = "stageviewer:asset:"

// ValkeyCache stores fetched asset bytes in a valkey (or redis) server.
type ValkeyCache struct {
	client valkey.Client
	ttl    time.Duration
}

// NewValkeyCache connects to the server at addr. A zero ttl stores entries
// without expiry.
func NewValkeyCache(addr string, ttl time.Duration) (*ValkeyCache, error) {
	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress:  []string{addr},
		DisableCache: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to valkey %s: %w", addr, err)
	}
	return &ValkeyCache{client: client, ttl: ttl}, nil
}

// Get returns the cached bytes for key.
func (c *ValkeyCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	cmd := c.client.B().Get().Key(valkeyKeyPrefix + key).Build()
	data, err := c.client.Do(ctx, cmd).AsBytes()
	if valkey.IsValkeyNil(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("valkey get %s: %w", key, err)
	}
	return data, true, nil
}

// Set stores data under key.
func (c *ValkeyCache) Set(ctx context.Context, key string, data []byte) error {
	set := c.client.B().Set().Key(valkeyKeyPrefix + key).Value(valkey.BinaryString(data))
	var err error
	if secs := int64(c.ttl / time.Second); secs > 0 {
		err = c.client.Do(ctx, set.ExSeconds(secs).Build()).Error()
	} else {
		err = c.client.Do(ctx, set.Build()).Error()
	}
	if err != nil {
		return fmt.Errorf("valkey set %s: %w", key, err)
	}
	return nil
}

// Close closes the connection.
func (c *ValkeyCache) Close() {
	c.client.Close()
}
