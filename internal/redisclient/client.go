package redisclient

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"pizza-ordering/internal/models"

	"github.com/go-redis/redis/v8"
)

const (
	menuKey      = "catalog:menu"
	pizzaTypeKey = "catalog:pizza_types"
)

type Client struct {
	rdb *redis.Client
}

// NewClient creates a new Redis client
func NewClient(addr, password string, db int) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// GetClient returns the underlying Redis client
func (c *Client) GetClient() *redis.Client {
	return c.rdb
}

// Close closes the Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}

// GetMenu retrieves the cached menu listing. Returns (nil, nil) on a
// cache miss.
func (c *Client) GetMenu(ctx context.Context) ([]models.MenuItem, error) {
	raw, err := c.rdb.Get(ctx, menuKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var items []models.MenuItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("failed to decode cached menu: %w", err)
	}
	return items, nil
}

// SetMenu caches the menu listing with a TTL
func (c *Client) SetMenu(ctx context.Context, items []models.MenuItem, ttl time.Duration) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode menu: %w", err)
	}
	return c.rdb.Set(ctx, menuKey, raw, ttl).Err()
}

// GetPizzaTypes retrieves the cached pizza type listing. Returns
// (nil, nil) on a cache miss.
func (c *Client) GetPizzaTypes(ctx context.Context) ([]models.PizzaType, error) {
	raw, err := c.rdb.Get(ctx, pizzaTypeKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var types []models.PizzaType
	if err := json.Unmarshal(raw, &types); err != nil {
		return nil, fmt.Errorf("failed to decode cached pizza types: %w", err)
	}
	return types, nil
}

// SetPizzaTypes caches the pizza type listing with a TTL
func (c *Client) SetPizzaTypes(ctx context.Context, types []models.PizzaType, ttl time.Duration) error {
	raw, err := json.Marshal(types)
	if err != nil {
		return fmt.Errorf("failed to encode pizza types: %w", err)
	}
	return c.rdb.Set(ctx, pizzaTypeKey, raw, ttl).Err()
}

// InvalidateMenu drops the cached listings
func (c *Client) InvalidateMenu(ctx context.Context) error {
	return c.rdb.Del(ctx, menuKey, pizzaTypeKey).Err()
}
