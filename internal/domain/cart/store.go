// internal/domain/cart/store.go
package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
)

// Storage is the durable key/value persistence behind the cart store.
// Get returns ("", nil) when no cart exists for the token.
type Storage interface {
	Get(ctx context.Context, token string) (string, error)
	Set(ctx context.Context, token string, payload string) error
	Del(ctx context.Context, token string) error
}

// RedisStorage persists carts as JSON values with a rolling TTL
type RedisStorage struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStorage creates a Redis-backed cart storage
func NewRedisStorage(client *redis.Client, ttl time.Duration) *RedisStorage {
	return &RedisStorage{
		client: client,
		ttl:    ttl,
	}
}

func cartKey(token string) string {
	return fmt.Sprintf("cart:token:%s", token)
}

// Get retrieves the serialized cart for a token
func (r *RedisStorage) Get(ctx context.Context, token string) (string, error) {
	payload, err := r.client.Get(ctx, cartKey(token)).Result()
	if err == redis.Nil {
		return "", nil
	}
	return payload, err
}

// Set stores the serialized cart and refreshes its TTL
func (r *RedisStorage) Set(ctx context.Context, token string, payload string) error {
	return r.client.Set(ctx, cartKey(token), payload, r.ttl).Err()
}

// Del removes the cart for a token
func (r *RedisStorage) Del(ctx context.Context, token string) error {
	return r.client.Del(ctx, cartKey(token)).Err()
}

// Store owns all cart mutations. Every mutation is written through to
// storage before it returns, so a reload always observes the last write.
type Store struct {
	storage Storage
	log     *logrus.Logger
}

// NewStore creates a cart store on top of the given storage
func NewStore(storage Storage, log *logrus.Logger) *Store {
	return &Store{
		storage: storage,
		log:     log,
	}
}

// NewToken mints a fresh cart token for a visitor
func NewToken() string {
	return uuid.NewString()
}

// Get rehydrates the cart for a token. A missing or unparsable stored
// value yields an empty cart, never an error.
func (s *Store) Get(ctx context.Context, token string) *Cart {
	payload, err := s.storage.Get(ctx, token)
	if err != nil {
		s.log.WithError(err).Warn("cart storage read failed, treating as empty cart")
		return s.emptyCart()
	}
	if payload == "" {
		return s.emptyCart()
	}

	var c Cart
	if err := json.Unmarshal([]byte(payload), &c); err != nil {
		s.log.WithError(err).Warn("stored cart is corrupt, treating as empty cart")
		return s.emptyCart()
	}
	if c.Items == nil {
		c.Items = []Item{}
	}

	return &c
}

// Add puts qty units of a product into the cart. Adding an already-present
// product increments its quantity instead of duplicating the entry.
// Quantity is coerced to at least 1.
func (s *Store) Add(ctx context.Context, token string, product *catalog.Product, qty int) (*Cart, error) {
	if qty < 1 {
		qty = 1
	}

	c := s.Get(ctx, token)

	if i := c.find(product.ID); i >= 0 {
		c.Items[i].Quantity += qty
	} else {
		c.Items = append(c.Items, Item{
			ProductID: product.ID,
			Name:      product.Name,
			ImageURL:  product.ImageURL,
			Price:     product.Price,
			Quantity:  qty,
		})
	}

	if err := s.persist(ctx, token, c); err != nil {
		return nil, err
	}
	return c, nil
}

// UpdateQuantity sets the absolute quantity for a product. A quantity of
// zero or below removes the item.
func (s *Store) UpdateQuantity(ctx context.Context, token string, productID uint, qty int) (*Cart, error) {
	if qty <= 0 {
		return s.Remove(ctx, token, productID)
	}

	c := s.Get(ctx, token)

	i := c.find(productID)
	if i < 0 {
		return nil, fmt.Errorf("item not found in cart")
	}
	c.Items[i].Quantity = qty

	if err := s.persist(ctx, token, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Remove deletes the matching item. Removing an absent product is a no-op.
func (s *Store) Remove(ctx context.Context, token string, productID uint) (*Cart, error) {
	c := s.Get(ctx, token)

	i := c.find(productID)
	if i < 0 {
		return c, nil
	}
	c.Items = append(c.Items[:i], c.Items[i+1:]...)

	if err := s.persist(ctx, token, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Clear empties the cart in memory and in storage
func (s *Store) Clear(ctx context.Context, token string) error {
	if err := s.storage.Del(ctx, token); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

func (s *Store) persist(ctx context.Context, token string, c *Cart) error {
	c.UpdatedAt = time.Now().UTC()

	payload, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to serialize cart: %w", err)
	}

	if err := s.storage.Set(ctx, token, string(payload)); err != nil {
		return fmt.Errorf("failed to persist cart: %w", err)
	}
	return nil
}

func (s *Store) emptyCart() *Cart {
	now := time.Now().UTC()
	return &Cart{
		Items:     []Item{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}
