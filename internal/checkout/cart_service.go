package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/ariefcatur/go-storefront-checkout.git/internal/redisx"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// CartService fronts the persisted per-account cart with a redis read cache.
// Writes are whole-mapping replaces: concurrent updates from multiple
// devices race last-write-wins, which is the intended reconciliation policy.
type CartService struct {
	Store CartStore
	Redis *redis.Client // optional
	sfg   singleflight.Group
}

func (s *CartService) Get(ctx context.Context, userID string) (Cart, error) {
	// singleflight collapses concurrent cache misses for the same account
	v, err, _ := s.sfg.Do(userID, func() (any, error) {
		if c, ok := s.cached(ctx, userID); ok {
			return c, nil
		}
		c, err := s.Store.Get(ctx, userID)
		if err != nil {
			return nil, err
		}
		s.cacheAsync(userID, c)
		return c, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(Cart), nil
}

func (s *CartService) Replace(ctx context.Context, userID string, c Cart) error {
	if err := s.Store.Replace(ctx, userID, c); err != nil {
		return err
	}
	s.invalidate(ctx, userID)
	return nil
}

func (s *CartService) Clear(ctx context.Context, userID string) error {
	if err := s.Store.Clear(ctx, userID); err != nil {
		return err
	}
	s.invalidate(ctx, userID)
	return nil
}

// Add applies the increment to a fresh copy of the cart and mirrors it back.
// A failed mirror write comes back as a MirrorWriteError together with the
// updated copy: the mutation stands for the session either way.
func (s *CartService) Add(ctx context.Context, userID, productID string) (Cart, error) {
	c, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	c = c.Clone()
	c.Add(productID)
	if err := s.Replace(ctx, userID, c); err != nil {
		return c, &MirrorWriteError{Err: err}
	}
	return c, nil
}

// SetQuantity works like Add; zero or negative removes the entry.
func (s *CartService) SetQuantity(ctx context.Context, userID, productID string, qty int) (Cart, error) {
	c, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	c = c.Clone()
	c.SetQuantity(productID, qty)
	if err := s.Replace(ctx, userID, c); err != nil {
		return c, &MirrorWriteError{Err: err}
	}
	return c, nil
}

func (s *CartService) cached(ctx context.Context, userID string) (Cart, bool) {
	if s.Redis == nil {
		return nil, false
	}
	b, err := s.Redis.Get(ctx, fmt.Sprintf(redisx.KeyCart, userID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("cart cache get: %v", err)
		}
		return nil, false
	}
	var c Cart
	if err := json.Unmarshal(b, &c); err != nil {
		return nil, false
	}
	return c, true
}

func (s *CartService) cacheAsync(userID string, c Cart) {
	if s.Redis == nil {
		return
	}
	go func() {
		b, err := json.Marshal(c)
		if err != nil {
			return
		}
		if err := s.Redis.Set(context.Background(), fmt.Sprintf(redisx.KeyCart, userID), b, redisx.TTLCartCache).Err(); err != nil {
			log.Printf("cart cache set: %v", err)
		}
	}()
}

func (s *CartService) invalidate(ctx context.Context, userID string) {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(ctx, fmt.Sprintf(redisx.KeyCart, userID)).Err(); err != nil {
		log.Printf("cart cache del: %v", err)
	}
}
