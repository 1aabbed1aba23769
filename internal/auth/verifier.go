package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/ariefcatur/go-storefront-checkout.git/internal/redisx"
	"github.com/redis/go-redis/v9"
)

// Identity is the identity provider's verdict for a request: a user id, or
// nothing for an anonymous caller. The checkout core trusts it as-is.
type Identity struct {
	UserID string
}

func (id Identity) Anonymous() bool { return id.UserID == "" }

type Verifier interface {
	// Verify resolves a bearer token to an identity. An unknown or empty
	// token yields the anonymous identity, not an error; errors are
	// reserved for lookup failures.
	Verify(ctx context.Context, token string) (Identity, error)
}

// SessionVerifier resolves tokens against session records the identity
// provider writes to redis (session:{token} -> user_id).
type SessionVerifier struct {
	Redis *redis.Client
}

func (v *SessionVerifier) Verify(ctx context.Context, token string) (Identity, error) {
	if token == "" {
		return Identity{}, nil
	}
	userID, err := v.Redis.Get(ctx, fmt.Sprintf(redisx.KeySession, token)).Result()
	if errors.Is(err, redis.Nil) {
		return Identity{}, nil
	}
	if err != nil {
		return Identity{}, err
	}
	return Identity{UserID: userID}, nil
}
