// Package session implements the Redis-backed session lifecycle. A session
// token is a signed JWT whose ID must also exist as a live Redis key, so
// logout is a real server-side revocation and expiry is Redis-driven.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// CookieName is the cookie carrying the session token
const CookieName = "session"

// keyPrefix is the Redis key prefix for active sessions
const keyPrefix = "session:"

// ErrNoSession is returned when a token is missing, invalid, expired or revoked
var ErrNoSession = errors.New("no active session")

// Claims carried by a session token
type Claims struct {
	UserID               uint `json:"user_id"` // Custom claim for user ID
	jwt.RegisteredClaims      // Standard JWT claims; ID holds the Redis session key
}

// Store issues, resolves and revokes sessions
type Store struct {
	rdb    *redis.Client // Redis client holding active session keys
	secret []byte        // HMAC signing secret
	ttl    time.Duration // Session lifetime
}

// NewStore creates a session store backed by the given Redis client
func NewStore(rdb *redis.Client, secret string, ttl time.Duration) *Store {
	return &Store{rdb: rdb, secret: []byte(secret), ttl: ttl}
}

// Issue creates a session for the given user and returns the signed token
func (s *Store) Issue(ctx context.Context, userID uint) (string, error) {
	id := uuid.NewString() // Session ID doubles as the Redis revocation key
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        id,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", err
	}
	// Record the session in Redis; expiry there ends the session even if the
	// token itself is still within its signed lifetime
	if err := s.rdb.Set(ctx, keyPrefix+id, userID, s.ttl).Err(); err != nil {
		return "", err
	}
	return signed, nil
}

// Resolve returns the user ID bound to a token, or ErrNoSession
func (s *Store) Resolve(ctx context.Context, token string) (uint, error) {
	claims, err := s.parse(token)
	if err != nil {
		return 0, ErrNoSession
	}
	err = s.rdb.Get(ctx, keyPrefix+claims.ID).Err()
	if err == redis.Nil {
		return 0, ErrNoSession // Revoked or expired
	} else if err != nil {
		return 0, err
	}
	return claims.UserID, nil
}

// Revoke ends the session for a token. Always succeeds for tokens that never
// identified a session to begin with.
func (s *Store) Revoke(ctx context.Context, token string) error {
	claims, err := s.parse(token)
	if err != nil {
		return nil // Nothing to revoke
	}
	return s.rdb.Del(ctx, keyPrefix+claims.ID).Err()
}

// parse validates a token string and extracts its claims
func (s *Store) parse(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		return s.secret, nil // Return the secret key for validation
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, jwt.ErrSignatureInvalid
}
