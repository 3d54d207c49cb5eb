package admission

import (
	"context"
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// Token predicate errors. Both are surfaced to callers wrapped in a
// *RejectedError by the gate.
var (
	// ErrMissingToken indicates the extractor found no token on the request.
	ErrMissingToken = errors.New("admission: missing token")

	// ErrInvalidToken indicates the token failed signature or claim checks.
	ErrInvalidToken = errors.New("admission: invalid token")
)

// TokenConfig configures a TokenPredicate.
type TokenConfig struct {
	// Issuer is the expected token issuer (iss claim). Empty skips the check.
	Issuer string

	// Audience is the expected token audience (aud claim). Empty skips the check.
	Audience string
}

// KeyProvider retrieves signing keys for token validation.
type KeyProvider interface {
	// GetKey returns the verification key for the given key ID.
	GetKey(ctx context.Context, keyID string) (any, error)
}

// StaticKeyProvider provides a single static signing key.
type StaticKeyProvider struct {
	key []byte
}

// NewStaticKeyProvider creates a static key provider.
func NewStaticKeyProvider(key []byte) *StaticKeyProvider {
	return &StaticKeyProvider{key: key}
}

// GetKey returns the static key.
func (p *StaticKeyProvider) GetKey(_ context.Context, _ string) (any, error) {
	return p.key, nil
}

// TokenPredicate admits requests that carry a valid JWT.
//
// The token is pulled off the request by the extractor; how a request carries
// its token (header, metadata field, envelope) is the caller's business.
type TokenPredicate[Req any] struct {
	config  TokenConfig
	keys    KeyProvider
	extract func(req Req) string
}

// NewTokenPredicate creates a predicate validating bearer tokens extracted
// from requests.
func NewTokenPredicate[Req any](config TokenConfig, keys KeyProvider, extract func(req Req) string) *TokenPredicate[Req] {
	return &TokenPredicate[Req]{
		config:  config,
		keys:    keys,
		extract: extract,
	}
}

// Check validates the request's token.
func (p *TokenPredicate[Req]) Check(ctx context.Context, req Req) error {
	tokenString := p.extract(req)
	if tokenString == "" {
		return ErrMissingToken
	}

	opts := []jwt.ParserOption{jwt.WithExpirationRequired()}
	if p.config.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(p.config.Issuer))
	}
	if p.config.Audience != "" {
		opts = append(opts, jwt.WithAudience(p.config.Audience))
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		kid := ""
		if kidVal, ok := token.Header["kid"].(string); ok {
			kid = kidVal
		}
		return p.keys.GetKey(ctx, kid)
	}, opts...)

	if err != nil || !token.Valid {
		return ErrInvalidToken
	}
	return nil
}

var _ Predicate[string] = (*TokenPredicate[string])(nil)
