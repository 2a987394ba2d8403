package netx

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/mcoffline/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/mcoffline/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// TokenSource supplies the bearer token for API calls. An empty token means
// requests go out unauthenticated.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// CheckToken parses a JWT without verifying its signature (the server does
// that) and rejects it when it is malformed or already expired at now.
func CheckToken(token string, now time.Time) error {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}
	if claims.ExpiresAt != nil && !now.Before(claims.ExpiresAt.Time) {
		return common.ErrTokenExpired
	}
	return nil
}

// MetadataTokens keeps the access token in the metadata store.
type MetadataTokens struct {
	repo metadata.Repository
	now  func() time.Time
}

func NewMetadataTokens(repo metadata.Repository) *MetadataTokens {
	return &MetadataTokens{repo: repo, now: time.Now}
}

// Token returns the stored token, or "" when none is stored. A stored token
// that has expired is an error so the caller can log in again.
func (m *MetadataTokens) Token(ctx context.Context) (string, error) {
	v, err := m.repo.Get(ctx, common.AccessTokenKey)
	if err != nil {
		return "", err
	}
	token := string(v)
	if token == "" {
		return "", nil
	}
	if err := CheckToken(token, m.now()); err != nil {
		return "", err
	}
	return token, nil
}

// SetToken validates and stores token. An empty token removes it.
func (m *MetadataTokens) SetToken(ctx context.Context, token string) error {
	token = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(token), "Bearer "))
	if token == "" {
		return m.repo.Delete(ctx, common.AccessTokenKey)
	}
	if err := CheckToken(token, m.now()); err != nil {
		return err
	}
	return m.repo.Set(ctx, common.AccessTokenKey, []byte(token))
}
