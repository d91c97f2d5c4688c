package security

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/staffhub/employee-api/internal/core/domain"
)

const defaultTokenTTL = 24 * time.Hour

// TokenConfig is built once at startup and never changes afterwards.
type TokenConfig struct {
	Secret string
	Issuer string
	TTL    time.Duration
}

// JWTService issues and verifies HS256 identity tokens.
type JWTService struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

type identityClaims struct {
	Role domain.Role `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// NewJWTService validates cfg. An empty secret is a startup error.
func NewJWTService(cfg TokenConfig) (*JWTService, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("%w: empty secret", domain.ErrTokenIssuance)
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &JWTService{
		secret: []byte(cfg.Secret),
		issuer: cfg.Issuer,
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// Issue signs a token for subjectID expiring TTL from now.
func (s *JWTService) Issue(subjectID string, role domain.Role) (string, error) {
	if len(s.secret) == 0 {
		return "", domain.ErrTokenIssuance
	}
	now := s.now()
	claims := identityClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.issuer,
			Subject:   subjectID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrTokenIssuance, err)
	}
	return signed, nil
}

// Verify checks signature and expiry together. Forged, expired and malformed
// tokens all yield domain.ErrInvalidToken.
func (s *JWTService) Verify(token string) (domain.TokenClaims, error) {
	claims := &identityClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid || claims.Subject == "" {
		return domain.TokenClaims{}, domain.ErrInvalidToken
	}

	return domain.TokenClaims{
		SubjectID: claims.Subject,
		Role:      claims.Role,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
