package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"
)

// TokenType distinguishes access tokens from refresh tokens.
type TokenType string

const (
	// TokenTypeAccess authorizes API calls for a single session.
	TokenTypeAccess TokenType = "access"
	// TokenTypeRefresh is only good for minting new access tokens.
	TokenTypeRefresh TokenType = "refresh"
)

// Token validation errors.
var (
	ErrTokenInvalid   = errors.New("token is invalid")
	ErrTokenExpired   = errors.New("token is expired")
	ErrTokenWrongType = errors.New("token type mismatch")
)

// Claims carries the identity and token type inside a JWT.
type Claims struct {
	jwt.RegisteredClaims
	TokenType TokenType `json:"typ"`
}

// TokenService issues and validates signed access/refresh tokens.
// Validation is pure; the signing secret is the only state.
type TokenService struct {
	secret     []byte
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// NewTokenService creates a TokenService with the given secret and TTLs.
func NewTokenService(secret string, issuer string, accessTTL, refreshTTL time.Duration) *TokenService {
	return &TokenService{
		secret:     []byte(secret),
		issuer:     issuer,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

// WithClock overrides the clock used for issued-at and expiry claims.
// Intended for tests.
func (s *TokenService) WithClock(now func() time.Time) *TokenService {
	s.now = now
	return s
}

// IssueAccessToken mints a short-lived access token for the given subject.
func (s *TokenService) IssueAccessToken(subject string) (string, error) {
	return s.issue(subject, TokenTypeAccess, s.accessTTL)
}

// IssueRefreshToken mints a longer-lived refresh token for the given subject.
func (s *TokenService) IssueRefreshToken(subject string) (string, error) {
	return s.issue(subject, TokenTypeRefresh, s.refreshTTL)
}

func (s *TokenService) issue(subject string, typ TokenType, ttl time.Duration) (string, error) {
	now := s.now().UTC()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    s.issuer,
			ID:        ulid.Make().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		TokenType: typ,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Validate checks signature, expiry and token type, returning the subject.
// All failures map to one of the sentinel token errors.
func (s *TokenService) Validate(tokenString string, expected TokenType) (string, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrTokenInvalid
	}

	if claims.TokenType != expected {
		return "", ErrTokenWrongType
	}
	if claims.Subject == "" {
		return "", ErrTokenInvalid
	}

	return claims.Subject, nil
}
