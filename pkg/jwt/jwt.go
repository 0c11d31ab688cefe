package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// RoleAuthenticated is the role the BaaS puts in tokens of signed-in users.
	RoleAuthenticated = "authenticated"
	// RoleAnon is the role carried by the public anon key.
	RoleAnon = "anon"

	DefaultTTL = time.Hour
)

var ErrNotUserToken = errors.New("token does not belong to a signed-in user")

// Claims mirrors the access tokens issued by the BaaS auth service.
type Claims struct {
	Email        string                 `json:"email,omitempty"`
	Role         string                 `json:"role"`
	UserMetadata map[string]interface{} `json:"user_metadata,omitempty"`
	jwt.RegisteredClaims
}

func (c *Claims) UserID() string {
	return c.Subject
}

type Service struct {
	secretKey []byte
	ttl       time.Duration
	now       func() time.Time
}

func NewService(secretKey string) *Service {
	return &Service{
		secretKey: []byte(secretKey),
		ttl:       DefaultTTL,
		now:       time.Now,
	}
}

// WithTTL returns a copy of the service issuing tokens valid for ttl.
func (s *Service) WithTTL(ttl time.Duration) *Service {
	cp := *s
	cp.ttl = ttl
	return &cp
}

func (s *Service) TTL() time.Duration {
	return s.ttl
}

// GenerateToken issues an HS256 access token in the BaaS format for userID.
func (s *Service) GenerateToken(userID, email string, metadata map[string]interface{}) (string, error) {
	now := s.now()
	claims := Claims{
		Email:        email,
		Role:         RoleAuthenticated,
		UserMetadata: metadata,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Audience:  jwt.ClaimStrings{RoleAuthenticated},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secretKey)
}

func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}

// ValidateUserToken is ValidateToken restricted to tokens of signed-in users,
// rejecting the anon key and service tokens.
func (s *Service) ValidateUserToken(tokenString string) (*Claims, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.Role != RoleAuthenticated || claims.Subject == "" {
		return nil, ErrNotUserToken
	}
	return claims, nil
}
