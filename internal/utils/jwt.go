package utils

import (
	"errors" // Error classification
	"time"   // Time for token expiration

	"eventwave/internal/domain" // Role vocabulary

	"github.com/golang-jwt/jwt/v5" // JWT library
	"github.com/sirupsen/logrus"   // Logging of failure classes
)

// ErrInvalidToken is the only verification failure callers ever see
var ErrInvalidToken = errors.New("invalid token")

// Claims carried by every token
type Claims struct {
	UserID               uint        `json:"uid"`         // Account the token was issued to
	Role                 domain.Role `json:"role"`        // Single role claim
	Authorities          []string    `json:"authorities"` // Derived ROLE_<ROLE> list
	jwt.RegisteredClaims             // Subject, issued-at, expiry
}

// Identity is what a verified token proves
type Identity struct {
	UserID   uint        // uid claim, stable across renames
	Username string      // Token subject
	Role     domain.Role // Role claim
}

// TokenService issues and verifies HS256 tokens with a key fixed at construction
type TokenService struct {
	secret []byte           // Signing key, read-only after construction
	ttl    time.Duration    // Token lifetime
	now    func() time.Time // Clock, replaceable in tests
}

// NewTokenService builds a service that signs with secret and issues tokens valid for ttl
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// WithClock returns a copy of the service that reads time from now
func (s *TokenService) WithClock(now func() time.Time) *TokenService {
	cp := *s
	cp.now = now
	return &cp
}

// TTL is the lifetime given to issued tokens
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// Issue creates a signed token for the given account
func (s *TokenService) Issue(userID uint, username string, role domain.Role) (string, error) {
	if userID == 0 || username == "" || !role.Valid() {
		return "", errors.New("issue token: user id, username and a known role are required")
	}
	issuedAt := s.now()
	claims := Claims{
		UserID:      userID,                     // Account id
		Role:        role,                       // Role claim
		Authorities: []string{role.Authority()}, // Authorities for policy matching
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,                                // Username as subject
			IssuedAt:  jwt.NewNumericDate(issuedAt),            // Issued at current time
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.ttl)), // Fixed horizon from issuance
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims) // Create token with claims
	return token.SignedString(s.secret)                        // Sign the token with the secret
}

// Verify validates signature and expiry and returns the identity inside.
// Every failure collapses into ErrInvalidToken; the class is only logged.
func (s *TokenService) Verify(tokenStr string) (*Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (any, error) {
		return s.secret, nil // Return the secret key for validation
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), // Refuse alg switching
		jwt.WithExpirationRequired(),                                 // exp must be present
		jwt.WithIssuedAt(),                                           // iat must not be in the future
		jwt.WithStrictDecoding(),                                     // Any altered byte fails decoding or signature
		jwt.WithTimeFunc(s.now),                                      // Injected clock
	)
	if err != nil {
		logrus.WithField("reason", failureClass(err)).Debug("token rejected")
		return nil, ErrInvalidToken
	}
	if !token.Valid || claims.UserID == 0 || claims.Subject == "" || !claims.Role.Valid() {
		logrus.WithField("reason", "claims").Debug("token rejected")
		return nil, ErrInvalidToken
	}
	return &Identity{UserID: claims.UserID, Username: claims.Subject, Role: claims.Role}, nil
}

// failureClass names why a token failed, for internal logs only
func failureClass(err error) string {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return "expired"
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return "signature"
	case errors.Is(err, jwt.ErrTokenMalformed):
		return "malformed"
	case errors.Is(err, jwt.ErrTokenUsedBeforeIssued):
		return "issued_in_future"
	default:
		return "invalid"
	}
}
