// Package auth implements the stateless token service. Tokens are HS256
// JWTs carrying the member ID as subject and the member role as a custom
// claim. The signing key lives on an explicitly constructed TokenService
// instance that is passed to its consumers; there is no package-level
// signing state.
package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/roomescape/reservation-service/internal/model"
)

// ErrInvalidToken is returned by Verify for any token that cannot be
// trusted: bad signature, malformed payload, expiry in the past, or a
// role claim outside the closed role set.
var ErrInvalidToken = errors.New("invalid token")

// Claims are the decoded identity fields of a verified token.
type Claims struct {
	MemberID uint64
	Role     model.Role
}

// TokenService issues and verifies identity tokens. It is stateless and
// safe for concurrent use.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService builds a TokenService signing with secret and issuing
// tokens valid for ttl.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a token for the member with the configured lifetime. The
// subject is the stringified member ID, matching what Verify decodes.
func (s *TokenService) Issue(m model.Member) (string, error) {
	now := s.now().UTC()
	claims := jwt.MapClaims{
		"sub":  strconv.FormatUint(m.ID, 10),
		"role": string(m.Role),
		"iat":  now.Unix(),
		"exp":  now.Add(s.ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Verify validates the signature and expiry of raw and decodes its
// claims. It never re-checks whether the subject still exists; a
// well-formed, unexpired, correctly signed token always verifies.
func (s *TokenService) Verify(raw string) (Claims, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		// Reject any signing method other than HMAC before touching claims.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return s.now() }))
	if err != nil || !tok.Valid {
		return Claims{}, ErrInvalidToken
	}
	mc, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrInvalidToken
	}
	sub, ok := mc["sub"].(string)
	if !ok {
		return Claims{}, ErrInvalidToken
	}
	id, err := strconv.ParseUint(sub, 10, 64)
	if err != nil || id == 0 {
		return Claims{}, ErrInvalidToken
	}
	rawRole, ok := mc["role"].(string)
	if !ok {
		return Claims{}, ErrInvalidToken
	}
	// Unknown role values fail closed.
	role, ok := model.ParseRole(rawRole)
	if !ok {
		return Claims{}, ErrInvalidToken
	}
	return Claims{MemberID: id, Role: role}, nil
}
