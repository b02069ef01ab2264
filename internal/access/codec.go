package access

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrTokenInvalid covers every token decode failure: bad signature,
// malformed structure, wrong algorithm or expiry in the past. The cause
// is deliberately not differentiated so callers cannot build an oracle
// out of the response.
var ErrTokenInvalid = errors.New("access: invalid token")

// Codec signs Claims into compact HS256 tokens and verifies them back.
// The secret is fixed at construction and shared read-only between
// concurrent calls.
type Codec struct {
	secret []byte
	now    func() time.Time
}

// NewCodec constructs a Codec around a symmetric signing secret.
func NewCodec(secret []byte) *Codec {
	return &Codec{secret: secret, now: time.Now}
}

// WithClock overrides the codec's clock. Test hook.
func (c *Codec) WithClock(now func() time.Time) *Codec {
	c.now = now
	return c
}

// tokenClaims is the wire shape of Claims inside the JWT payload.
type tokenClaims struct {
	Role        string   `json:"role"`
	Permissions []string `json:"permissions,omitempty"`
	jwt.RegisteredClaims
}

// Issue signs the claims into a compact token. Expiry is taken from the
// claims as an absolute timestamp; the codec never computes it.
func (c *Codec) Issue(claims Claims) (string, error) {
	wire := tokenClaims{
		Role: claims.Role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   claims.Subject,
			ExpiresAt: jwt.NewNumericDate(claims.ExpiresAt),
		},
	}
	if claims.Permissions != nil {
		wire.Permissions = claims.Permissions.Strings()
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, wire).SignedString(c.secret)
}

// Decode verifies signature and expiry and reconstructs the Claims.
// The expiry check is strictly now < exp with no leeway, and a token
// without an exp claim is rejected.
func (c *Codec) Decode(token string) (Claims, error) {
	var wire tokenClaims
	parsed, err := jwt.ParseWithClaims(token, &wire,
		func(*jwt.Token) (any, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil || !parsed.Valid {
		return Claims{}, ErrTokenInvalid
	}

	role, err := ParseRole(wire.Role)
	if err != nil {
		return Claims{}, ErrTokenInvalid
	}
	claims := Claims{
		Subject:   wire.Subject,
		Role:      role,
		ExpiresAt: wire.ExpiresAt.Time,
	}
	if wire.Permissions != nil {
		set, err := ParseSet(wire.Permissions)
		if err != nil {
			return Claims{}, ErrTokenInvalid
		}
		claims.Permissions = set
	}
	return claims, nil
}
