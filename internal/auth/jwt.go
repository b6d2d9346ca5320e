package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/wolfeidau/userhub/internal/models"
)

// TokenTTL is the fixed lifetime of a session token.
const TokenTTL = 7 * 24 * time.Hour

// MinSecretLength is the minimum length of the signing secret.
// Startup fails if JWT_SECRET is shorter.
const MinSecretLength = 10

// Identity is the claim set carried by every session token.
// It is trusted on the strength of the token signature and expiry alone;
// it is not re-checked against the database on every request.
type Identity struct {
	UserID uuid.UUID
	Role   string
}

// IsAdmin returns true if the identity holds the ADMIN role.
func (i Identity) IsAdmin() bool {
	return i.Role == models.RoleAdmin
}

// sessionClaims is the JWT claim layout: the user id travels in the
// registered subject claim, the role in a private claim.
type sessionClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Codec issues and verifies HMAC-signed session tokens.
// It is constructed once at startup and safe for concurrent use.
type Codec struct {
	secret []byte
	now    func() time.Time
}

// NewCodec creates a token codec from the configured signing secret.
func NewCodec(secret string) (*Codec, error) {
	if len(secret) < MinSecretLength {
		return nil, errors.New("signing secret must be at least 10 characters")
	}

	return &Codec{
		secret: []byte(secret),
		now:    time.Now,
	}, nil
}

// Issue signs a session token carrying the identity, expiring in TokenTTL.
func (c *Codec) Issue(identity Identity) (string, error) {
	now := c.now()

	claims := sessionClaims{
		Role: identity.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// Verify validates the signature and expiry of a session token.
// It returns nil on any failure - expired, tampered, malformed, wrong
// algorithm, or missing claims - so callers have a single non-erroring
// decision point. A non-nil result always carries both user id and role.
func (c *Codec) Verify(tokenString string) *Identity {
	parsed, err := jwt.ParseWithClaims(tokenString, &sessionClaims{}, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("invalid signing method")
		}
		return c.secret, nil
	}, jwt.WithTimeFunc(c.now))
	if err != nil {
		log.Debug().Err(err).Msg("Session token rejected")
		return nil
	}

	if !parsed.Valid {
		return nil
	}

	claims, ok := parsed.Claims.(*sessionClaims)
	if !ok {
		return nil
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		log.Debug().Msg("Session token subject is not a valid user id")
		return nil
	}

	if claims.Role != models.RoleUser && claims.Role != models.RoleAdmin {
		log.Debug().Str("role", claims.Role).Msg("Session token carries unknown role")
		return nil
	}

	return &Identity{UserID: userID, Role: claims.Role}
}
