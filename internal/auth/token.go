package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verification failures. The middleware maps ErrMissingToken to 401 and the
// other two to 400.
var (
	ErrMissingToken   = errors.New("no token provided")
	ErrMalformedToken = errors.New("malformed token")
	ErrBadSignature   = errors.New("bad token signature")
)

// Identity is the verified subject of a request.
type Identity struct {
	SubjectID string
	IsAdmin   bool
}

// Claims is the signed token payload.
type Claims struct {
	IsAdmin bool `json:"isAdmin"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies bearer tokens with a process-wide HMAC secret.
// Rotating the secret invalidates all outstanding tokens.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

// NewIssuer creates an Issuer. A zero ttl issues tokens without an expiry
// claim.
func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token embedding the subject id and admin flag.
func (i *Issuer) Issue(subjectID string, isAdmin bool) (string, error) {
	claims := Claims{
		IsAdmin: isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  subjectID,
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}
	if i.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(i.ttl))
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}

// Verify checks the signature and decodes the claims.
func (i *Issuer) Verify(tokenString string) (Identity, error) {
	if tokenString == "" {
		return Identity{}, ErrMissingToken
	}
	var claims Claims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return i.secret, nil
	})
	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenMalformed):
		return Identity{}, ErrMalformedToken
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return Identity{}, ErrBadSignature
	default:
		return Identity{}, fmt.Errorf("verify token: %w", err)
	}
	return Identity{SubjectID: claims.Subject, IsAdmin: claims.IsAdmin}, nil
}
