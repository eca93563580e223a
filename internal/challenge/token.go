// internal/challenge/token.go
//
// Signed challenge tokens. A challenge run is identified by a short-lived
// HS256 JWT minted at start; the token string itself is the seed input for
// board generation (via rng.ForToken), so the whole run can be replayed,
// and result submission is only accepted with a verifiable token.

package challenge

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken rejects expired, malformed, or tampered tokens.
var ErrInvalidToken = errors.New("invalid challenge token")

// Claims identify one challenge run.
type Claims struct {
	TileCount int `json:"tiles"`
	jwt.RegisteredClaims
}

// Mint signs a new challenge token valid for ttl. The token's JWT ID is a
// fresh random identifier; the TokenID from Parse keys result rows.
func Mint(secret string, tileCount int, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		TileCount: tileCount,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        randomID(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// Parse verifies a token and returns its claims.
func Parse(secret, token string) (Claims, error) {
	var claims Claims
	t, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil || !t.Valid || claims.ID == "" {
		return Claims{}, ErrInvalidToken
	}
	return claims, nil
}

// randomID returns a compact 16-hex-char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
