// Package token issues and verifies the signed bearer tokens that
// carry a user identity between login and the protected endpoints.
package token

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/spf13/viper"
)

// Claims embeds the registered JWT claims (sub, exp) and adds the
// user's email.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
}

const defaultTTLMinutes = 30

func secret() []byte {
	return []byte(viper.GetString("auth.secret"))
}

func ttl() time.Duration {
	minutes := viper.GetInt("auth.token_ttl_minutes")
	if minutes <= 0 {
		minutes = defaultTTLMinutes
	}
	return time.Duration(minutes) * time.Minute
}

// Issue signs an HS256 token for the user with exp = now + TTL.
func Issue(userID uint, email string) (string, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl())),
		},
		Email: email,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret())
}

// Verify checks signature and expiry and returns the subject user id.
// Malformed tokens, bad signatures, expired tokens and tokens without
// a subject all fail.
func Verify(tokenString string) (uint, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret(), nil
	})
	if err != nil {
		return 0, err
	}
	if !token.Valid {
		return 0, fmt.Errorf("invalid token")
	}
	if claims.Subject == "" {
		return 0, fmt.Errorf("token has no subject")
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid token subject %q", claims.Subject)
	}

	return uint(userID), nil
}
