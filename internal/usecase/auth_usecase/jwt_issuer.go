package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// アクセストークンの有効期限
const accessTokenTTL = 24 * time.Hour

// HS256でJWTを署名発行する
type JwtIssuer struct {
	secret []byte
	ttl    time.Duration
}

// DI
func NewJwtIssuer(secret string) *JwtIssuer {
	return &JwtIssuer{
		secret: []byte(secret),
		ttl:    accessTokenTTL,
	}
}

func (i *JwtIssuer) Issue(userID int64, email string, roles []string, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(i.ttl)

	claims := jwt.MapClaims{
		"sub":   userID,
		"email": email,
		"roles": roles,
		"iat":   now.Unix(),
		"exp":   expiresAt.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}
