package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
)

var ErrInvalidSessionToken = errors.New("invalid session token")

type SessionClaims struct {
	SessionID string
	AuthToken string
}

func CreateSessionToken(claimsData SessionClaims, secret string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{}
	claims["sid"] = claimsData.SessionID
	claims["authToken"] = claimsData.AuthToken
	claims["exp"] = time.Now().Add(ttl).Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ParseSessionToken(tokenString, secret string) (SessionClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return SessionClaims{}, ErrInvalidSessionToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return SessionClaims{}, ErrInvalidSessionToken
	}

	sid, _ := claims["sid"].(string)
	if sid == "" {
		return SessionClaims{}, ErrInvalidSessionToken
	}
	authToken, _ := claims["authToken"].(string)

	return SessionClaims{SessionID: sid, AuthToken: authToken}, nil
}
