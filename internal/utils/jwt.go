// Package utils provides helpers for token issuance and password hashing.
package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessToken is a freshly signed JWT together with the metadata the caller
// needs: the unique token identifier (jti) used for revocation and the UTC
// expiration time.
type AccessToken struct {
	Token string    // serialized JWT string
	JTI   string    // unique token identifier embedded in the claims
	Exp   time.Time // UTC expiration time
}

// AccessClaims are the identity claims carried by a verified access token.
type AccessClaims struct {
	Email  string    // sub claim
	UserID uint64    // user_id claim
	JTI    string    // jti claim
	Exp    time.Time // exp claim
}

// ErrInvalidToken is returned when a token fails structural or signature
// validation, or when its claims are not in the expected shape.
var ErrInvalidToken = errors.New("invalid token")

// NewAccessToken builds and signs an HS256 JWT for a user. The subject is
// the user's email, user_id carries the numeric id, and jti is a random
// UUID recorded on logout to revoke the token. The TTL is given in minutes.
func NewAccessToken(secret, email string, userID uint64, ttlMin int) (AccessToken, error) {
	now := time.Now().UTC()
	exp := now.Add(time.Duration(ttlMin) * time.Minute)
	jti := uuid.NewString()
	claims := jwt.MapClaims{
		"sub":     email,
		"user_id": userID,
		"jti":     jti,
		"iat":     now.Unix(),
		"exp":     exp.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, JTI: jti, Exp: exp}, nil
}

// ParseAccessToken verifies the signature and expiry of a serialized access
// token and returns its identity claims. Expired tokens surface
// jwt.ErrTokenExpired through the returned error chain so callers can
// distinguish them from malformed ones.
func ParseAccessToken(secret, raw string) (*AccessClaims, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !tok.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	sub, _ := claims["sub"].(string)
	jti, _ := claims["jti"].(string)
	uid, ok := claims["user_id"].(float64) // numeric claims decode as float64
	if !ok || sub == "" || jti == "" {
		return nil, ErrInvalidToken
	}
	exp, _ := claims["exp"].(float64)
	return &AccessClaims{
		Email:  sub,
		UserID: uint64(uid),
		JTI:    jti,
		Exp:    time.Unix(int64(exp), 0).UTC(),
	}, nil
}
