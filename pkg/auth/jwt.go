package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// TableClaims grants whoever holds the token control of one table.
type TableClaims struct {
	TableID string `json:"table_id"`
	jwt.RegisteredClaims
}

// TableTokens signs and checks table tokens with an HMAC secret.
type TableTokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTableTokens(secret string, ttl time.Duration) *TableTokens {
	return &TableTokens{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Generate creates a token for tableID that expires after the configured ttl
func (t *TableTokens) Generate(tableID string) (string, error) {
	now := t.now()
	claims := &TableClaims{
		TableID: tableID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   tableID,
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Validate checks the signature and expiry and returns the claims
func (t *TableTokens) Validate(tokenString string) (*TableClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TableClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return t.secret, nil
	}, jwt.WithTimeFunc(t.now))

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*TableClaims); ok && token.Valid && claims.TableID != "" {
		return claims, nil
	}

	return nil, ErrInvalidToken
}

// Authorize is Validate plus a check that the token belongs to tableID.
func (t *TableTokens) Authorize(tokenString, tableID string) error {
	claims, err := t.Validate(tokenString)
	if err != nil {
		return err
	}
	if claims.TableID != tableID {
		return ErrInvalidToken
	}
	return nil
}
