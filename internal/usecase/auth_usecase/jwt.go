package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"storefront/internal/domain/model"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// 出品者トークンのclaims
type SellerClaims struct {
	Email     string `json:"email"`
	Name      string `json:"name"`
	StoreName string `json:"storeName"`
	jwt.RegisteredClaims
}

// SellerIDはsubから取り出す
func (c *SellerClaims) SellerID() (int64, error) {
	return strconv.ParseInt(c.Subject, 10, 64)
}

// HS256で署名・検証する
type JWTIssuer struct {
	secret []byte
	ttl    time.Duration
}

func NewJWTIssuer(secret string, ttl time.Duration) *JWTIssuer {
	return &JWTIssuer{secret: []byte(secret), ttl: ttl}
}

func (i *JWTIssuer) Issue(seller *model.Seller, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(i.ttl)

	claims := SellerClaims{
		Email:     seller.Email,
		Name:      seller.Name,
		StoreName: seller.StoreName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(seller.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// 署名・期限・subを検証してclaimsを返す
func (i *JWTIssuer) Parse(raw string) (*SellerClaims, error) {
	claims := &SellerClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return i.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if id, err := claims.SellerID(); err != nil || id <= 0 {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
