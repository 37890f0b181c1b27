package identity

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/khanghh/vbs/model"
)

type TokenClaims struct {
	Email string     `json:"email"`
	Role  model.Role `json:"role"`
	jwt.RegisteredClaims
}

// UserID returns the id carried in the subject claim.
func (c *TokenClaims) UserID() (uint, error) {
	id, err := strconv.ParseUint(c.Subject, 10, 64)
	if err != nil || id == 0 {
		return 0, ErrTokenInvalid
	}
	return uint(id), nil
}

// TokenProvider issues HS256 bearer tokens for the JSON API. The role in a
// token is informational; requests always use the role stored on the user.
type TokenProvider struct {
	secret    []byte
	expiresIn time.Duration
	now       func() time.Time
}

func (p *TokenProvider) Issue(user *model.User) (string, time.Time, error) {
	now := p.now()
	expiresAt := now.Add(p.expiresIn)
	claims := TokenClaims{
		Email: user.Email,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(p.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func (p *TokenProvider) Parse(tokenStr string) (*TokenClaims, error) {
	var claims TokenClaims
	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return p.secret, nil
	}, jwt.WithTimeFunc(p.now), jwt.WithExpirationRequired())
	if errors.Is(err, jwt.ErrTokenExpired) {
		return nil, ErrTokenExpired
	}
	if err != nil || !token.Valid {
		return nil, ErrTokenInvalid
	}
	return &claims, nil
}

func NewTokenProvider(secret string, expiresIn time.Duration, now func() time.Time) *TokenProvider {
	if now == nil {
		now = time.Now
	}
	return &TokenProvider{
		secret:    []byte(secret),
		expiresIn: expiresIn,
		now:       now,
	}
}
