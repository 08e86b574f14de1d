package security

import (
	"errors"
	"time"

	"github.com/clique77/job-portal-sub001/internal/config"
	"github.com/clique77/job-portal-sub001/internal/domain/models"
	"github.com/golang-jwt/jwt/v5"
)

type JWTProvider struct {
	secret []byte
	ttl    time.Duration
	issuer string
}

func NewJWTProvider(cfg config.AuthConfig) (*JWTProvider, error) {
	if cfg.JWTSecret == "" {
		return nil, errors.New("jwt secret is empty")
	}
	if cfg.TokenTTL <= 0 {
		return nil, errors.New("token ttl must be positive")
	}
	return &JWTProvider{secret: []byte(cfg.JWTSecret), ttl: cfg.TokenTTL, issuer: cfg.Issuer}, nil
}

type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

func (p *JWTProvider) Generate(user *models.User) (string, time.Time, error) {
	now := time.Now().UTC()
	expiresAt := now.Add(p.ttl)

	claims := Claims{
		Role: string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			Issuer:    p.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Parse verifies signature, expiry and issuer and returns the actor the
// token was issued for.
func (p *JWTProvider) Parse(token string) (models.Actor, error) {
	var claims Claims

	options := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if p.issuer != "" {
		options = append(options, jwt.WithIssuer(p.issuer))
	}

	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return p.secret, nil
	}, options...)
	if err != nil {
		return models.Actor{}, err
	}

	role, err := models.ToRole(claims.Role)
	if err != nil {
		return models.Actor{}, err
	}
	if claims.Subject == "" {
		return models.Actor{}, errors.New("token has no subject")
	}

	return models.Actor{ID: models.NormalizeID(claims.Subject), Role: role}, nil
}
