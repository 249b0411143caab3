package authenticating

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/daily-revenue-pipeline/internal/config"
	"github.com/vfg2006/daily-revenue-pipeline/internal/domain"
	"github.com/vfg2006/daily-revenue-pipeline/pkg/apiErrors"
)

const issuer = "daily-revenue-pipeline"

// Authenticator emite e valida os tokens da API. Não há cadastro de usuários:
// o operador gera tokens pela CLI.
type Authenticator interface {
	GenerateToken(subject, role string, ttl time.Duration) (string, error)
	ValidateToken(tokenString string) (*domain.Claims, error)
}

type Service struct {
	secret     []byte
	defaultTTL time.Duration
	now        func() time.Time
}

func NewService(cfg config.Auth) Authenticator {
	return &Service{
		secret:     []byte(cfg.Secret),
		defaultTTL: time.Duration(cfg.TokenTTLHours) * time.Hour,
		now:        time.Now,
	}
}

// GenerateToken assina um token HS256. ttl <= 0 usa o valor configurado.
func (s *Service) GenerateToken(subject, role string, ttl time.Duration) (string, error) {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return "", NewAuthError(ErrMissingSubject, apiErrors.ErrInvalidRequest, "")
	}
	if !validRole(role) {
		return "", NewAuthError(ErrInvalidRole, apiErrors.ErrInvalidRequest, fmt.Sprintf("papel %q", role))
	}
	if ttl <= 0 {
		ttl = s.defaultTTL
	}

	now := s.now()
	claims := &domain.Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", err
	}

	logrus.WithFields(logrus.Fields{
		"subject": subject,
		"role":    role,
		"ttl":     ttl.String(),
	}).Info("Token de API emitido")

	return signed, nil
}

func (s *Service) ValidateToken(tokenString string) (*domain.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithIssuer(issuer), jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, NewAuthError(ErrExpiredToken, apiErrors.ErrExpiredToken, "")
		}
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, err.Error())
	}

	claims, ok := token.Claims.(*domain.Claims)
	if !ok || !token.Valid || !validRole(claims.Role) {
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, "")
	}

	return claims, nil
}

func validRole(role string) bool {
	return role == domain.RoleOperator || role == domain.RoleViewer
}
