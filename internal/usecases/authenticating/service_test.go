package authenticating

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/daily-revenue-pipeline/internal/config"
	"github.com/vfg2006/daily-revenue-pipeline/internal/domain"
)

func newTestService() *Service {
	return NewService(config.Auth{Secret: "segredo-de-teste", TokenTTLHours: 24}).(*Service)
}

func TestService_GenerateAndValidateToken(t *testing.T) {
	service := newTestService()

	tests := []struct {
		name     string
		subject  string
		role     string
		ttl      time.Duration
		validate func(t *testing.T, token string, err error)
	}{
		{
			name:    "Operador com TTL padrão",
			subject: "ops",
			role:    domain.RoleOperator,
			validate: func(t *testing.T, token string, err error) {
				require.NoError(t, err)
				claims, err := service.ValidateToken(token)
				require.NoError(t, err)
				assert.Equal(t, "ops", claims.Subject)
				assert.Equal(t, domain.RoleOperator, claims.Role)
				assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt.Time, time.Minute)
			},
		},
		{
			name:    "Leitor com TTL explícito",
			subject: "dashboard",
			role:    domain.RoleViewer,
			ttl:     time.Hour,
			validate: func(t *testing.T, token string, err error) {
				require.NoError(t, err)
				claims, err := service.ValidateToken(token)
				require.NoError(t, err)
				assert.Equal(t, domain.RoleViewer, claims.Role)
				assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
			},
		},
		{
			name:    "Papel desconhecido",
			subject: "ops",
			role:    "admin",
			validate: func(t *testing.T, token string, err error) {
				assert.ErrorIs(t, err, ErrInvalidRole)
				assert.Empty(t, token)
			},
		},
		{
			name:    "Subject vazio",
			subject: "  ",
			role:    domain.RoleViewer,
			validate: func(t *testing.T, token string, err error) {
				assert.ErrorIs(t, err, ErrMissingSubject)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := service.GenerateToken(tt.subject, tt.role, tt.ttl)
			tt.validate(t, token, err)
		})
	}
}

func TestService_ValidateToken_Rejections(t *testing.T) {
	service := newTestService()

	expired := &Service{
		secret:     service.secret,
		defaultTTL: time.Hour,
		now:        func() time.Time { return time.Now().Add(-48 * time.Hour) },
	}
	expiredToken, err := expired.GenerateToken("ops", domain.RoleOperator, time.Hour)
	require.NoError(t, err)

	otherSecret := NewService(config.Auth{Secret: "outro", TokenTTLHours: 1})
	foreignToken, err := otherSecret.GenerateToken("ops", domain.RoleOperator, 0)
	require.NoError(t, err)

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, &domain.Claims{Role: domain.RoleOperator}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{name: "Token expirado", token: expiredToken, wantErr: ErrExpiredToken},
		{name: "Assinado com outro segredo", token: foreignToken, wantErr: ErrInvalidToken},
		{name: "Algoritmo none", token: noneToken, wantErr: ErrInvalidToken},
		{name: "Texto qualquer", token: "nao.e.jwt", wantErr: ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := service.ValidateToken(tt.token)
			assert.Nil(t, claims)
			assert.True(t, errors.Is(err, tt.wantErr), "erro inesperado: %v", err)
			assert.True(t, IsAuthorizationError(err))
		})
	}
}
