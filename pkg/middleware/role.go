package middleware

import (
	"net/http"
	"slices"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/daily-revenue-pipeline/internal/domain"
	"github.com/vfg2006/daily-revenue-pipeline/pkg/apiErrors"
)

// RoleMiddleware restringe o acesso aos papéis informados
func RoleMiddleware(allowedRoles []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				logrus.Warning("Tentativa de acesso sem autenticação")
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
				return
			}

			if !slices.Contains(allowedRoles, claims.Role) {
				logrus.Warningf("Acesso negado para subject=%s, role=%s", claims.Subject, claims.Role)
				apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Você não tem permissão para acessar este recurso", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// OperatorOnly permite acesso apenas a operadores do pipeline
func OperatorOnly() func(http.Handler) http.Handler {
	return RoleMiddleware([]string{domain.RoleOperator})
}

func AllRoles() func(http.Handler) http.Handler {
	return RoleMiddleware([]string{domain.RoleOperator, domain.RoleViewer})
}
