package domain

import (
	"github.com/golang-jwt/jwt/v5"
)

// Papéis aceitos nos tokens da API
const (
	RoleOperator = "operator"
	RoleViewer   = "viewer"
)

type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}
