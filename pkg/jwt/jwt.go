package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims refleja los claims que emite la API de inventario al hacer login.
// El front-end nunca verifica la firma: solo los lee para mostrar rol y vencimiento.
type Claims struct {
	jwt.RegisteredClaims
	UserID int64  `json:"user_id"`
	Role   string `json:"role"` // "admin" | "vendedor" | "repositor"
}

// ExpiresAtTime devuelve el vencimiento del token o el tiempo cero si no lo trae.
func (c *Claims) ExpiresAtTime() time.Time {
	if c == nil || c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}

// Expired indica si el token ya venció respecto de now. Sin exp nunca vence.
func (c *Claims) Expired(now time.Time) bool {
	exp := c.ExpiresAtTime()
	return !exp.IsZero() && now.After(exp)
}

// Generate firma un token HS256 con el mismo formato que la API. Lo usan los tests
// y el backend de desarrollo para simular sesiones.
func Generate(secret string, userID int64, role string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		UserID: userID,
		Role:   role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Inspect decodifica el token SIN validar firma ni vencimiento.
// Retorna error solo si el token no tiene forma de JWT.
func Inspect(tokenString string) (*Claims, error) {
	claims := &Claims{}
	_, _, err := jwt.NewParser().ParseUnverified(tokenString, claims)
	if err != nil {
		return nil, fmt.Errorf("jwt: token ilegible: %w", err)
	}
	return claims, nil
}
