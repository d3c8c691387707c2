package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// validateTokenExpiry chequea exp con un leeway chico para
// tolerar desfasajes de reloj entre instancias.
func validateTokenExpiry(claims jwt.MapClaims, leeway time.Duration) error {
	exp, ok := claims["exp"].(float64)
	if !ok {
		return errors.New("claim exp ausente")
	}
	expiresAt := time.Unix(int64(exp), 0)
	if time.Now().After(expiresAt.Add(leeway)) {
		return errors.New("token vencido")
	}
	return nil
}

func extractUserID(claims jwt.MapClaims) (string, error) {
	if v, ok := claims["user_id"].(string); ok && v != "" {
		return v, nil
	}
	if v, ok := claims["sub"].(string); ok && v != "" {
		return v, nil
	}
	return "", errors.New("user_id ausente en claims")
}
