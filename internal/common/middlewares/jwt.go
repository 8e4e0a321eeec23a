package middlewares

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/bidancare/bidan-backend/pkg/utils"
)

// Tipe kustom untuk context key agar tidak bentrok dengan key lain.
type contextKey string

const ContextKeyClaims contextKey = "claims"

// JWTMiddleware memvalidasi header Authorization Bearer dan menyimpan
// klaim ke context. Token reset password ditolak di sini.
func JWTMiddleware(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return c.JSON(http.StatusUnauthorized, map[string]interface{}{
					"success": false,
					"message": "Authorization header missing",
					"data":    nil,
				})
			}
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				return c.JSON(http.StatusUnauthorized, map[string]interface{}{
					"success": false,
					"message": "Invalid authorization header",
					"data":    nil,
				})
			}
			claims, err := utils.ValidateToken(secret, parts[1])
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]interface{}{
					"success": false,
					"message": "Invalid token: " + err.Error(),
					"data":    nil,
				})
			}
			if claims.IsReset {
				return c.JSON(http.StatusForbidden, map[string]interface{}{
					"success": false,
					"message": "Token reset tidak berlaku untuk endpoint ini",
					"data":    nil,
				})
			}
			c.Set(string(ContextKeyClaims), claims)
			return next(c)
		}
	}
}

// ClaimsFrom mengambil klaim JWT yang disimpan oleh JWTMiddleware.
func ClaimsFrom(c echo.Context) *utils.Claims {
	claims, _ := c.Get(string(ContextKeyClaims)).(*utils.Claims)
	return claims
}
