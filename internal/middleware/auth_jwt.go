package middleware

import (
	"net/http"
	"strings"

	"shopapi/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const (
	CtxUserIDKey   = "user_id"   // int64
	CtxUserRoleKey = "user_role" // string

	//cookieのトークン名
	TokenCookieName = "token"
)

func errorJSON(msg string) map[string]string {
	return map[string]string{"error": msg}
}

// トークンをcookieまたはAuthorization: Bearerから取り出す。
// 両方あればヘッダを優先する。
func extractToken(c echo.Context) string {
	authz := c.Request().Header.Get("Authorization")
	if authz != "" {
		parts := strings.SplitN(authz, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
	}

	cookie, err := c.Cookie(TokenCookieName)
	if err == nil && cookie.Value != "" {
		return cookie.Value
	}

	return ""
}

// JWT検証ミドルウェア。
// 失敗したらハンドラに入る前に401で止める。
func AuthJWT(cfg config.Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenStr := extractToken(c)
			if tokenStr == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("No token provided"))
			}

			token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
				//HS256以外は受け付けない
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(cfg.JWTSecret), nil
			})
			if err != nil || !token.Valid {
				//期限切れも署名不正もまとめて401
				return c.JSON(http.StatusUnauthorized, errorJSON("Invalid token"))
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, errorJSON("Invalid token"))
			}

			//subは数値で入れている
			sub, ok := claims["sub"].(float64)
			if !ok || sub <= 0 {
				return c.JSON(http.StatusUnauthorized, errorJSON("Invalid token"))
			}
			role, _ := claims["role"].(string)

			c.Set(CtxUserIDKey, int64(sub))
			c.Set(CtxUserRoleKey, role)

			return next(c)
		}
	}
}
