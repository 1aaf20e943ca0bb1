package middleware

import (
	"net/http"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// CookieName is the session cookie carrying the signed token.
const CookieName = "token"

// SessionTTL is the fixed validity window of a session token.
const SessionTTL = 7 * 24 * time.Hour

// Claims defines the JWT payload structure.
type Claims struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

var jwtSecret []byte

func init() {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev-secret-please-change"
	}
	jwtSecret = []byte(secret)
}

// SetSecret overrides the signing key; main calls this with the configured
// secret. Tokens issued before a key change become unverifiable.
func SetSecret(secret string) {
	jwtSecret = []byte(secret)
}

// GenerateToken creates a signed session token for the given user.
func GenerateToken(userID, email string) (string, error) {
	claims := &Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(SessionTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "userauth-api",
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(jwtSecret)
}

// ParseToken validates a token string and returns its claims.
func ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

// JWTMiddleware validates the session cookie and attaches the claims to the
// request context. The authenticated principal is then passed explicitly to
// the service layer by each handler.
func JWTMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(CookieName)
			if err != nil || cookie.Value == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"success": false,
					"message": "Not authorized. Login again",
				})
			}
			claims, err := ParseToken(cookie.Value)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"success": false,
					"message": "Not authorized. Login again",
				})
			}
			c.Set("auth_claims", claims)
			return next(c)
		}
	}
}

// GetClaims extracts the authenticated principal set by JWTMiddleware.
func GetClaims(c echo.Context) *Claims {
	v := c.Get("auth_claims")
	if v == nil {
		return nil
	}
	if cl, ok := v.(*Claims); ok {
		return cl
	}
	return nil
}

// SetSessionCookie attaches the session token per the cookie contract:
// HTTP-only, 7-day max-age, Secure+SameSite=None in production so the SPA
// origin can send it cross-site, Lax in development.
func SetSessionCookie(c echo.Context, token string, production bool) {
	c.SetCookie(sessionCookie(token, int(SessionTTL.Seconds()), production))
}

// ClearSessionCookie expires the session cookie immediately.
func ClearSessionCookie(c echo.Context, production bool) {
	c.SetCookie(sessionCookie("", -1, production))
}

func sessionCookie(value string, maxAge int, production bool) *http.Cookie {
	cookie := &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   production,
		SameSite: http.SameSiteLaxMode,
	}
	if production {
		cookie.SameSite = http.SameSiteNoneMode
	}
	return cookie
}
