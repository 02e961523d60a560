package middleware

import (
	"net/http"
	"time"

	"birthday-home/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

const (
	IdentityCookie = "birthday"
	AdminCookie    = "admin_token"

	// context keys set by RequireIdentity
	CtxBirthday    = "birthday"
	CtxDisplayName = "display_name"

	identityMaxAge = 365 * 24 * 3600
	adminTokenTTL  = 12 * time.Hour
)

// RequireIdentity gates every protected route on the identity cookie. Failure
// produces a 401 and no other side effect.
func RequireIdentity(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(IdentityCookie)
		if err != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
			return
		}
		var u model.User
		if err := db.Where("birthday = ?", token).First(&u).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
			return
		}
		c.Set(CtxBirthday, u.Birthday)
		c.Set(CtxDisplayName, u.DisplayName)
		c.Next()
	}
}

// SetIdentityCookie issues the long-lived identity cookie. The token is the
// credential itself; no signing beyond the allow-list check it already passed.
func SetIdentityCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(IdentityCookie, token, identityMaxAge, "/", "", false, true)
}

func IssueAdminToken(secret []byte) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"role": "admin",
		"exp":  time.Now().Add(adminTokenTTL).Unix(),
	}).SignedString(secret)
}

func SetAdminCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(AdminCookie, token, int(adminTokenTTL/time.Second), "/", "", false, true)
}

func AdminAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(AdminCookie)
		if err != nil || raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
			return secret, nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok || claims["role"] != "admin" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Next()
	}
}
