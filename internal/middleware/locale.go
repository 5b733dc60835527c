package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/elimufine/elimu-backend/internal/i18n"
	"github.com/elimufine/elimu-backend/internal/model"
	"github.com/elimufine/elimu-backend/internal/response"
)

const (
	// ContextKeyRole is the Gin context key for the parsed :role parameter.
	ContextKeyRole = "role"
	// ContextKeyLanguage is the Gin context key for the negotiated lexicon.
	ContextKeyLanguage = "language"
)

// RequireRole parses the :role path parameter, rejecting unknown roles.
func RequireRole() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, err := model.ParseRole(c.Param("role"))
		if err != nil {
			response.AbortFail(c, http.StatusBadRequest, response.ErrUnknownRole)
			return
		}
		c.Set(ContextKeyRole, role)
		c.Next()
	}
}

// Language resolves the ?lang= query parameter, falling back to def when
// absent. Unsupported codes are rejected.
func Language(catalog *i18n.Catalog, def i18n.Language) gin.HandlerFunc {
	return func(c *gin.Context) {
		code := c.Query("lang")
		if code == "" {
			c.Set(ContextKeyLanguage, def)
			c.Next()
			return
		}
		lang, err := catalog.ParseLanguage(code)
		if err != nil {
			response.AbortFail(c, http.StatusBadRequest, response.ErrUnsupportedLanguage)
			return
		}
		c.Set(ContextKeyLanguage, lang)
		c.Next()
	}
}

// GetRole returns the role stored by RequireRole.
func GetRole(c *gin.Context) (model.UserRole, bool) {
	val, exists := c.Get(ContextKeyRole)
	if !exists {
		return "", false
	}
	role, ok := val.(model.UserRole)
	return role, ok
}

// GetLanguage returns the language stored by Language, or i18n.Fallback.
func GetLanguage(c *gin.Context) i18n.Language {
	if val, exists := c.Get(ContextKeyLanguage); exists {
		if lang, ok := val.(i18n.Language); ok {
			return lang
		}
	}
	return i18n.Fallback
}
