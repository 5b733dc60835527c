package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/elimufine/elimu-backend/internal/middleware"
	"github.com/elimufine/elimu-backend/internal/response"
	"github.com/elimufine/elimu-backend/internal/service"
)

// ShellHandler serves the role-selection screen and lexicons.
type ShellHandler struct {
	shellService *service.ShellService
}

func NewShellHandler(shellService *service.ShellService) *ShellHandler {
	return &ShellHandler{shellService: shellService}
}

// GetRoles godoc
// GET /api/v1/roles?lang=
func (h *ShellHandler) GetRoles(c *gin.Context) {
	response.Success(c, http.StatusOK, h.shellService.RoleSelection(middleware.GetLanguage(c)))
}

// GetLexicon godoc
// GET /api/v1/lexicons/:lang
func (h *ShellHandler) GetLexicon(c *gin.Context) {
	lang, err := h.shellService.ParseLanguage(c.Param("lang"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrUnsupportedLanguage)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"language": lang,
		"entries":  h.shellService.Lexicon(lang),
	})
}
