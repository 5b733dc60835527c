package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/elimufine/elimu-backend/internal/middleware"
	"github.com/elimufine/elimu-backend/internal/model"
	"github.com/elimufine/elimu-backend/internal/response"
	"github.com/elimufine/elimu-backend/internal/service"
)

// DashboardHandler serves the per-role dashboards.
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetDashboard godoc
// GET /api/v1/dashboards/:role
// Returns the dashboard of the role. The teacher dashboard honours ?q= to
// filter its shared resources.
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	role, ok := middleware.GetRole(c)
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrUnknownRole)
		return
	}
	lang := middleware.GetLanguage(c)

	var (
		data *model.Dashboard
		err  error
	)
	if role == model.RoleTeacher {
		data, err = h.dashboardService.TeacherDashboard(c.Request.Context(), lang, c.Query("q"))
	} else {
		data, err = h.dashboardService.GetDashboard(c.Request.Context(), role, lang)
	}
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, data)
}

// SearchResources godoc
// GET /api/v1/teacher/resources?q=
// Searches the teacher hub resources by title, subject or grade.
func (h *DashboardHandler) SearchResources(c *gin.Context) {
	query := c.Query("q")
	resources, err := h.dashboardService.SearchResources(c.Request.Context(), query)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.SuccessList(c, http.StatusOK, resources, len(resources), query)
}
