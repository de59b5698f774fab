package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	appErr "github.com/xxxsen/skillmatch/internal/pkg/errors"
	"github.com/xxxsen/skillmatch/internal/pkg/response"
	"github.com/xxxsen/skillmatch/internal/service"
)

type DashboardHandler struct {
	dashboards *service.DashboardService
}

func NewDashboardHandler(dashboards *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboards: dashboards}
}

type saveSkillsRequest struct {
	Skills []string `json:"skills"`
}

type saveHabitsRequest struct {
	Habits []string `json:"habits"`
}

func (h *DashboardHandler) Get(c *gin.Context) {
	board, err := h.dashboards.Get(c.Request.Context(), getUserID(c))
	if err != nil {
		if errors.Is(err, appErr.ErrNotFound) {
			response.Error(c, http.StatusNotFound, "User not found")
			return
		}
		handleError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"message": "Dashboard data fetched successfully", "data": board})
}

func (h *DashboardHandler) SaveSkills(c *gin.Context) {
	var req saveSkillsRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Skills == nil {
		response.Error(c, http.StatusBadRequest, "Invalid JSON payload or 'skills' missing")
		return
	}
	saved, err := h.dashboards.ReplaceSkills(c.Request.Context(), getUserID(c), req.Skills)
	if err != nil {
		handleError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"message": "Skills saved", "skills": saved})
}

func (h *DashboardHandler) SaveHabits(c *gin.Context) {
	var req saveHabitsRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Habits == nil {
		response.Error(c, http.StatusBadRequest, "Invalid JSON payload or 'habits' missing")
		return
	}
	saved, err := h.dashboards.ReplaceHabits(c.Request.Context(), getUserID(c), req.Habits)
	if err != nil {
		handleError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"message": "Habits saved", "habits": saved})
}
