package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/xxxsen/skillmatch/internal/pkg/response"
	"github.com/xxxsen/skillmatch/internal/service"
)

const statusMessage = "Skill Match Bot Backend is running!"

type MatchHandler struct {
	matches *service.MatchService
}

func NewMatchHandler(matches *service.MatchService) *MatchHandler {
	return &MatchHandler{matches: matches}
}

func (h *MatchHandler) Status(c *gin.Context) {
	response.Message(c, http.StatusOK, statusMessage)
}

func (h *MatchHandler) Matches(c *gin.Context) {
	body, ok := strictBody(c, "skills")
	if !ok {
		return
	}
	skills, ok := decodeStringList(body["skills"])
	if !ok {
		response.Error(c, http.StatusBadRequest, "'skills' must be a list of strings")
		return
	}
	if len(skills) == 0 {
		response.Error(c, http.StatusBadRequest, "'skills' list cannot be empty")
		return
	}
	logger := requestLogger(c)
	logger.Info("processing skills", zap.Strings("skills", skills))
	matches, err := h.matches.Match(c.Request.Context(), skills)
	if err != nil {
		handleError(c, err)
		return
	}
	logger.Info("matches found", zap.Int("count", len(matches)))
	response.JSON(c, http.StatusOK, matches)
}

func (h *MatchHandler) Skills(c *gin.Context) {
	body, ok := strictBody(c, "interests")
	if !ok {
		return
	}
	interests, ok := decodeStringList(body["interests"])
	if !ok {
		response.Error(c, http.StatusBadRequest, "'interests' must be a list of strings")
		return
	}
	if len(interests) == 0 {
		response.Error(c, http.StatusBadRequest, "'interests' list cannot be empty")
		return
	}
	skills := h.matches.RecommendSkills(interests)
	requestLogger(c).Info("recommended skills", zap.Strings("interests", interests), zap.Int("count", len(skills)))
	response.JSON(c, http.StatusOK, skills)
}

func (h *MatchHandler) Habits(c *gin.Context) {
	body, ok := strictBody(c, "side_hustle")
	if !ok {
		return
	}
	var sideHustle string
	if raw := body["side_hustle"]; len(raw) > 0 && string(raw) != "null" {
		if err := json.Unmarshal(raw, &sideHustle); err != nil {
			response.Error(c, http.StatusBadRequest, "'side_hustle' must be a string")
			return
		}
	}
	if strings.TrimSpace(sideHustle) == "" {
		response.Error(c, http.StatusBadRequest, "'side_hustle' cannot be empty")
		return
	}
	habits := h.matches.HabitRecommendations(sideHustle)
	requestLogger(c).Info("recommended habits", zap.String("side_hustle", sideHustle), zap.Int("count", len(habits)))
	response.JSON(c, http.StatusOK, habits)
}
