package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/movalearn/movalearn-backend/internal/http/response"
	"github.com/movalearn/movalearn-backend/internal/platform/ctxutil"
	"github.com/movalearn/movalearn-backend/internal/services"
)

type AchievementHandler struct {
	achievementService services.AchievementService
}

func NewAchievementHandler(achievementService services.AchievementService) *AchievementHandler {
	return &AchievementHandler{achievementService: achievementService}
}

func (ah *AchievementHandler) Catalog(c *gin.Context) {
	achievements, err := ah.achievementService.Catalog(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"achievements": achievements})
}

func (ah *AchievementHandler) Mine(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	unlocks, err := ah.achievementService.Mine(c.Request.Context(), rd.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"achievements": unlocks})
}

func (ah *AchievementHandler) Progress(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	progress, err := ah.achievementService.Progress(c.Request.Context(), rd.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"progress": progress})
}

// Check re-runs the evaluator on demand and reports fresh unlocks.
func (ah *AchievementHandler) Check(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	unlocked, err := ah.achievementService.EvaluateAndUnlock(c.Request.Context(), rd.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"unlocked": unlocked})
}
