package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/movalearn/movalearn-backend/internal/http/response"
	"github.com/movalearn/movalearn-backend/internal/platform/ctxutil"
	"github.com/movalearn/movalearn-backend/internal/services"
)

type ProgressHandler struct {
	progressService services.ProgressService
}

func NewProgressHandler(progressService services.ProgressService) *ProgressHandler {
	return &ProgressHandler{progressService: progressService}
}

func (ph *ProgressHandler) Summary(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	summary, err := ph.progressService.Summary(c.Request.Context(), rd.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, summary)
}

func (ph *ProgressHandler) Streak(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	info, err := ph.progressService.Streak(c.Request.Context(), rd.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, info)
}

func (ph *ProgressHandler) Daily(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "7"))
	rd := ctxutil.GetRequestData(c.Request.Context())
	stats, err := ph.progressService.Daily(c.Request.Context(), rd.UserID, days)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"daily": stats})
}
