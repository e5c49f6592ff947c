package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/movalearn/movalearn-backend/internal/http/response"
	"github.com/movalearn/movalearn-backend/internal/platform/ctxutil"
	"github.com/movalearn/movalearn-backend/internal/services"
)

type LessonHandler struct {
	lessonService services.LessonService
}

func NewLessonHandler(lessonService services.LessonService) *LessonHandler {
	return &LessonHandler{lessonService: lessonService}
}

func (lh *LessonHandler) List(c *gin.Context) {
	lessons, err := lh.lessonService.List(c.Request.Context(), c.Query("category"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"lessons": lessons})
}

func (lh *LessonHandler) ListMine(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	lessons, err := lh.lessonService.ListForUser(c.Request.Context(), rd.UserID, c.Query("category"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"lessons": lessons})
}

func (lh *LessonHandler) Get(c *gin.Context) {
	lessonID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_lesson_id", err)
		return
	}
	lesson, err := lh.lessonService.Get(c.Request.Context(), lessonID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, lesson)
}

func (lh *LessonHandler) Exercises(c *gin.Context) {
	lessonID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_lesson_id", err)
		return
	}
	exercises, err := lh.lessonService.Exercises(c.Request.Context(), lessonID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"exercises": exercises})
}

func (lh *LessonHandler) Complete(c *gin.Context) {
	lessonID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_lesson_id", err)
		return
	}
	var req struct {
		Score     int `json:"score"`
		TimeSpent int `json:"time_spent"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	rd := ctxutil.GetRequestData(c.Request.Context())
	result, err := lh.lessonService.Complete(c.Request.Context(), rd.UserID, lessonID, req.Score, req.TimeSpent)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, result)
}
