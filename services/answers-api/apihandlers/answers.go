package apihandlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/OkunrinmetaWebDevelopment/AphiniTi-Profile-Answers/pkg/answers"
	mw "github.com/OkunrinmetaWebDevelopment/AphiniTi-Profile-Answers/pkg/apihelpers/middlewares"
	jwthandling "github.com/OkunrinmetaWebDevelopment/AphiniTi-Profile-Answers/pkg/jwt-handling"
	"github.com/gin-gonic/gin"
)

func (h *HttpEndpoints) AddAnswersAPI(rg *gin.RouterGroup) {
	answersGroup := rg.Group("/ai-answers")
	answersGroup.Use(mw.GetAndValidateUserJWT(h.tokenSignKey))
	{
		answersGroup.POST("", mw.RequirePayload(), h.saveAnswersHandl)
		answersGroup.GET("", h.getAnswersHandl)
		answersGroup.DELETE("", h.deleteAnswersHandl)
		answersGroup.GET("/stats", h.getAnswerStatsHandl)
		answersGroup.PUT("/:questionID", mw.RequirePayload(), h.updateSingleAnswerHandl)
	}
}

type SaveAnswersReq struct {
	Answers map[string]string `json:"answers"`
}

type UpdateAnswerReq struct {
	Answer string `json:"answer"`
}

func (h *HttpEndpoints) saveAnswersHandl(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.UserClaims)

	var req SaveAnswersReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("cannot bind answers payload", slog.String("userId", token.Subject), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot parse answers payload"})
		return
	}

	record, created, err := h.answerService.SaveAnswers(c.Request.Context(), token.Subject, req.Answers)
	if err != nil {
		h.answerErrorResponse(c, token.Subject, err)
		return
	}

	status := http.StatusOK
	message := "AI answers updated successfully"
	if created {
		status = http.StatusCreated
		message = "AI answers saved successfully"
	}
	slog.Info("saved AI answers", slog.String("userId", token.Subject), slog.Int("totalQuestions", record.TotalQuestions))

	c.JSON(status, gin.H{
		"success":         true,
		"message":         message,
		"answers":         record.Answers,
		"total_questions": record.TotalQuestions,
		"saved_at":        record.CreatedAt,
		"updated_at":      record.UpdatedAt,
	})
}

func (h *HttpEndpoints) getAnswersHandl(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.UserClaims)

	record, err := h.answerService.GetAnswers(c.Request.Context(), token.Subject)
	if err != nil {
		h.answerErrorResponse(c, token.Subject, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"message":         "AI answers retrieved successfully",
		"answers":         record.Answers,
		"total_questions": record.TotalQuestions,
		"saved_at":        record.CreatedAt,
		"updated_at":      record.UpdatedAt,
	})
}

func (h *HttpEndpoints) deleteAnswersHandl(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.UserClaims)

	if err := h.answerService.DeleteAnswers(c.Request.Context(), token.Subject); err != nil {
		h.answerErrorResponse(c, token.Subject, err)
		return
	}
	slog.Info("deleted AI answers", slog.String("userId", token.Subject))

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "AI answers deleted successfully",
	})
}

func (h *HttpEndpoints) updateSingleAnswerHandl(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.UserClaims)
	questionID := c.Param("questionID")

	var req UpdateAnswerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("cannot bind answer payload", slog.String("userId", token.Subject), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot parse answer payload"})
		return
	}

	record, created, err := h.answerService.UpdateSingleAnswer(c.Request.Context(), token.Subject, questionID, req.Answer)
	if err != nil {
		h.answerErrorResponse(c, token.Subject, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{
		"success":         true,
		"message":         fmt.Sprintf("answer for question %s updated successfully", questionID),
		"answers":         record.Answers,
		"total_questions": record.TotalQuestions,
		"saved_at":        record.CreatedAt,
		"updated_at":      record.UpdatedAt,
	})
}

func (h *HttpEndpoints) getAnswerStatsHandl(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.UserClaims)

	stats, err := h.answerService.GetStats(c.Request.Context(), token.Subject)
	if err != nil {
		h.answerErrorResponse(c, token.Subject, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":               true,
		"total_questions":       stats.TotalQuestions,
		"completed_questions":   stats.CompletedQuestions,
		"completion_percentage": stats.CompletionPercentage,
		"created_at":            stats.CreatedAt,
		"updated_at":            stats.UpdatedAt,
	})
}

func (h *HttpEndpoints) answerErrorResponse(c *gin.Context, userID string, err error) {
	var vErr *answers.ValidationError
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error()})
	case errors.Is(err, answers.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "no AI answers found for user"})
	case errors.Is(err, answers.ErrSaveConflict):
		slog.Warn("save conflict not resolved", slog.String("userId", userID))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "too many concurrent updates, please retry"})
	case errors.Is(err, answers.ErrStoreUnavailable):
		slog.Error("answer store unavailable", slog.String("userId", userID), slog.String("error", err.Error()))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage temporarily unavailable"})
	default:
		slog.Error("unexpected error", slog.String("userId", userID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unexpected error"})
	}
}
