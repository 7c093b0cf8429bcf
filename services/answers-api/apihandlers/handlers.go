package apihandlers

import (
	"net/http"

	"github.com/OkunrinmetaWebDevelopment/AphiniTi-Profile-Answers/pkg/answers"
	"github.com/gin-gonic/gin"
)

func HealthCheckHandle(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type HttpEndpoints struct {
	answerService *answers.AnswerService
	tokenSignKey  string
}

func NewHTTPHandler(
	tokenSignKey string,
	answerService *answers.AnswerService,
) *HttpEndpoints {
	return &HttpEndpoints{
		tokenSignKey:  tokenSignKey,
		answerService: answerService,
	}
}
