package controllers

import (
	"net/http"
	"strings"

	"alternus-gallery-io/api/pkg/ai"
	"alternus-gallery-io/api/pkg/util"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

type AiChatController struct {
	assistant *ai.Assistant
}

func InitAiChatController(assistant *ai.Assistant) *AiChatController {
	return &AiChatController{assistant: assistant}
}

type aiChatRequest struct {
	Message string    `json:"message"`
	History []ai.Turn `json:"conversationHistory"`
}

// Chat handles POST /v1/ai-chat. The upstream model is an external service,
// so its failures surface as a bad gateway rather than a server error.
func (ac *AiChatController) Chat() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := WithTimeout()
		defer cancel()

		var chatReq aiChatRequest
		if err := c.ShouldBindJSON(&chatReq); err != nil {
			util.HandleError(c, http.StatusBadRequest, err)
			return
		}
		if strings.TrimSpace(chatReq.Message) == "" {
			util.HandleError(c, http.StatusBadRequest, errors.New("message is required"))
			return
		}

		reply, err := ac.assistant.Reply(ctx, chatReq.History, chatReq.Message)
		if err != nil {
			util.HandleError(c, http.StatusBadGateway, err)
			return
		}

		util.HandleSuccess(c, http.StatusOK, "success", gin.H{"content": reply})
	}
}
