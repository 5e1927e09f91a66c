package controllers

import (
	"net/http"
	"time"

	"alternus-gallery-io/api/internal/common"
	"alternus-gallery-io/api/pkg/models"
	"alternus-gallery-io/api/pkg/services"
	"alternus-gallery-io/api/pkg/util"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

type ChatController struct {
	chatService services.ChatService
}

func InitChatController(chatService services.ChatService) *ChatController {
	return &ChatController{chatService: chatService}
}

// StartChat handles POST /v1/chat/start. A new conversation opens with a
// seeded support greeting.
func (cc *ChatController) StartChat() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := WithTimeout()
		defer cancel()

		var startReq models.StartChatRequest
		if err := c.ShouldBindJSON(&startReq); err != nil {
			util.HandleError(c, http.StatusBadRequest, err)
			return
		}
		if err := common.Validate.Struct(&startReq); err != nil {
			util.HandleError(c, http.StatusBadRequest, err)
			return
		}

		chat, err := cc.chatService.StartChat(ctx, startReq.Name, startReq.Email)
		if err != nil {
			util.HandleError(c, http.StatusInternalServerError, err)
			return
		}

		util.HandleSuccess(c, http.StatusCreated, "Chat started", gin.H{"chat": chat})
	}
}

// GetChat handles GET /v1/chat?chatId=...&since=... . With a since cursor
// only messages strictly newer than it are returned, which keeps poll
// responses small.
func (cc *ChatController) GetChat() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := WithTimeout()
		defer cancel()

		chatID := c.Query("chatId")
		if common.IsEmptyString(chatID) {
			util.HandleError(c, http.StatusBadRequest, errors.New("chatId query parameter is required"))
			return
		}

		var since time.Time
		if raw := c.Query("since"); raw != "" {
			parsed, err := time.Parse(time.RFC3339Nano, raw)
			if err != nil {
				util.HandleError(c, http.StatusBadRequest, errors.New("bad since cursor"))
				return
			}
			since = parsed
		}

		chat, err := cc.chatService.GetChat(ctx, chatID, since)
		if err != nil {
			util.HandleError(c, http.StatusNotFound, err)
			return
		}

		util.HandleSuccess(c, http.StatusOK, "success", gin.H{"chat": chat})
	}
}

// PostMessage handles POST /v1/chat. The server assigns the message id and
// timestamp and returns the stored message.
func (cc *ChatController) PostMessage() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := WithTimeout()
		defer cancel()

		var messageReq models.ChatMessageRequest
		if err := c.ShouldBindJSON(&messageReq); err != nil {
			util.HandleError(c, http.StatusBadRequest, err)
			return
		}
		if err := common.Validate.Struct(&messageReq); err != nil {
			util.HandleError(c, http.StatusBadRequest, err)
			return
		}

		message, err := cc.chatService.AppendMessage(ctx, messageReq)
		if err != nil {
			util.HandleError(c, http.StatusNotFound, err)
			return
		}

		util.HandleSuccess(c, http.StatusCreated, "Message sent", gin.H{"message": message})
	}
}

// ListChats handles GET /v1/admin/chats, most recent conversation first.
func (cc *ChatController) ListChats() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := WithTimeout()
		defer cancel()

		paginationArgs := common.GetPaginationArgs(c)
		chats, count, err := cc.chatService.ListChats(ctx, paginationArgs)
		if err != nil {
			util.HandleError(c, http.StatusInternalServerError, err)
			return
		}

		util.HandleSuccessMeta(c, http.StatusOK, "success", gin.H{"chats": chats}, gin.H{
			"pagination": util.Pagination{
				Limit: paginationArgs.Limit,
				Skip:  paginationArgs.Skip,
				Count: count,
			},
		})
	}
}

// MarkRead handles PATCH /v1/admin/chats. Clears the unread counter and
// flags every message as read.
func (cc *ChatController) MarkRead() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := WithTimeout()
		defer cancel()

		var markReq models.MarkReadRequest
		if err := c.ShouldBindJSON(&markReq); err != nil {
			util.HandleError(c, http.StatusBadRequest, err)
			return
		}
		if err := common.Validate.Struct(&markReq); err != nil {
			util.HandleError(c, http.StatusBadRequest, err)
			return
		}

		if err := cc.chatService.MarkRead(ctx, markReq.ChatId); err != nil {
			util.HandleError(c, http.StatusNotFound, err)
			return
		}

		util.HandleSuccess(c, http.StatusOK, "Chat marked as read", gin.H{"chatId": markReq.ChatId})
	}
}
