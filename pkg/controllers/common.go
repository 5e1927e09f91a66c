package controllers

import (
	"context"

	"alternus-gallery-io/api/internal/common"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func WithTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), common.REQ_TIMEOUT_SECS)
}

// SessionID returns the storefront session id from the request header,
// minting a fresh one for first-time visitors. The id is echoed back in the
// response so the client can persist it.
func SessionID(c *gin.Context) string {
	sid := c.GetHeader(common.SESSION_HEADER)
	if common.IsEmptyString(sid) {
		sid = uuid.NewString()
	}
	c.Header(common.SESSION_HEADER, sid)
	return sid
}
