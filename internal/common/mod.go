package common

import (
	"strconv"
	"strings"
	"time"

	"alternus-gallery-io/api/pkg/util"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

var Validate = validator.New()

const (
	REQ_TIMEOUT_SECS = 2 * 60 * time.Second

	// Session stores live in redis under these prefixes, keyed by session id.
	CART_KEY_PREFIX     = "cart:"
	WISHLIST_KEY_PREFIX = "wishlist:"
	COMPARE_KEY_PREFIX  = "compareList:"

	SESSION_HEADER = "X-Session-Id"

	COMPARE_MAX_ITEMS = 4

	CHAT_GREETING_NAME   = "Alternus Support"
	TOKEN_BLACKLIST_TTL  = 24 * time.Hour
	DEFAULT_ARTWORK_IMG  = "https://res.cloudinary.com/alternus/image/upload/v1/alternus/placeholder.jpg"
	DEFAULT_PORTRAIT_IMG = "https://res.cloudinary.com/alternus/image/upload/v1/alternus/portrait.jpg"
)

// Utility Functions

// IsEmptyString checks if a string is empty
func IsEmptyString(s string) bool {
	return strings.Compare(s, "") == 0
}

// GetPaginationArgs extracts pagination parameters from HTTP request
func GetPaginationArgs(c *gin.Context) util.PaginationArgs {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	sort := c.DefaultQuery("sort", "created_at_desc")

	return util.PaginationArgs{
		Limit: limit,
		Skip:  skip,
		Sort:  sort,
	}
}
