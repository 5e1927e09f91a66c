package util

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson"
)

// GetCreatedAtSortBson maps a sort query value to a bson sort document.
func GetCreatedAtSortBson(sort string) bson.D {
	value := -1
	var key string

	switch sort {
	case "price_asc", "price_desc":
		key = "price"
	case "title_asc", "title_desc":
		key = "title"
	default:
		key = "created_at"
	}

	if strings.Contains(sort, "asc") {
		value = 1
	}
	return bson.D{{Key: key, Value: value}}
}

// GetLastMessageSortBson sorts chats by most recent activity first.
func GetLastMessageSortBson() bson.D {
	return bson.D{{Key: "last_message_at", Value: -1}}
}
