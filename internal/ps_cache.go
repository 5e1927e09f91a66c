package internal

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

var CHANNEL_GLOBAL_CACHE = "GLOBAL_CACHE"

type CacheMessageType string

const (
	CacheInvalidateArtwork  CacheMessageType = "artwork.invalidate"
	CacheInvalidateArtworks CacheMessageType = "artworks.invalidate"

	CacheInvalidateArtist        CacheMessageType = "artist.invalidate"
	CacheInvalidateArtists       CacheMessageType = "artists.invalidate"
	CacheInvalidateArtistWorks   CacheMessageType = "artist.works.invalidate"
	CacheInvalidateOrder         CacheMessageType = "order.invalidate"
	CacheInvalidateOrders        CacheMessageType = "orders.invalidate"
	CacheInvalidateChat          CacheMessageType = "chat.invalidate"
	CacheInvalidateChatInboxSize CacheMessageType = "chat.inbox.invalidate"
)

type CacheMessage struct {
	Type      CacheMessageType `json:"type"`
	Payload   string           `json:"payload"`
	Timestamp int64            `json:"timestamp"`
}

// PublishCacheMessage publishes a cache invalidation message to Redis pub/sub
// as JSON. Edge caches and other API replicas subscribe to the channel and
// drop their cached copies.
func PublishCacheMessage(ctx context.Context, rdb *redis.Client, messageType CacheMessageType, payload string) error {
	cacheMessage := CacheMessage{
		Type:      messageType,
		Payload:   payload,
		Timestamp: time.Now().Unix(),
	}

	messageJSON, err := json.Marshal(cacheMessage)
	if err != nil {
		log.Printf("Failed to marshal cache message: %v", err)
		return err
	}

	err = rdb.Publish(ctx, CHANNEL_GLOBAL_CACHE, string(messageJSON)).Err()
	if err != nil {
		log.Printf("Failed to publish cache message: %v", err)
		return err
	}

	log.Printf("Published cache message: %s", messageJSON)
	return nil
}
