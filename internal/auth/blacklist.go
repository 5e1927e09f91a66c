package auth

import (
	"context"
	"log"

	"alternus-gallery-io/api/internal/common"

	"github.com/redis/go-redis/v9"
)

// InvalidateToken blacklists a token after logout. The entry outlives the
// token's own expiry so a stolen token cannot be replayed.
func InvalidateToken(db *redis.Client, tokenString string) error {
	_, err := db.Set(context.Background(), tokenString, true, common.TOKEN_BLACKLIST_TTL).Result()
	if err != nil {
		return err
	}

	return nil
}

// IsTokenValid reports whether a token is absent from the blacklist.
func IsTokenValid(db *redis.Client, tokenString string) bool {
	_, err := db.Get(context.Background(), tokenString).Result()
	if err == redis.Nil {
		return true
	}
	if err != nil {
		log.Printf("Error while checking blacklist: %s", err)
		return false
	}

	return false
}
