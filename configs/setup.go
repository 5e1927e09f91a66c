package configs

import (
	"context"
	"log"
	"time"

	"alternus-gallery-io/api/pkg/util"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ConnectDB dials MongoDB using DATABASE_URL and pings it before returning.
func ConnectDB() *mongo.Client {
	log.Println("starting MongoDB connection..")
	client, err := mongo.NewClient(options.Client().ApplyURI(util.LoadEnvFor("DATABASE_URL")))
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err = client.Connect(ctx)
	if err != nil {
		log.Fatal(err)
	}

	// try to ping the database
	err = client.Ping(ctx, nil)
	if err != nil {
		log.Fatal(err)
	}

	log.Println("MongoDB connection successful")
	return client
}

// Database returns the gallery database handle.
func Database(client *mongo.Client) *mongo.Database {
	return client.Database("alternus")
}

// ConnectRedis dials Redis using REDIS_URL.
func ConnectRedis() *redis.Client {
	redisUrl := util.LoadEnvFor("REDIS_URL")
	log.Println("starting redis connection..")
	addr, err := redis.ParseURL(redisUrl)
	if err != nil {
		log.Fatal(err)
	}

	client := redis.NewClient(addr)

	log.Println("redis connection successful..")
	return client
}
