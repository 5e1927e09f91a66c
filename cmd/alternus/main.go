package main

import (
	"log"

	"alternus-gallery-io/api/internal/routers"
	"alternus-gallery-io/api/pkg/util"
)

func main() {
	router := routers.InitRoute()
	port := util.LoadEnvOr("PORT", "8080")
	err := router.Run("0.0.0.0:" + port)
	if err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
