package main

import (
	"log"
	"os"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"yfsymbols/internal/app/di"
	"yfsymbols/internal/app/router"
	"yfsymbols/internal/platform/db"
	infraredis "yfsymbols/internal/platform/redis"
)

func main() {
	gdb, err := db.Open(db.Path())
	if err != nil {
		log.Fatal("failed to open database:", err)
	}

	// Redis is optional; without it the API serves straight from the store.
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	catalogUC := di.NewCatalogUsecase(gdb, rdb, 5*time.Minute)
	r := router.NewRouter(di.NewSymbolHandler(catalogUC))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
