package config

import (
	"log"

	"github.com/redis/rueidis"
)

// NewRedisClient connects to the job queue's Redis. Client-side caching is
// off; every queue read must see the server's state.
func NewRedisClient(addr string) rueidis.Client {
	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress:  []string{addr},
		ClientName:   "pet-sitter-api",
		DisableCache: true,
	})
	if err != nil {
		log.Fatalf("failed to create redis client: %v", err)
	}
	return client
}
