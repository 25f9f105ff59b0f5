package config

import (
	"log"
	"time"

	"github.com/nats-io/nats.go"
)

// NewNatsConn returns nil when no url is configured; events are then dropped.
func NewNatsConn(url string) *nats.Conn {
	if url == "" {
		return nil
	}

	nc, err := nats.Connect(url,
		nats.Name("pet-sitter-api"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		log.Fatalf("failed to connect to nats: %v", err)
	}

	return nc
}
