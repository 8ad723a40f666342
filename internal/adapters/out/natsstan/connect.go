// Package natsstan connects the order service to NATS Streaming.
package natsstan

import (
	"fmt"
	"time"

	stan "github.com/nats-io/stan.go"
)

// Connect opens a streaming connection. An empty clientID gets a unique one.
func Connect(clusterID, clientID, natsURL string) (stan.Conn, error) {
	if clientID == "" {
		clientID = fmt.Sprintf("ordersync-%d", time.Now().UnixNano())
	}

	conn, err := stan.Connect(clusterID, clientID, stan.NatsURL(natsURL))
	if err != nil {
		return nil, fmt.Errorf("stan connect %s: %w", natsURL, err)
	}
	return conn, nil
}
