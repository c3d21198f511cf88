package broker

import (
	"log"

	"github.com/nats-io/nats.go"

	"taskhive/taskhive/config"
)

var conn *nats.Conn

// InitProducer connects to the NATS server named in the configuration.
func InitProducer(cfg config.Config) error {
	var err error
	conn, err = nats.Connect(cfg.NatsURL,
		nats.Name("taskhive-producer"),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return err
	}
	log.Printf("NATS producer connected to %s", cfg.NatsURL)
	return nil
}

// PublishMessage publishes an event to its subject. Publishing is
// best-effort: failures are logged, never surfaced to the caller, since
// the event row is already persisted in the outbox.
func PublishMessage(subject string, message StandardMessage) {
	if conn == nil {
		log.Println("NATS producer is not initialized, dropping message")
		return
	}

	data, err := message.Marshal()
	if err != nil {
		log.Printf("Failed to marshal message for subject %s: %v", subject, err)
		return
	}

	if err := conn.Publish(subject, data); err != nil {
		log.Printf("Failed to publish message to subject %s: %v", subject, err)
	}
}

// CloseProducer drains and closes the NATS connection.
func CloseProducer() {
	if conn != nil {
		if err := conn.Drain(); err != nil {
			log.Printf("Failed to drain NATS connection: %v", err)
		}
		conn = nil
	}
}
