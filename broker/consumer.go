package broker

import (
	"log"

	"github.com/nats-io/nats.go"

	"taskhive/taskhive/config"
)

// Consumer is a NATS subscription delivering messages over a channel.
type Consumer struct {
	conn        *nats.Conn
	subs        []*nats.Subscription
	messageChan chan *nats.Msg
}

// InitConsumer connects to NATS and subscribes to the given subjects as a
// queue group, so multiple instances share the stream.
func InitConsumer(cfg config.Config, subjects []string, group string) (*Consumer, error) {
	nc, err := nats.Connect(cfg.NatsURL,
		nats.Name("taskhive-consumer-"+group),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, err
	}

	c := &Consumer{
		conn:        nc,
		messageChan: make(chan *nats.Msg, 64),
	}

	for _, subject := range subjects {
		sub, err := nc.QueueSubscribeSyncWithChan(subject, group, c.messageChan)
		if err != nil {
			c.Close()
			return nil, err
		}
		c.subs = append(c.subs, sub)
	}

	log.Printf("NATS consumer subscribed to %v (group %s)", subjects, group)
	return c, nil
}

// GetMessageChannel returns the channel messages are delivered on.
func (c *Consumer) GetMessageChannel() chan *nats.Msg {
	return c.messageChan
}

// Close unsubscribes and closes the connection.
func (c *Consumer) Close() {
	for _, sub := range c.subs {
		if err := sub.Unsubscribe(); err != nil {
			log.Printf("Failed to unsubscribe: %v", err)
		}
	}
	if c.conn != nil {
		c.conn.Close()
	}
}
