package broker

import (
	"log"

	"github.com/nats-io/nats.go"
)

// Consumer subscribes to a set of subjects and exposes the incoming
// messages on a channel.
type Consumer struct {
	conn          *nats.Conn
	subscriptions []*nats.Subscription
	messages      chan *nats.Msg
}

func InitConsumer(natsURL string, subjects []string) (*Consumer, error) {
	conn, err := nats.Connect(natsURL)
	if err != nil {
		return nil, err
	}

	c := &Consumer{
		conn:     conn,
		messages: make(chan *nats.Msg, 256),
	}

	for _, subject := range subjects {
		sub, err := conn.ChanSubscribe(subject, c.messages)
		if err != nil {
			c.Close()
			return nil, err
		}
		c.subscriptions = append(c.subscriptions, sub)
	}

	log.Printf("NATS consumer subscribed to %v", subjects)
	return c, nil
}

func (c *Consumer) GetMessageChannel() chan *nats.Msg {
	return c.messages
}

func (c *Consumer) Close() {
	for _, sub := range c.subscriptions {
		if err := sub.Unsubscribe(); err != nil {
			log.Printf("Failed to unsubscribe: %v", err)
		}
	}
	if c.conn != nil {
		c.conn.Close()
	}
}
