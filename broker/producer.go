package broker

import (
	"log"

	"github.com/ibrahimbiplob75/taskhub/models"

	"github.com/nats-io/nats.go"
)

var producer *nats.Conn

// InitProducer connects the publishing side of the broker. Eventing is
// optional: when no NATS server is configured the API runs without it.
func InitProducer(natsURL string) error {
	conn, err := nats.Connect(natsURL)
	if err != nil {
		return err
	}
	producer = conn
	log.Printf("NATS producer connected to %s", natsURL)
	return nil
}

// Publish sends an entity mutation event. Fire and forget: a publish
// failure is logged and never surfaces to the request that caused it.
func Publish(subject string, event EventType, entity string, payload map[string]interface{}) {
	if producer == nil {
		return
	}

	message := models.NewEventMessage(string(event), entity, payload)
	data, err := message.ToJSON()
	if err != nil {
		log.Printf("Failed to encode %s event: %v", event, err)
		return
	}

	if err := producer.Publish(subject, data); err != nil {
		log.Printf("Failed to publish %s event: %v", event, err)
	}
}

func CloseProducer() {
	if producer != nil {
		producer.Close()
		producer = nil
	}
}
