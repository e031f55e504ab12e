// Package mqtt publishes moderation action events to an MQTT broker so
// external services (dashboards, audit archival) can consume them.
package mqtt

import (
	"fmt"
	"sync"
	"time"

	"github.com/HavenStudios/HavenBotGo/pkg/logger"
	"github.com/HavenStudios/HavenBotGo/pkg/moderation"
	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// envelope is the wire format for a published action event
type envelope struct {
	EventID   string                `json:"eventId"`
	Event     moderation.ActionEvent `json:"event"`
	Publisher string                `json:"publisher"`
}

// EventPublisher delivers moderation action events to the broker. It
// satisfies moderation.Publisher.
type EventPublisher struct {
	client   mqtt.Client
	clientID string
}

var (
	publisher *EventPublisher
	once      sync.Once
)

// Init initializes the global event publisher
func Init(host, port, username, password, clientID string) *EventPublisher {
	once.Do(func() {
		publisher = NewEventPublisher(host, port, username, password, clientID)
	})
	return publisher
}

// Get returns the global event publisher
func Get() *EventPublisher {
	return publisher
}

// NewEventPublisher creates a publisher connected to the broker. The
// connection retries in the background; publishing while disconnected
// returns an error instead of blocking.
func NewEventPublisher(host, port, username, password, clientID string) *EventPublisher {
	ep := &EventPublisher{clientID: clientID}

	uniqueID := fmt.Sprintf("%s_%s", clientID, uuid.New().String())

	opts := mqtt.NewClientOptions().
		AddBroker(fmt.Sprintf("tcp://%s:%s", host, port)).
		SetClientID(uniqueID).
		SetUsername(username).
		SetPassword(password).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second).
		SetOnConnectHandler(func(c mqtt.Client) {
			logger.Success(fmt.Sprintf("Connected to MQTT broker as %s", clientID), "MQTT")
		}).
		SetConnectionLostHandler(func(c mqtt.Client, err error) {
			logger.Error(fmt.Sprintf("MQTT connection lost: %v", err), "MQTT")
		})

	ep.client = mqtt.NewClient(opts)

	token := ep.client.Connect()
	if token.Wait() && token.Error() != nil {
		logger.Error(fmt.Sprintf("MQTT connection error: %v", token.Error()), "MQTT")
	}

	return ep
}

// Destroy closes the MQTT connection
func (ep *EventPublisher) Destroy() {
	if ep.client != nil && ep.client.IsConnected() {
		ep.client.Disconnect(250)
		logger.System("MQTT connection closed.", "MQTT")
	} else {
		logger.Warn("MQTT client was not connected, nothing to close.", "MQTT")
	}
}

// IsConnected returns true if connected to the broker
func (ep *EventPublisher) IsConnected() bool {
	return ep.client != nil && ep.client.IsConnected()
}

// Publish delivers a moderation action event to haven/moderation/<action>
func (ep *EventPublisher) Publish(event moderation.ActionEvent) error {
	if !ep.IsConnected() {
		return fmt.Errorf("mqtt client not connected")
	}

	payload, err := json.Marshal(envelope{
		EventID:   uuid.New().String(),
		Event:     event,
		Publisher: ep.clientID,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	topic := fmt.Sprintf("haven/moderation/%s", event.Action)
	token := ep.client.Publish(topic, 0, false, payload)
	token.Wait()
	return token.Error()
}
