package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"udid-retriever/internal/config"
	"udid-retriever/internal/domain/device"
	"udid-retriever/internal/logger"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"
)

// Publisher pushes an event onto an MQTT topic whenever a device
// completes enrollment, so downstream tooling can react without
// polling the device table. Entirely optional: a service without a
// configured broker runs with no publisher at all.
type Publisher struct {
	client mqtt.Client
	topic  string
}

type enrolledEvent struct {
	DeviceID   string    `json:"device_id"`
	UDID       string    `json:"udid"`
	Product    string    `json:"product,omitempty"`
	Version    string    `json:"version,omitempty"`
	EnrolledAt time.Time `json:"enrolled_at"`
}

// NewPublisher connects to the configured broker. Returns (nil, nil)
// when no broker is configured.
func NewPublisher(cfg *config.MQTTConfig) (*Publisher, error) {
	if cfg.Broker == "" {
		return nil, nil
	}

	clientID := cfg.ClientID
	if clientID == "" {
		clientID = "udid-retriever"
	}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(cfg.Broker)
	opts.SetClientID(clientID)
	opts.SetUsername(cfg.Username)
	opts.SetPassword(cfg.Password)
	opts.SetConnectTimeout(5 * time.Second)
	opts.SetAutoReconnect(true)
	opts.SetMaxReconnectInterval(1 * time.Minute)

	opts.SetOnConnectHandler(func(client mqtt.Client) {
		logger.Info("MQTT client connected", zap.String("broker", cfg.Broker))
	})

	opts.SetConnectionLostHandler(func(client mqtt.Client, err error) {
		logger.Warn("MQTT connection lost", zap.Error(err))
	})

	client := mqtt.NewClient(opts)

	token := client.Connect()
	token.Wait()
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %w", err)
	}

	return &Publisher{
		client: client,
		topic:  cfg.Topic,
	}, nil
}

// DeviceEnrolled publishes the enrollment event. Failures are logged
// and swallowed; the callback flow never depends on the broker.
func (p *Publisher) DeviceEnrolled(ctx context.Context, d *device.Device) {
	payload, err := json.Marshal(enrolledEvent{
		DeviceID:   d.ID.String(),
		UDID:       d.UDID,
		Product:    d.DeviceProduct,
		Version:    d.DeviceVersion,
		EnrolledAt: d.UpdatedAt,
	})
	if err != nil {
		logger.Warn("Failed to encode enrollment event", zap.Error(err))
		return
	}

	token := p.client.Publish(p.topic, 0, false, payload)
	go func() {
		token.Wait()
		if err := token.Error(); err != nil {
			logger.Warn("Failed to publish enrollment event",
				zap.String("topic", p.topic),
				zap.Error(err),
			)
		}
	}()
}

func (p *Publisher) Close() {
	p.client.Disconnect(250)
}
