package main

import (
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"

	"github.org/carrierlabs/go-lacrosse/lacrosse"
)

const publishTimeout = 5 * time.Second

// mqttPublisher implements lacrosse.Handler and publishes readings as JSON
// on <topic>/<sensor id>
type mqttPublisher struct {
	client mqtt.Client
	topic  string
	names  map[int]string
	logger *zap.SugaredLogger
}

func newMQTTPublisher(broker, clientID, topic string, names map[int]string, logger *zap.SugaredLogger) (*mqttPublisher, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetCleanSession(true).
		SetAutoReconnect(true)

	opts.OnConnect = func(mqtt.Client) {
		logger.Infof("Connected to MQTT broker %s", broker)
	}
	opts.OnConnectionLost = func(_ mqtt.Client, err error) {
		logger.Warnf("Lost MQTT broker %s: %s", broker, err)
	}

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("connect to %s: %w", broker, token.Error())
	}

	return &mqttPublisher{
		client: client,
		topic:  topic,
		names:  names,
		logger: logger,
	}, nil
}

// HandleReading implements lacrosse.Handler
func (p *mqttPublisher) HandleReading(r lacrosse.Reading) error {
	payload, err := json.Marshal(newPayload(r, p.names))
	if err != nil {
		return fmt.Errorf("marshal reading: %w", err)
	}

	topic := fmt.Sprintf("%s/%d", p.topic, r.SensorID)
	token := p.client.Publish(topic, 0, false, payload)
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("publish to %s: timed out", topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish to %s: %w", topic, err)
	}

	p.logger.Debugf("Publishing %s -> %s", topic, payload)
	return nil
}

// Close disconnects from the broker
func (p *mqttPublisher) Close() {
	p.client.Disconnect(250)
}
