package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"krishi/pkg/cropcal"
)

type publisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
}

// MQTTNotifier publishes each reminder to <topic>/<farmer phone>.
type MQTTNotifier struct {
	client  publisher
	close   func()
	topic   string
	timeout time.Duration
}

func NewMQTT(broker, clientID, topic string) (*MQTTNotifier, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(broker)
	opts.SetClientID(clientID)
	opts.SetAutoReconnect(true)
	opts.SetCleanSession(true)
	opts.SetConnectTimeout(10 * time.Second)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("connect to MQTT broker %s: %w", broker, token.Error())
	}
	return &MQTTNotifier{
		client:  client,
		close:   func() { client.Disconnect(250) },
		topic:   strings.TrimRight(topic, "/"),
		timeout: 10 * time.Second,
	}, nil
}

func (n *MQTTNotifier) Notify(ctx context.Context, r cropcal.Reminder) error {
	data, err := payload(r)
	if err != nil {
		return err
	}
	topic := n.topic + "/" + topicSegment(r.FarmerPhone)
	token := n.client.Publish(topic, 1, false, data)
	select {
	case <-token.Done():
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(n.timeout):
		return fmt.Errorf("publish to %s: timed out", topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish to %s: %w", topic, err)
	}
	return nil
}

// topicSegment keeps letters, digits, '-', '_' and '.' so a phone number can
// never inject wildcards or extra levels into the publish topic.
func topicSegment(phone string) string {
	seg := strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '-', r == '_', r == '.':
			return r
		}
		return -1
	}, phone)
	if seg == "" {
		return "unknown"
	}
	return seg
}

func (n *MQTTNotifier) Close() {
	if n.close != nil {
		n.close()
	}
}
