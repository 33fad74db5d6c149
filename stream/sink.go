package stream

import (
	"log"

	"github.com/eclipse/paho.mqtt.golang"
)

// A Sink displays frames.
type Sink interface {
	Send(f *Frame) error
}

// Publisher is the part of mqtt.Client an MQTTSink needs.
type Publisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
}

// MQTTSink publishes frames as binary to an ledrx device.
type MQTTSink struct {
	client Publisher
	topic  string
	qos    byte
}

// NewMQTTSink creates an MQTTSink publishing to topic.
func NewMQTTSink(client Publisher, topic string, qos byte) *MQTTSink {
	return &MQTTSink{client: client, topic: topic, qos: qos}
}

// Send publishes f. It does not wait for delivery; failures are logged when
// the token completes.
func (s *MQTTSink) Send(f *Frame) error {
	b, err := f.MarshalBinary()
	if err != nil {
		return err
	}
	token := s.client.Publish(s.topic, s.qos, false, b)
	go func() {
		if token.Wait() && token.Error() != nil {
			log.Printf("Publish to %s failed: %v", s.topic, token.Error())
		}
	}()
	return nil
}
