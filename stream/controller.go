package stream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/eclipse/paho.mqtt.golang"
	"github.com/matt-g-everett/ledtween/tween"
)

// ErrUnknownCommand is returned for control messages with an unsupported type.
var ErrUnknownCommand = errors.New("unknown command")

// ControlMessage is a JSON control message, for example
// {"type":"start","delay":100}. Delay is in milliseconds. Kind names the
// animation for {"type":"animation","kind":"twinkle"}.
type ControlMessage struct {
	Type  string  `json:"type"`
	Delay float64 `json:"delay,omitempty"`
	Clear bool    `json:"clear,omitempty"`
	Kind  string  `json:"kind,omitempty"`
}

// ParseControlMessage decodes and checks a control message.
func ParseControlMessage(payload []byte) (ControlMessage, error) {
	var m ControlMessage
	if err := json.Unmarshal(payload, &m); err != nil {
		return ControlMessage{}, fmt.Errorf("decoding control message: %w", err)
	}
	switch m.Type {
	case "start", "stop", "finish", "pause", "resume", "reverse", "restart":
	case "animation":
		if !validAnimationKind(m.Kind) {
			return ControlMessage{}, fmt.Errorf("unknown animation kind %q", m.Kind)
		}
	default:
		return ControlMessage{}, fmt.Errorf("%w %q", ErrUnknownCommand, m.Type)
	}
	if m.Delay < 0 {
		m.Delay = 0
	}
	return m, nil
}

// Submitter runs functions on the goroutine that owns the tween.
type Submitter interface {
	Submit(fn func())
}

// Subscriber is the part of mqtt.Client a Controller needs.
type Subscriber interface {
	Subscribe(topic string, qos byte, callback mqtt.MessageHandler) mqtt.Token
}

// Status is a snapshot of the controlled tween.
type Status struct {
	State    string  `json:"state"`
	Progress float64 `json:"progress"`
	Reversed bool    `json:"reversed"`
	Queued   int     `json:"queued"`
}

// Controller owns the tween that drives a Streamer and applies control
// messages to it on the submitter's goroutine.
type Controller struct {
	submit   Submitter
	tween    *tween.Tween
	streamer *Streamer
	config   Config
	loop     bool
	delay    time.Duration
}

// NewController creates the tween described by cfg, drawing frames with
// streamer. opts choose the services the tween runs on.
func NewController(cfg Config, streamer *Streamer, submit Submitter, opts ...tween.Option) (*Controller, error) {
	c := &Controller{
		submit:   submit,
		streamer: streamer,
		config:   cfg,
		loop:     cfg.Tween.Loop,
		delay:    cfg.Tween.Delay.Resolve(),
	}

	tc := cfg.TweenConfig(streamer.SendValue)
	tc.OnEnd = c.handleEnd
	tc.OnStop = func() { log.Println("Tween stopped") }

	tw, err := tween.New(nil, &tc, opts...)
	if err != nil {
		return nil, err
	}
	c.tween = tw
	return c, nil
}

// Tween returns the controlled tween.
func (c *Controller) Tween() *tween.Tween { return c.tween }

// Start begins the configured run, honouring tween.delay. Call it on the
// submitter's goroutine.
func (c *Controller) Start() {
	c.tween.StartDelayed(c.delay)
}

func (c *Controller) handleEnd() {
	if c.loop {
		c.tween.Enqueue(tween.Command{Kind: tween.CmdStart})
	}
}

// Apply acts on the tween. Call it on the submitter's goroutine.
func (c *Controller) Apply(m ControlMessage) {
	switch m.Type {
	case "start":
		c.tween.StartDelayed(time.Duration(m.Delay * float64(time.Millisecond)))
	case "stop":
		c.tween.Stop(m.Clear)
	case "finish":
		c.tween.Finish()
	case "pause":
		c.tween.Pause()
	case "resume":
		c.tween.Resume()
	case "reverse":
		c.tween.Reverse()
	case "restart":
		c.tween.Restart()
	case "animation":
		c.switchAnimation(m.Kind)
	}
}

// switchAnimation cross-fades to another animation kind over
// animation.transition frames.
func (c *Controller) switchAnimation(kind string) {
	cfg := c.config
	cfg.Animation.Kind = kind
	a, err := cfg.BuildAnimation()
	if err != nil {
		log.Printf("Switching animation: %v", err)
		return
	}
	c.streamer.SetAnimation(a, cfg.Animation.Transition)
}

// Handle parses payload and submits it. It is safe to call from any
// goroutine.
func (c *Controller) Handle(payload []byte) error {
	m, err := ParseControlMessage(payload)
	if err != nil {
		return err
	}
	log.Printf("Control: %s", m.Type)
	c.submit.Submit(func() { c.Apply(m) })
	return nil
}

// HandleMessage is an mqtt.MessageHandler for the control topic. Malformed
// messages are logged and dropped.
func (c *Controller) HandleMessage(client mqtt.Client, msg mqtt.Message) {
	if err := c.Handle(msg.Payload()); err != nil {
		log.Printf("Dropping message on %s: %v", msg.Topic(), err)
	}
}

// Subscribe listens for control messages on topic.
func (c *Controller) Subscribe(client Subscriber, topic string) error {
	token := client.Subscribe(topic, 1, c.HandleMessage)
	if token.Wait() && token.Error() != nil {
		return fmt.Errorf("subscribing to %s: %w", topic, token.Error())
	}
	return nil
}

// Status reads the tween state on the submitter's goroutine.
func (c *Controller) Status(ctx context.Context) (Status, error) {
	ch := make(chan Status, 1)
	c.submit.Submit(func() {
		ch <- Status{
			State:    c.tween.State().String(),
			Progress: c.tween.Progress(),
			Reversed: c.tween.Reversed(),
			Queued:   c.tween.QueueLen(),
		}
	})
	select {
	case s := <-ch:
		return s, nil
	case <-ctx.Done():
		return Status{}, ctx.Err()
	}
}
