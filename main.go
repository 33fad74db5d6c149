package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/eclipse/paho.mqtt.golang"
	"github.com/matt-g-everett/ledtween/api"
	"github.com/matt-g-everett/ledtween/easing"
	"github.com/matt-g-everett/ledtween/loop"
	"github.com/matt-g-everett/ledtween/scheduler"
	"github.com/matt-g-everett/ledtween/stream"
	"github.com/matt-g-everett/ledtween/tween"
)

type app struct {
	Config     stream.Config
	Client     mqtt.Client
	Loop       *loop.Loop
	Scheduler  *scheduler.Scheduler
	Streamer   *stream.Streamer
	Controller *stream.Controller
	Preview    *stream.TerminalSink
}

func newApp(config stream.Config) *app {
	a := new(app)
	a.Config = config
	c, err := config.Clock()
	if err != nil {
		log.Fatal(err)
	}
	a.Loop = loop.New(c, config.Scheduler.Refresh)
	a.Scheduler = scheduler.New(a.Loop, a.Loop.Clock())
	config.Apply(a.Scheduler)
	if config.Scheduler.ShowFPS {
		a.Scheduler.SetFPSListener(func(fps int) {
			log.Printf("FPS: %d", fps)
		})
	}
	return a
}

func (a *app) handleOnConnect(client mqtt.Client) {
	log.Println("Connected")
	if err := a.Controller.Subscribe(client, a.Config.Mqtt.Topics.Control); err != nil {
		log.Println(err)
	}
}

func (a *app) connect() error {
	if a.Config.Mqtt.URL == "" {
		log.Println("No MQTT broker configured, streaming to preview only")
		return nil
	}
	options := mqtt.NewClientOptions().
		AddBroker(a.Config.Mqtt.URL).
		SetClientID(a.Config.Mqtt.ClientID).
		SetUsername(a.Config.Mqtt.Username).
		SetPassword(a.Config.Mqtt.Password).
		SetKeepAlive(30 * time.Second).
		SetPingTimeout(5 * time.Second).
		SetOnConnectHandler(a.handleOnConnect)
	a.Client = mqtt.NewClient(options)
	a.Streamer.AddSink(stream.NewMQTTSink(a.Client, a.Config.Mqtt.Topics.Stream, 0))

	if token := a.Client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	return nil
}

func (a *app) run(ctx context.Context) error {
	if a.Config.HTTP.Listen != "" {
		server := api.NewApi(a.Controller, "client/dist")
		go func() {
			if err := server.Serve(ctx, a.Config.HTTP.Listen); err != nil {
				log.Printf("HTTP server: %v", err)
			}
		}()
	}

	a.Loop.Submit(a.Controller.Start)
	err := a.Loop.Run(ctx)
	if a.Client != nil {
		a.Client.Disconnect(250)
	}
	if a.Preview != nil {
		a.Preview.Close()
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func main() {
	// mqtt.DEBUG = log.New(os.Stdout, "", 0)
	mqtt.ERROR = log.New(os.Stdout, "", 0)

	// Parse command line parameters
	configPath := flag.String("config", "config.yaml", "YAML config file.")
	preview := flag.Bool("preview", false, "Show frames in the terminal.")
	listEasings := flag.Bool("easings", false, "List the easing names and exit.")
	flag.Parse()

	if *listEasings {
		for _, name := range easing.Default().Names() {
			log.Println(name)
		}
		return
	}

	// Read the config
	config, err := stream.LoadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("Config: %+v", config)

	a := newApp(config)

	animation, err := config.BuildAnimation()
	if err != nil {
		log.Fatal(err)
	}
	a.Streamer = stream.NewStreamer(animation)

	if *preview {
		sink, err := stream.OpenTerminal()
		if err != nil {
			log.Fatal(err)
		}
		a.Preview = sink
		a.Streamer.AddSink(sink)
	}

	a.Controller, err = stream.NewController(config, a.Streamer, a.Loop,
		tween.WithHost(a.Loop),
		tween.WithClock(a.Loop.Clock()),
		tween.WithScheduler(a.Scheduler))
	if err != nil {
		log.Fatal(err)
	}

	if err := a.connect(); err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := a.run(ctx); err != nil {
		log.Fatal(err)
	}
}
