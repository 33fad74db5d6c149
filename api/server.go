// Package api serves the tween controls over HTTP alongside the MQTT
// control topic.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/matt-g-everett/ledtween/stream"
)

// Controller is what the API drives.
type Controller interface {
	Handle(payload []byte) error
	Status(ctx context.Context) (stream.Status, error)
}

type Api struct {
	controller Controller
	staticDir  string
}

// NewApi creates an Api. A non-empty staticDir is served at /.
func NewApi(controller Controller, staticDir string) *Api {
	a := new(Api)
	a.controller = controller
	a.staticDir = staticDir
	return a
}

// Handler returns the routes: POST /control takes a control message, GET
// /status reports the tween.
func (a *Api) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/control", a.handleControl)
	mux.HandleFunc("/status", a.handleStatus)
	if a.staticDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(a.staticDir)))
	}
	return mux
}

func (a *Api) handleControl(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, 4096))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := a.controller.Handle(body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (a *Api) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	status, err := a.controller.Status(ctx)
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(status)
}

// Serve listens on addr until ctx is done.
func (a *Api) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: a.Handler()}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	log.Printf("Listening on %s", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
