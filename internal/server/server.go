// Package server exposes the bridge over a small REST API so desk tooling
// can drive an attached handset.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/KwaminaWhyte/esimbridge/internal/utils"
	"github.com/KwaminaWhyte/esimbridge/pkg/esim"
	"github.com/KwaminaWhyte/esimbridge/pkg/storage"
)

type Config struct {
	ListenAddr string
	Bridge     esim.Bridge
	Store      *storage.Store // optional; nil disables the audit trail
}

type Server struct {
	bridge esim.Bridge
	store  *storage.Store
	http   *http.Server
}

func New(cfg Config) *Server {
	s := &Server{
		bridge: cfg.Bridge,
		store:  cfg.Store,
	}

	m := mux.NewRouter()
	m.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "esimbridge API")
	}).Methods("GET")
	m.HandleFunc("/api/v1/esim/supported", s.handleSupported).Methods("GET")
	m.HandleFunc("/api/v1/esim/capability", s.handleCapability).Methods("GET")
	m.HandleFunc("/api/v1/esim/plans", s.handlePlans).Methods("GET")
	m.HandleFunc("/api/v1/esim/setup", s.handleSetup).Methods("POST")
	m.HandleFunc("/api/v1/esim/attempts", s.handleAttempts).Methods("GET")

	c := cors.New(cors.Options{
		AllowCredentials: true,
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		MaxAge:           31,
	})

	s.http = &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handlers.ProxyHeaders(c.Handler(m)),
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 8 * time.Second,
		// OpenSetup legitimately waits on the handset; give it room.
		WriteTimeout: 120 * time.Second,
	}

	return s
}

// Start blocks serving HTTP until Shutdown is called or the listener fails.
func (s *Server) Start() error {
	utils.Log.Infof("starting HTTP interface on %s", s.http.Addr)
	err := s.http.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
