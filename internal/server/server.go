package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/MuhamedUsman/provlens/internal/bgtask"
	"github.com/MuhamedUsman/provlens/internal/gemini"
	"github.com/MuhamedUsman/provlens/internal/mdns"
	"github.com/justinas/alice"
)

// maxUploadBytes caps one multipart submission. CSVs past this are refused
// before parsing.
const maxUploadBytes = 32 << 20

type Server struct {
	// Option to let others on the same LAN stop this instance
	Stoppable bool
	// Once done, the server will exit
	StopCtx context.Context
	// Cancel func for StopCtx
	StopCancel context.CancelFunc
	// Every goroutine must run through BT's Run function
	BT *bgtask.BackgroundTask
	// cleaner scores uploaded records, Gemini-backed or offline
	cleaner gemini.Cleaner
	// cleaning fan-out per upload, <=0 picks a CPU-scaled default
	workers int

	mu *sync.Mutex
	// number of uploads currently being cleaned, the server
	// refuses /stop while this is non-zero
	activeCleans int
}

func New(cleaner gemini.Cleaner) *Server {
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		Stoppable:  true,
		StopCtx:    ctx,
		StopCancel: cancel,
		BT:         bgtask.Get(),
		cleaner:    cleaner,
		mu:         new(sync.Mutex),
	}
}

// Start runs the HTTP server on addr ("host:port"), publishes the mDNS
// instance, and blocks until shutdown completes. Shutdown is triggered by
// SIGINT/SIGTERM, or by /stop when the instance is stoppable and idle.
func (s *Server) Start(addr, instance string, port int) error {
	server := &http.Server{
		Addr:              addr,
		ReadTimeout:       2 * time.Minute, // uploads may be slow on wifi
		ReadHeaderTimeout: 2 * time.Second,
		IdleTimeout:       30 * time.Second,
		Handler:           s.routes(),
	}

	s.BT.Run(func(shutdownCtx context.Context) {
		if err := mdns.Publish(s.StopCtx, instance, port); err != nil {
			slog.Error("publishing mDNS entry", "instance", instance, "err", err)
		}
	})

	errChan := s.listenAndShutdown(server)
	slog.Info("Starting server", "address", server.Addr, "instance", instance)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server listening on address %q: %v", server.Addr, err)
	}
	if err := <-errChan; err != nil {
		return fmt.Errorf("server shutting down: %v", err)
	}
	if err := s.BT.Shutdown(5 * time.Second); err != nil {
		return fmt.Errorf("shutting down background tasks: %v", err)
	}
	return nil
}

func (s *Server) listenAndShutdown(server *http.Server) chan error {
	errChan := make(chan error)
	go func() {
		defer close(errChan)
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-s.StopCtx.Done():
		case <-quit:
			s.StopCancel()
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			errChan <- fmt.Errorf("shutting down server: %v", err)
		}
	}()
	return errChan
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	base := alice.New(s.recoverPanic, s.logRequest)
	mux.Handle("GET /{$}", base.ThenFunc(s.uploadPageHandler))
	mux.Handle("POST /clean", base.ThenFunc(s.cleanHandler))
	mux.Handle("GET /healthz", base.ThenFunc(s.healthHandler))
	mux.Handle("GET /stop", base.ThenFunc(s.stopHandler))
	return mux
}

func (s *Server) trackClean() (done func()) {
	s.mu.Lock()
	s.activeCleans++
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		s.activeCleans--
		s.mu.Unlock()
	}
}
