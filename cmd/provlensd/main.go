// Command provlensd runs the clean server on the local network. It renders
// the upload page, cleans uploaded provider CSVs through Gemini (or the
// offline heuristic when no API key is configured), publishes itself over
// mDNS, and prints a QR code of the upload URL so phones on the same LAN
// can reach it.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/MuhamedUsman/provlens/internal/config"
	"github.com/MuhamedUsman/provlens/internal/gemini"
	"github.com/MuhamedUsman/provlens/internal/network"
	"github.com/MuhamedUsman/provlens/internal/server"
	"github.com/lmittmann/tint"
	"github.com/mdp/qrterminal/v3"
)

func main() {
	h := tint.NewHandler(os.Stderr, &tint.Options{TimeFormat: time.Kitchen})
	slog.SetDefault(slog.New(h))

	cfg, err := config.Get()
	if errors.Is(err, config.ErrNoConfig) {
		cfg, err = config.Load()
	}
	if err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}

	var cleaner gemini.Cleaner
	if key := cfg.GeminiKey(); key != "" {
		cleaner = gemini.NewClient(key, cfg.Gemini.Model)
	} else {
		slog.Warn("No Gemini API key configured, falling back to the offline heuristic cleaner")
		cleaner = gemini.NewHeuristic()
	}

	s := server.New(cleaner)
	s.Stoppable = cfg.Serve.StoppableInstance

	ip, err := network.GetOutboundIP()
	if err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}

	addr := fmt.Sprintf("%s:%d", ip, cfg.Serve.Port)
	uploadURL := fmt.Sprintf("http://%s/", addr)
	fmt.Printf("Scan to open the upload page, or visit %s\n\n", uploadURL)
	qrterminal.GenerateHalfBlock(uploadURL, qrterminal.L, os.Stdout)

	if err = s.Start(addr, cfg.Serve.Instance, cfg.Serve.Port); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}
