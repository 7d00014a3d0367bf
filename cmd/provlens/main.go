package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/MuhamedUsman/provlens/internal/tui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/lmittmann/tint"
)

func main() {
	f, err := tea.LogToFile("provlens.log", "provlens")
	if err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
	defer f.Close()

	h := tint.NewHandler(f, &tint.Options{TimeFormat: time.Kitchen, NoColor: true})
	slog.SetDefault(slog.New(h))

	_, err = tea.NewProgram(
		tui.InitialMainModel(),
		tea.WithAltScreen(),
		tea.WithoutBracketedPaste(),
	).Run()
	if err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}
