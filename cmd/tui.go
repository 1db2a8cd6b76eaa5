package cmd

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/priplot/priplot/internal/memory"
	"github.com/priplot/priplot/internal/session"
	"github.com/priplot/priplot/internal/tui"
	"github.com/priplot/priplot/internal/watcher"
)

func runTUI(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	list, store, err := loadSession(cfg)
	if err != nil {
		return err
	}
	mem, err := memory.Load(cfg.Dir())
	if err != nil {
		return err
	}

	if recent, err := session.LoadRecent(cfg.Dir()); err == nil {
		recent.Add(store.Path())
		_ = recent.Save()
	}

	model := tui.New(cfg, list, store, mem)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go watchSession(ctx, store.Path(), p)

	_, err = p.Run()
	return err
}

func watchSession(ctx context.Context, path string, p *tea.Program) {
	w, err := watcher.New(path, func() {
		p.Send(tui.ReloadMsg{})
	})
	if err != nil {
		return // non-fatal: TUI works without live refresh
	}
	defer w.Close()
	w.Run(ctx, nil)
}
