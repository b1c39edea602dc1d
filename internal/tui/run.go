package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/checklist/internal/model"
	"github.com/Makepad-fr/checklist/internal/store"
	"github.com/Makepad-fr/checklist/internal/syncer"
)

// Options tune the sync controller behind the program.
type Options struct {
	Delay   time.Duration
	Timeout time.Duration
	Logger  *slog.Logger
}

// Run starts the program against st and blocks until the user quits. Edits
// still waiting for their debounce are written before Run returns.
func Run(ctx context.Context, st store.Store, opts Options) error {
	var p *tea.Program
	ctrl := syncer.New(st,
		syncer.WithDelay(opts.Delay),
		syncer.WithTimeout(opts.Timeout),
		syncer.WithLogger(opts.Logger),
		syncer.WithPersistHook(func(_ model.Collection, err error) {
			if p != nil {
				p.Send(savedMsg{err: err})
			}
		}),
	)
	defer ctrl.Close()

	p = tea.NewProgram(New(ctx, ctrl), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run tui: %w", err)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = syncer.DefaultTimeout
	}
	flushCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()
	if err := ctrl.Flush(flushCtx); err != nil {
		return fmt.Errorf("final save: %w", err)
	}
	return nil
}
