// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package tui

import (
	"context"
	"sync"

	"github.com/linuxfoundation/lfx-v2-recipe-search/internal/domain/port"

	tea "github.com/charmbracelet/bubbletea"
)

var _ port.Viewport = (*ProgramViewport)(nil)

// ProgramViewport forwards scroll requests from the coordinator to a running
// program as messages.
type ProgramViewport struct {
	mu   sync.RWMutex
	send func(tea.Msg)
}

// Attach connects the bridge to the program; until then scrolls are dropped.
func (v *ProgramViewport) Attach(p *tea.Program) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.send = p.Send
}

// ScrollToTop implements port.Viewport. It must not be called from the
// program's Update, as Send blocks until the event loop receives the message.
func (v *ProgramViewport) ScrollToTop(ctx context.Context) {
	v.mu.RLock()
	send := v.send
	v.mu.RUnlock()

	if send != nil {
		send(scrollTopMsg{})
	}
}
