// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/authflow-tui/internal/flow"
	"github.com/jeranaias/authflow-tui/internal/ui/styles"
)

// =============================================================================
// TOAST TYPES
// =============================================================================

// ToastKind represents the type of toast notification.
type ToastKind int

const (
	ToastKindSuccess ToastKind = iota
	ToastKindError
	ToastKindWarning
)

// SuccessToastDuration is the auto-dismiss duration for success toasts.
const SuccessToastDuration = 4 * time.Second

// ErrorToastDuration is longer so the reason can be read.
const ErrorToastDuration = 6 * time.Second

// MaxToasts is the number of toasts kept on screen.
const MaxToasts = 3

// Toast is a transient notification.
type Toast struct {
	ID          int
	Kind        ToastKind
	Title       string
	Description string
	CreatedAt   time.Time
	Duration    time.Duration
}

// expired reports whether the toast should be dismissed at now.
func (t Toast) expired(now time.Time) bool {
	return now.Sub(t.CreatedAt) >= t.Duration
}

// =============================================================================
// TOAST MANAGER
// =============================================================================

// ToastManager holds the visible toasts. It is safe for concurrent use, so
// it can be handed to flow controllers as their Notifier.
type ToastManager struct {
	mu     sync.Mutex
	toasts []Toast
	nextID int
	now    func() time.Time
}

// NewToastManager creates an empty manager.
func NewToastManager() *ToastManager {
	return &ToastManager{nextID: 1, now: time.Now}
}

// Notify implements flow.Notifier.
func (m *ToastManager) Notify(kind flow.NoticeKind, title, description string) {
	tk, d := ToastKindSuccess, SuccessToastDuration
	if kind == flow.NoticeError {
		tk, d = ToastKindError, ErrorToastDuration
	}
	m.Add(tk, title, description, d)
}

// Add pushes a toast and returns its ID. Newest toasts come first.
func (m *ToastManager) Add(kind ToastKind, title, description string, d time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	t := Toast{
		ID:          m.nextID,
		Kind:        kind,
		Title:       title,
		Description: description,
		CreatedAt:   m.now(),
		Duration:    d,
	}
	m.nextID++

	m.toasts = append([]Toast{t}, m.toasts...)
	if len(m.toasts) > MaxToasts {
		m.toasts = m.toasts[:MaxToasts]
	}
	return t.ID
}

// Dismiss removes a toast by ID.
func (m *ToastManager) Dismiss(id int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, t := range m.toasts {
		if t.ID == id {
			m.toasts = append(m.toasts[:i], m.toasts[i+1:]...)
			return
		}
	}
}

// DismissNewest removes the newest toast, if any.
func (m *ToastManager) DismissNewest() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.toasts) > 0 {
		m.toasts = m.toasts[1:]
	}
}

// Tick drops expired toasts.
func (m *ToastManager) Tick() {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	active := m.toasts[:0]
	for _, t := range m.toasts {
		if !t.expired(now) {
			active = append(active, t)
		}
	}
	m.toasts = active
}

// Toasts returns a copy of the visible toasts.
func (m *ToastManager) Toasts() []Toast {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Toast, len(m.toasts))
	copy(out, m.toasts)
	return out
}

// ToastTickMsg is sent periodically to expire toasts.
type ToastTickMsg struct {
	Time time.Time
}

// ToastTickCmd ticks toasts every 250ms.
func ToastTickCmd() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(t time.Time) tea.Msg {
		return ToastTickMsg{Time: t}
	})
}

// =============================================================================
// RENDERING
// =============================================================================

// RenderToast renders a single toast.
func RenderToast(theme *styles.Theme, t Toast, width int) string {
	maxWidth := 48
	if width > 0 && width-4 < maxWidth {
		maxWidth = width - 4
	}
	if maxWidth < 24 {
		maxWidth = 24
	}

	var color lipgloss.AdaptiveColor
	var icon string
	switch t.Kind {
	case ToastKindError:
		color, icon = styles.Rose, theme.Indicators.Error
	case ToastKindWarning:
		color, icon = styles.Amber, theme.Indicators.Warning
	default:
		color, icon = styles.Emerald, theme.Indicators.Success
	}

	lines := []string{
		lipgloss.NewStyle().Foreground(color).Bold(true).Render(icon+" ") + theme.ToastTitle.Render(t.Title),
	}
	if t.Description != "" {
		lines = append(lines, theme.ToastDescription.Width(maxWidth-6).Render(t.Description))
	}

	return theme.Toast.
		BorderForeground(color).
		MaxWidth(maxWidth).
		Render(strings.Join(lines, "\n"))
}

// RenderToastStack renders toasts stacked vertically, right-aligned to width.
func RenderToastStack(theme *styles.Theme, toasts []Toast, width int) string {
	if len(toasts) == 0 {
		return ""
	}
	rendered := make([]string, 0, len(toasts))
	for _, t := range toasts {
		rendered = append(rendered, RenderToast(theme, t, width))
	}
	stack := lipgloss.JoinVertical(lipgloss.Right, rendered...)
	if width <= 0 {
		return stack
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Right, stack)
}
