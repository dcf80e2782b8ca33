// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package flow

import (
	"context"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/jeranaias/authflow-tui/internal/auth"
	"github.com/jeranaias/authflow-tui/internal/route"
)

// =============================================================================
// MESSAGES
// =============================================================================

// resultMsg carries a backend answer back to the controller that asked.
type resultMsg struct {
	owner uint64
	seq   uint64
	res   auth.Result
	err   error
}

// navigateMsg is a navigation delayed by the redirect grace.
type navigateMsg struct {
	owner uint64
	loc   route.Location
}

var controllerIDs atomic.Uint64

// =============================================================================
// MACHINE
// =============================================================================

// machine is the submission protocol shared by every controller. It must only
// be touched from the Bubble Tea update loop (or the goroutine calling Run).
type machine struct {
	id   uint64
	name string
	deps Deps

	state State
	seq   uint64
	subID string

	ctx     context.Context
	cancel  context.CancelFunc
	limiter *rate.Limiter
	closed  bool

	log *zap.Logger
}

func newMachine(name string, deps Deps) machine {
	deps = deps.withDefaults()
	ctx, cancel := context.WithCancel(context.Background())
	id := controllerIDs.Add(1)
	return machine{
		id:      id,
		name:    name,
		deps:    deps,
		ctx:     ctx,
		cancel:  cancel,
		limiter: deps.Settings.limiter(),
		log:     deps.Logger.Named("flow").With(zap.String("flow", name), zap.Uint64("controller", id)),
	}
}

// State returns the current state.
func (m *machine) State() State {
	return m.state
}

// CanSubmit reports whether the submit action is enabled.
func (m *machine) CanSubmit() bool {
	return !m.closed && m.state.Phase != Submitting
}

// Close ends the controller's lifetime. In-flight calls are cancelled and
// their results dropped; a submitting controller goes back to Idle without
// notifying. Close is idempotent.
func (m *machine) Close() {
	if m.closed {
		return
	}
	m.closed = true
	m.cancel()
	m.log.Debug("controller closed", zap.Stringer("phase", m.state.Phase))
	if m.state.Phase == Submitting {
		m.state = State{Phase: Idle}
	}
}

// Closed reports whether Close has been called.
func (m *machine) Closed() bool {
	return m.closed
}

// edited re-arms a finished controller when the user changes the form.
func (m *machine) edited() {
	if m.state.Phase == Succeeded || m.state.Phase == Failed {
		m.state = State{Phase: Idle}
	}
}

// reject moves to Failed for a local validation error.
func (m *machine) reject(field, message string) tea.Cmd {
	m.state = State{
		Phase:   Failed,
		Message: message,
		Err:     &ValidationError{Field: field, Message: message},
	}
	m.log.Debug("validation failed", zap.String("field", field))
	return nil
}

// begin enters Submitting and returns the command performing call.
func (m *machine) begin(call func(ctx context.Context) (auth.Result, error)) tea.Cmd {
	if m.limiter != nil && !m.limiter.Allow() {
		m.state = State{Phase: Failed, Message: MsgThrottled, Err: ErrThrottled}
		m.log.Info("submission throttled")
		return nil
	}

	m.seq++
	m.subID = uuid.NewString()
	m.state = State{Phase: Submitting}
	m.log.Debug("submission started", zap.String("submission", m.subID))

	owner, seq, ctx := m.id, m.seq, m.ctx
	return func() tea.Msg {
		res, err := call(ctx)
		return resultMsg{owner: owner, seq: seq, res: res, err: err}
	}
}

// accept returns the result if msg answers this controller's pending call.
func (m *machine) accept(msg tea.Msg) (resultMsg, bool) {
	r, ok := msg.(resultMsg)
	if !ok || r.owner != m.id {
		return resultMsg{}, false
	}
	if m.closed || r.seq != m.seq || m.state.Phase != Submitting {
		m.log.Debug("stale result dropped", zap.Uint64("seq", r.seq))
		return resultMsg{}, false
	}
	return r, true
}

// abandoned handles a call that ended without a result.
func (m *machine) abandoned(err error) tea.Cmd {
	m.state = State{Phase: Failed, Message: MsgAbandoned, Err: ErrAbandoned}
	m.log.Warn("submission abandoned", zap.String("submission", m.subID), zap.Error(err))
	m.deps.Notifier.Notify(NoticeError, "Request failed", MsgAbandoned)
	return nil
}

// succeed moves to Succeeded and notifies.
func (m *machine) succeed(message, title, description string) {
	m.state = State{Phase: Succeeded, Message: message}
	m.log.Debug("submission succeeded", zap.String("submission", m.subID))
	m.deps.Notifier.Notify(NoticeSuccess, title, description)
}

// fail moves to Failed with a backend rejection and notifies.
func (m *machine) fail(res auth.Result, title string) {
	m.state = State{Phase: Failed, Message: res.Reason(), Err: res.Err()}
	m.log.Debug("submission rejected", zap.String("submission", m.subID), zap.Stringer("kind", res.Kind()))
	m.deps.Notifier.Notify(NoticeError, title, res.Reason())
}

// navigate moves to loc now.
func (m *machine) navigate(loc route.Location) {
	m.deps.Navigator.NavigateTo(loc)
}

// navigateAfter schedules a navigation to loc after the redirect grace.
func (m *machine) navigateAfter(loc route.Location) tea.Cmd {
	grace := m.deps.Settings.RedirectGrace
	if grace <= 0 {
		m.navigate(loc)
		return nil
	}
	owner := m.id
	return tea.Tick(grace, func(time.Time) tea.Msg {
		return navigateMsg{owner: owner, loc: loc}
	})
}

// handleNavigate applies a delayed navigation addressed to this controller.
func (m *machine) handleNavigate(msg tea.Msg) bool {
	n, ok := msg.(navigateMsg)
	if !ok || n.owner != m.id {
		return false
	}
	if m.closed {
		m.log.Debug("delayed navigation dropped", zap.Stringer("to", n.loc))
		return true
	}
	m.navigate(n.loc)
	return true
}

// =============================================================================
// SYNCHRONOUS DRIVER
// =============================================================================

// Run executes cmd and feeds every message it yields back into update until
// no command is left. Batched commands run in order. It blocks for as long as
// the commands do, so it is meant for line-mode frontends and tests.
func Run(cmd tea.Cmd, update func(tea.Msg) tea.Cmd) {
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		msg := next()
		if batch, ok := msg.(tea.BatchMsg); ok {
			queue = append(queue, batch...)
			continue
		}
		if msg == nil {
			continue
		}
		queue = append(queue, update(msg))
	}
}
