// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package flow

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/jeranaias/authflow-tui/internal/audit"
	"github.com/jeranaias/authflow-tui/internal/auth"
	"github.com/jeranaias/authflow-tui/internal/route"
	"github.com/jeranaias/authflow-tui/internal/session"
)

// fakeBackend answers immediately with preset results and counts calls.
type fakeBackend struct {
	mu    sync.Mutex
	calls map[string]int

	login    auth.Result
	social   auth.Result
	register auth.Result
	forgot   auth.Result
	reset    auth.Result
	err      error

	lastReset auth.ResetRequest
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		calls:    make(map[string]int),
		login:    auth.Success(auth.MsgLoggedIn),
		social:   auth.Success("Successfully authenticated with GitHub!"),
		register: auth.Success(auth.MsgRegistered),
		forgot:   auth.Success(auth.MsgResetLinkSent),
		reset:    auth.Success(auth.MsgPasswordReset),
	}
}

func (b *fakeBackend) record(op string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls[op]++
}

func (b *fakeBackend) Calls(op string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[op]
}

func (b *fakeBackend) answer(ctx context.Context, op string, r auth.Result) (auth.Result, error) {
	b.record(op)
	if b.err != nil {
		return auth.Result{}, b.err
	}
	if err := ctx.Err(); err != nil {
		return auth.Result{}, err
	}
	return r, nil
}

func (b *fakeBackend) Login(ctx context.Context, _ auth.Credentials) (auth.Result, error) {
	return b.answer(ctx, "login", b.login)
}

func (b *fakeBackend) SocialLogin(ctx context.Context, _ auth.Provider) (auth.Result, error) {
	return b.answer(ctx, "social", b.social)
}

func (b *fakeBackend) Register(ctx context.Context, _ auth.RegistrationRequest) (auth.Result, error) {
	return b.answer(ctx, "register", b.register)
}

func (b *fakeBackend) RequestPasswordReset(ctx context.Context, _ string) (auth.Result, error) {
	return b.answer(ctx, "forgot", b.forgot)
}

func (b *fakeBackend) ResetPassword(ctx context.Context, req auth.ResetRequest) (auth.Result, error) {
	b.mu.Lock()
	b.lastReset = req
	b.mu.Unlock()
	return b.answer(ctx, "reset", b.reset)
}

// notice is one recorded notification.
type notice struct {
	Kind        NoticeKind
	Title       string
	Description string
}

type recorder struct {
	notices []notice
	visits  []route.Location
}

func (r *recorder) Notify(kind NoticeKind, title, description string) {
	r.notices = append(r.notices, notice{kind, title, description})
}

func (r *recorder) NavigateTo(loc route.Location) {
	r.visits = append(r.visits, loc)
}

// harness wires a controller to fakes.
type harness struct {
	backend *fakeBackend
	rec     *recorder
	gate    *session.Gate
	logs    *observer.ObservedLogs
	deps    Deps
}

func newHarness() *harness {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := zap.New(core)
	h := &harness{
		backend: newFakeBackend(),
		rec:     &recorder{},
		gate:    session.NewGate(),
		logs:    logs,
	}
	settings := DefaultSettings()
	settings.RedirectGrace = time.Millisecond
	h.deps = Deps{
		Backend:   h.backend,
		Gate:      h.gate,
		Navigator: h.rec,
		Notifier:  h.rec,
		Audit:     audit.New(logger),
		Logger:    logger,
		Settings:  settings,
	}
	return h
}

func (h *harness) auditEvents() []string {
	var types []string
	for _, e := range h.logs.FilterLoggerName("audit").All() {
		for _, f := range e.Context {
			if f.Key == "event_type" {
				types = append(types, f.String)
			}
		}
	}
	return types
}
