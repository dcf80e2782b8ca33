// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package flow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/authflow-tui/internal/auth"
	"github.com/jeranaias/authflow-tui/internal/route"
	"github.com/jeranaias/authflow-tui/internal/validate"
)

func TestForgotPassword_SuccessClearsFieldAndShowsSent(t *testing.T) {
	h := newHarness()
	c := NewForgotPassword(h.deps)
	c.SetEmail("anyone@example.com")

	Run(c.Submit(), c.Update)

	assert.Equal(t, Succeeded, c.State().Phase)
	assert.Equal(t, auth.MsgResetLinkSent, c.State().Message)
	assert.Empty(t, c.Email())
	require.Len(t, h.rec.visits, 1)
	assert.Equal(t, route.ForgotPassword, h.rec.visits[0].Route)
	assert.Equal(t, route.StatusSent, h.rec.visits[0].Get(route.QueryStatus))
	require.Len(t, h.rec.notices, 1)
	assert.Equal(t, NoticeSuccess, h.rec.notices[0].Kind)
	assert.Contains(t, h.auditEvents(), "RESET_REQUESTED")
}

func TestForgotPassword_Validation(t *testing.T) {
	for email, want := range map[string]string{
		"":             validate.MsgEmailRequired,
		"not-an-email": validate.MsgEmailInvalid,
		"a b@c.io":     validate.MsgEmailInvalid,
	} {
		h := newHarness()
		c := NewForgotPassword(h.deps)
		c.SetEmail(email)

		assert.Nil(t, c.Submit())
		assert.Equal(t, want, c.State().Message, "email %q", email)
		assert.Equal(t, email, c.Email(), "field kept on validation failure")
		assert.Zero(t, h.backend.Calls("forgot"))
	}
}

func TestForgotPassword_SameAnswerForUnknownAccounts(t *testing.T) {
	sim := auth.NewSimulator(auth.WithLatency(auth.Latency{}))
	var messages []string
	for _, email := range []string{auth.DefaultDemoEmail, "nobody@example.com"} {
		h := newHarness()
		h.deps.Backend = sim
		c := NewForgotPassword(h.deps)
		c.SetEmail(email)
		Run(c.Submit(), c.Update)
		messages = append(messages, c.State().Message)
	}
	assert.Equal(t, messages[0], messages[1])
}

func TestForgotPassword_ResubmitAfterEdit(t *testing.T) {
	h := newHarness()
	c := NewForgotPassword(h.deps)
	c.SetEmail("anyone@example.com")
	Run(c.Submit(), c.Update)
	require.Equal(t, Succeeded, c.State().Phase)

	c.SetEmail("again@example.com")
	assert.Equal(t, Idle, c.State().Phase)
	Run(c.Submit(), c.Update)
	assert.Equal(t, 2, h.backend.Calls("forgot"))
}
