// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package flow

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

type pingMsg int

func TestRun_ExpandsBatchesAndFollowsReplies(t *testing.T) {
	var seen []int
	update := func(msg tea.Msg) tea.Cmd {
		n := int(msg.(pingMsg))
		seen = append(seen, n)
		if n < 3 {
			return func() tea.Msg { return pingMsg(n + 10) }
		}
		return nil
	}

	Run(tea.Batch(
		func() tea.Msg { return pingMsg(1) },
		nil,
		func() tea.Msg { return pingMsg(2) },
	), update)

	assert.Equal(t, []int{1, 2, 11, 12}, seen)
}

func TestRun_NilCommand(t *testing.T) {
	Run(nil, func(tea.Msg) tea.Cmd {
		t.Fatal("update must not be called")
		return nil
	})
}

func TestPhase_String(t *testing.T) {
	assert.Equal(t, "IDLE", Idle.String())
	assert.Equal(t, "SUBMITTING", Submitting.String())
	assert.Equal(t, "SUCCEEDED", Succeeded.String())
	assert.Equal(t, "FAILED", Failed.String())
	assert.Equal(t, "UNKNOWN", Phase(42).String())
}
