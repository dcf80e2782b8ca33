// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"math/rand"
	"sync"
	"time"
)

// OutcomePolicy decides whether a simulated registration succeeds.
type OutcomePolicy interface {
	RegistrationSucceeds(req RegistrationRequest) bool
}

// FixedPolicy always answers with its own value.
type FixedPolicy bool

// RegistrationSucceeds implements OutcomePolicy.
func (p FixedPolicy) RegistrationSucceeds(RegistrationRequest) bool {
	return bool(p)
}

// DefaultSuccessRate is the share of simulated registrations that succeed.
const DefaultSuccessRate = 0.8

// RandomPolicy succeeds with probability SuccessRate.
type RandomPolicy struct {
	mu          sync.Mutex
	rng         *rand.Rand
	successRate float64
}

// NewRandomPolicy returns a RandomPolicy. Rates outside [0,1] are clamped.
// A zero seed seeds from the clock.
func NewRandomPolicy(successRate float64, seed int64) *RandomPolicy {
	if successRate < 0 {
		successRate = 0
	}
	if successRate > 1 {
		successRate = 1
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &RandomPolicy{
		rng:         rand.New(rand.NewSource(seed)),
		successRate: successRate,
	}
}

// RegistrationSucceeds implements OutcomePolicy.
func (p *RandomPolicy) RegistrationSucceeds(RegistrationRequest) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rng.Float64() < p.successRate
}

// PolicyFunc adapts a function to OutcomePolicy.
type PolicyFunc func(req RegistrationRequest) bool

// RegistrationSucceeds implements OutcomePolicy.
func (f PolicyFunc) RegistrationSucceeds(req RegistrationRequest) bool {
	return f(req)
}
