package calculator

import "sync/atomic"

// PolicyHolder publishes the current Policy to concurrent readers.
// Replacement is a single pointer swap, so a reader sees either the old or
// the new policy and never a mix of the two.
type PolicyHolder struct {
	current atomic.Pointer[Policy]
}

// NewPolicyHolder returns a holder initially serving p.
func NewPolicyHolder(p Policy) *PolicyHolder {
	h := &PolicyHolder{}
	h.Store(p)
	return h
}

// Load returns the policy currently in effect.
func (h *PolicyHolder) Load() Policy {
	if p := h.current.Load(); p != nil {
		return *p
	}
	return Policy{}
}

// Store replaces the policy in effect.
func (h *PolicyHolder) Store(p Policy) {
	h.current.Store(&p)
}
