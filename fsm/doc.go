// SPDX-License-Identifier: EPL-2.0

// Package fsm implements a generic hierarchical finite state machine.
// States are organized in a tree rooted at a top state; an event method
// unhandled by the current leaf state delegates to its ancestors by
// construction of the ancestor chain, not by Go method promotion.
//
// A state is a type implementing Node[C], where C is whatever context data
// the machine's states need to share:
//
//	type ctx struct{ calls int }
//
//	type Idle struct{ fsm.Base[*ctx] }
//	type Busy struct{ fsm.Base[*ctx] }
//
//	func (Busy) Parent() fsm.Node[*ctx] { return &Idle{} }
//
//	m := fsm.New[*ctx](r, &ctx{}, "demo")
//	m.Start(&Idle{})
//	m.SetState(&Busy{})
//
// Transitions follow a two-phase protocol: Init runs on the candidate state
// before it is installed and may itself redirect to a substate, in which
// case the outer candidate is discarded; once a target is settled, Exit
// runs bottom-up from the old state to the nearest common ancestor with
// the new one, and Entry runs top-down from just below that ancestor to
// the new leaf.
package fsm
