package fsm

import (
	"reflect"
	"time"

	"github.com/sm0svx/asynccore/internal/logging"
	"github.com/sm0svx/asynccore/reactor"
)

// Machine drives a hierarchy of Node[C] states against a shared context C.
// A Machine is not safe for concurrent use; it is meant to be driven
// entirely from a single reactor.Reactor's Run goroutine.
type Machine[C any] struct {
	ctx     C
	current Node[C]
	reactor *reactor.Reactor
	timeout *reactor.Timer
	name    string
}

// New creates a Machine over ctx. name is used only for debug tracing when
// asynccore.StateMachineDebug is set.
func New[C any](r *reactor.Reactor, ctx C, name string) *Machine[C] {
	return &Machine[C]{ctx: ctx, reactor: r, name: name}
}

// Context returns the shared context passed to New.
func (m *Machine[C]) Context() C { return m.ctx }

// State returns the current leaf state, for external event dispatch via a
// type switch or assertion. Returns nil before Start is called.
func (m *Machine[C]) State() Node[C] { return m.current }

// IsActive reports whether the current state's type identity matches
// sample's. sample is typically a throwaway zero-value instance, e.g.
// m.IsActive(&Busy{}).
func (m *Machine[C]) IsActive(sample Node[C]) bool {
	return m.current != nil && reflect.TypeOf(m.current) == reflect.TypeOf(sample)
}

// Start enters top and runs its Init, which may itself cascade through
// further SetState calls until a leaf with no redirect is reached.
func (m *Machine[C]) Start(top Node[C]) {
	m.SetState(top)
}

// SetState requests a transition to ns. If ns has the same type identity
// as the current state this is a no-op. Otherwise ns.Init runs first and
// may itself call SetState to redirect to a substate, in which case this
// call's candidate is discarded; once a target settles, Exit runs
// bottom-up from the current state to the nearest common ancestor with
// ns, then Entry runs top-down from just below that ancestor to ns.
func (m *Machine[C]) SetState(ns Node[C]) {
	if m.current != nil && sameType(m.current, ns) {
		return
	}

	before := m.current
	ns.Init(m)
	if m.current != before {
		// A nested SetState call inside ns.Init already completed a
		// transition; this candidate is abandoned.
		return
	}

	m.clearTimeout()

	oldChain := ancestryRootToLeaf(before)
	newChain := ancestryRootToLeaf(ns)
	depth := commonPrefixLen(oldChain, newChain)

	for i := len(oldChain) - 1; i >= depth; i-- {
		if logging.StateMachineDebug() {
			logging.Debugf("fsm[%s]: exit %s", m.name, typeName(oldChain[i]))
		}
		oldChain[i].Exit(m)
	}

	m.current = ns

	for i := depth; i < len(newChain); i++ {
		if logging.StateMachineDebug() {
			logging.Debugf("fsm[%s]: entry %s", m.name, typeName(newChain[i]))
		}
		newChain[i].Entry(m)
	}
}

// SetTimeout arms a single-shot timeout. Expiry invokes TimeoutEvent on
// whatever the current state is at that moment. Any state exit (including
// one caused by a subsequent SetState call before the timeout fires)
// cancels it.
func (m *Machine[C]) SetTimeout(d time.Duration) {
	m.clearTimeout()

	t := reactor.NewTimer(d, false)
	m.reactor.AddTimer(t)
	t.Expired().Connect(func(*reactor.Timer) {
		m.timeout = nil
		if m.current != nil {
			m.current.TimeoutEvent(m)
		}
	})
	t.SetEnable(true)
	m.timeout = t
}

// ClearTimeout disarms a pending timeout set by SetTimeout. Idempotent.
func (m *Machine[C]) ClearTimeout() {
	m.clearTimeout()
}

func (m *Machine[C]) clearTimeout() {
	if m.timeout != nil {
		m.timeout.SetEnable(false)
		m.timeout = nil
	}
}

func sameType[C any](a, b Node[C]) bool {
	return reflect.TypeOf(a) == reflect.TypeOf(b)
}

func typeName[C any](n Node[C]) string {
	return reflect.TypeOf(n).String()
}

// ancestryRootToLeaf walks n.Parent() to the top state and returns the
// chain root-first. Returns nil if n is nil.
func ancestryRootToLeaf[C any](n Node[C]) []Node[C] {
	if n == nil {
		return nil
	}
	var leafToRoot []Node[C]
	for cur := n; cur != nil; cur = cur.Parent() {
		leafToRoot = append(leafToRoot, cur)
	}
	for i, j := 0, len(leafToRoot)-1; i < j; i, j = i+1, j-1 {
		leafToRoot[i], leafToRoot[j] = leafToRoot[j], leafToRoot[i]
	}
	return leafToRoot
}

func commonPrefixLen[C any](a, b []Node[C]) int {
	n := 0
	for n < len(a) && n < len(b) && reflect.TypeOf(a[n]) == reflect.TypeOf(b[n]) {
		n++
	}
	return n
}
