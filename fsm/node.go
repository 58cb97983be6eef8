package fsm

// Node is implemented by every state in a Machine[C]'s hierarchy. States
// are treated as lightweight, stateless markers: all machine-lifetime data
// belongs in C, not in the Node value itself, since ancestor Entry/Exit
// handlers are invoked on freshly constructed instances of ancestor types,
// not on some persistent per-level object.
type Node[C any] interface {
	// Parent returns a zero-value instance of the immediately enclosing
	// state, or nil if this is the top state. Every concrete state other
	// than the top must override this explicitly; it cannot be derived
	// automatically since Go has no notion of inheritance between
	// unrelated named types.
	Parent() Node[C]

	// Init runs exactly once on a state that is about to become active,
	// before Exit/Entry are invoked for anything. It is the only place a
	// state may call Machine.SetState to redirect to a substate.
	Init(m *Machine[C])

	// Entry runs once this state (and, on a multi-level transition, each
	// ancestor strictly below the common ancestor) has become active.
	Entry(m *Machine[C])

	// Exit runs once this state (and, on a multi-level transition, each
	// ancestor strictly below the common ancestor) is about to become
	// inactive.
	Exit(m *Machine[C])

	// TimeoutEvent handles the machine's single-shot timeout. The default
	// from Base panics; a state that arms SetTimeout must override it.
	TimeoutEvent(m *Machine[C])
}

// Base supplies no-op Init/Entry/Exit, a top-level Parent, and a
// TimeoutEvent that panics, analogous to an unhandled-assert in a debug
// build. Embed it in every state type and override only what that state
// actually needs.
type Base[C any] struct{}

func (Base[C]) Parent() Node[C]          { return nil }
func (Base[C]) Init(*Machine[C])         {}
func (Base[C]) Entry(*Machine[C])        {}
func (Base[C]) Exit(*Machine[C])         {}
func (Base[C]) TimeoutEvent(*Machine[C]) { panic("fsm: unhandled timeout event") }
