package adapter

import (
	"errors"

	"github.com/sm0svx/asynccore/reactor"
)

// ErrEndpointClosed is returned by Write when the endpoint is not open.
var ErrEndpointClosed = errors.New("adapter: endpoint closed")

// PTYEndpoint is the byte-stream boundary described for PTY-like devices:
// open/close/reopen lifecycle, a blocking-free Write, and a signal fired
// with whatever bytes arrive. Real PTY access is an external collaborator;
// this module supplies only the interface and a stub suitable for tests.
type PTYEndpoint interface {
	Open() bool
	Close()
	Reopen() bool
	Write(buf []byte) (int, error)
	DataReceived() *reactor.Signal[[]byte]
}

// DiscardPTY is a PTYEndpoint stub that discards everything written to it
// and never emits DataReceived. It satisfies the interface for tests and
// for demo wiring where no real PTY device is available.
type DiscardPTY struct {
	open         bool
	dataReceived reactor.Signal[[]byte]
}

// NewDiscardPTY returns an unopened DiscardPTY.
func NewDiscardPTY() *DiscardPTY {
	return &DiscardPTY{}
}

func (p *DiscardPTY) Open() bool {
	p.open = true
	return true
}

func (p *DiscardPTY) Close() {
	p.open = false
}

func (p *DiscardPTY) Reopen() bool {
	p.Close()
	return p.Open()
}

func (p *DiscardPTY) Write(buf []byte) (int, error) {
	if !p.open {
		return 0, ErrEndpointClosed
	}
	return len(buf), nil
}

func (p *DiscardPTY) DataReceived() *reactor.Signal[[]byte] {
	return &p.dataReceived
}

// Inject simulates data arriving on the endpoint, for tests that need to
// drive DataReceived without a real PTY.
func (p *DiscardPTY) Inject(data []byte) {
	p.dataReceived.Emit(data)
}
