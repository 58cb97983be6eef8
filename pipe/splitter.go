package pipe

import (
	"io"

	"github.com/sm0svx/asynccore/reactor"
)

// AudioSplitter fans one upstream sample stream out to any number of
// downstream sinks, absorbing each sink's back-pressure independently so a
// slow branch never stalls the others. It is itself a Sink from its
// upstream's point of view (see WriteSamples/FlushSamples/SetHandle) and a
// Source towards its branches (see AddSink and friends).
type AudioSplitter struct {
	branches []*branch

	buf    []float32
	bufLen int

	doFlush         bool
	flushDispatched bool
	flushedBranches int

	inputStopped bool

	upstream SourceHandle
	reactor  *reactor.Reactor
	cleanup  *reactor.Timer
}

// NewAudioSplitter creates an empty splitter. r is used only to arm the
// zero-delay cleanup timer branch removal needs during a write or flush in
// progress; it is never required to run on its own goroutine relative to
// the splitter — the splitter has no locking and assumes single-threaded,
// cooperative use like the rest of this package.
func NewAudioSplitter(r *reactor.Reactor) *AudioSplitter {
	return &AudioSplitter{reactor: r}
}

// SetHandle binds the handle used to signal this splitter's own upstream
// source. Splitters are normally attached to an upstream via that
// upstream's AddSink, which calls this for you.
func (s *AudioSplitter) SetHandle(h SourceHandle) {
	s.upstream = h
}

// AddSink attaches sink as a new branch. The branch's initial cursor is set
// to the splitter's current buffered length so samples already buffered
// for existing branches are not replayed to the newly attached one.
func (s *AudioSplitter) AddSink(sink Sink, managed bool) {
	b := &branch{
		sink:     sink,
		managed:  managed,
		enabled:  true,
		cursor:   s.bufLen,
		splitter: s,
	}
	sink.SetHandle(handle{b})
	s.branches = append(s.branches, b)
}

// RemoveSink detaches sink. If the splitter is idle the branch is deleted
// immediately; if a write or flush is in progress, deletion is deferred to
// a zero-delay timer that fires once the current cycle completes.
// Removing a sink that was never attached is a programming error.
func (s *AudioSplitter) RemoveSink(sink Sink) {
	b := s.findBranch(sink)
	if b == nil {
		panic("pipe: RemoveSink called with a sink that is not attached")
	}
	s.removeBranch(b)
}

// RemoveAllSinks detaches every branch, following the same immediate-or-
// deferred rule as RemoveSink.
func (s *AudioSplitter) RemoveAllSinks() {
	for _, b := range s.branches {
		s.removeBranch(b)
	}
}

// EnableSink toggles whether an attached sink currently receives samples.
// Re-enabling a branch advances its cursor to the current buffer length so
// history is never replayed.
func (s *AudioSplitter) EnableSink(sink Sink, enable bool) {
	b := s.findBranch(sink)
	if b == nil {
		return
	}
	if enable && !b.enabled {
		b.cursor = s.bufLen
		b.pendingResume = false
	}
	b.enabled = enable
	if enable && s.inputStopped && s.allCaughtUp() {
		s.compact()
	}
	s.finishFlushIfDone()
}

// WriteSamples implements Sink for the splitter's upstream side: it
// buffers samples and immediately tries to drain them to every enabled
// branch, reporting back only what the slowest branch has absorbed.
func (s *AudioSplitter) WriteSamples(samples []float32) int {
	before := s.minCursor()
	s.buf = append(s.buf[:s.bufLen], samples...)
	s.bufLen += len(samples)
	s.writeFromBuffer()
	return s.minCursor() - before
}

// FlushSamples implements Sink for the splitter's upstream side. If a
// write is currently back-pressured the flush is recorded and dispatched
// once the buffer drains; otherwise it propagates immediately.
func (s *AudioSplitter) FlushSamples() {
	s.doFlush = true
	s.flushDispatched = false
	if !s.inputStopped {
		s.flushAllBranches()
	}
}

func (s *AudioSplitter) writeFromBuffer() {
	anyShort := false
	for _, b := range s.branches {
		if !b.enabled || b.cursor >= s.bufLen {
			continue
		}
		n := b.sink.WriteSamples(s.buf[b.cursor:s.bufLen])
		b.cursor += n
		if b.cursor < s.bufLen {
			anyShort = true
			b.pendingResume = true
		} else {
			b.pendingResume = false
		}
	}
	s.inputStopped = anyShort

	if s.allCaughtUp() {
		s.compact()
	}
}

// branchResumeOutput is called by a single branch when it becomes ready to
// receive again. Only that branch is re-driven; upstream is not woken
// until every branch has caught up.
func (s *AudioSplitter) branchResumeOutput(b *branch) {
	if !b.enabled {
		return
	}
	if b.cursor < s.bufLen {
		n := b.sink.WriteSamples(s.buf[b.cursor:s.bufLen])
		b.cursor += n
	}
	if b.cursor < s.bufLen {
		b.pendingResume = true
		return
	}
	b.pendingResume = false
	if s.allCaughtUp() {
		s.compact()
	}
}

func (s *AudioSplitter) branchAllSamplesFlushed(b *branch) {
	if !b.flushed {
		b.flushed = true
		s.flushedBranches++
	}
	s.finishFlushIfDone()
}

func (s *AudioSplitter) allCaughtUp() bool {
	for _, b := range s.branches {
		if b.enabled && b.cursor < s.bufLen {
			return false
		}
	}
	return true
}

// minCursor is how many leading samples of the current buffer every
// enabled branch has already accepted — i.e. what the splitter may safely
// report as absorbed to its own upstream.
func (s *AudioSplitter) minCursor() int {
	min := s.bufLen
	any := false
	for _, b := range s.branches {
		if !b.enabled {
			continue
		}
		any = true
		if b.cursor < min {
			min = b.cursor
		}
	}
	if !any {
		return s.bufLen
	}
	return min
}

// compact empties the shared buffer once every branch has caught up,
// resuming upstream exactly once if it had previously been stopped, then
// dispatches a flush that was waiting on the buffer draining. Deferred
// branch removal is left to the cleanup timer.
func (s *AudioSplitter) compact() {
	wasStopped := s.inputStopped
	s.bufLen = 0
	s.buf = s.buf[:0]
	for _, b := range s.branches {
		b.cursor = 0
	}
	s.inputStopped = false

	if wasStopped && s.upstream != nil {
		s.upstream.ResumeOutput()
	}
	if s.doFlush && !s.flushDispatched {
		s.flushAllBranches()
	}
}

func (s *AudioSplitter) flushAllBranches() {
	s.flushDispatched = true
	s.flushedBranches = 0
	for _, b := range s.branches {
		if !b.enabled {
			continue
		}
		b.flushed = false
		b.sink.FlushSamples()
	}
	s.finishFlushIfDone()
}

// finishFlushIfDone recomputes the expected flushed-branch count against
// the live branch set on every call rather than trusting a count snapshot
// taken when the flush started — a branch removed mid-flush is only
// excluded once cleanupBranches has actually deleted it.
func (s *AudioSplitter) finishFlushIfDone() {
	if !s.doFlush {
		return
	}
	expected := 0
	for _, b := range s.branches {
		if b.enabled {
			expected++
		}
	}
	if s.flushedBranches < expected {
		return
	}
	s.doFlush = false
	s.flushDispatched = false
	s.flushedBranches = 0
	if s.upstream != nil {
		s.upstream.AllSamplesFlushed()
	}
}

func (s *AudioSplitter) findBranch(sink Sink) *branch {
	for _, b := range s.branches {
		if b.sink == sink {
			return b
		}
	}
	return nil
}

// busy reports whether a write or flush cycle is currently outstanding,
// i.e. whether branch removal must be deferred rather than applied
// immediately.
func (s *AudioSplitter) busy() bool {
	return s.inputStopped || s.doFlush
}

func (s *AudioSplitter) removeBranch(b *branch) {
	if s.busy() {
		b.markedForRemoval = true
		s.armCleanup()
		return
	}
	s.deleteBranchNow(b)
}

func (s *AudioSplitter) deleteBranchNow(b *branch) {
	for i, other := range s.branches {
		if other == b {
			s.branches = append(s.branches[:i], s.branches[i+1:]...)
			break
		}
	}
	if b.managed {
		if c, ok := b.sink.(io.Closer); ok {
			_ = c.Close()
		}
	}
	s.finishFlushIfDone()
	if s.inputStopped && s.allCaughtUp() {
		s.compact()
	}
}

// armCleanup schedules the deferred-removal sweep on a zero-delay timer.
// Repeated removals while a sweep is already pending coalesce onto the
// same timer instead of stacking up more callbacks.
func (s *AudioSplitter) armCleanup() {
	if s.cleanup == nil {
		s.cleanup = reactor.NewTimer(0, false)
		s.reactor.AddTimer(s.cleanup)
		s.cleanup.Expired().Connect(func(*reactor.Timer) {
			s.cleanupBranches()
		})
	}
	s.cleanup.SetEnable(true)
}

func (s *AudioSplitter) cleanupBranches() {
	kept := s.branches[:0]
	for _, b := range s.branches {
		if !b.markedForRemoval {
			kept = append(kept, b)
			continue
		}
		if b.managed {
			if c, ok := b.sink.(io.Closer); ok {
				_ = c.Close()
			}
		}
	}
	s.branches = kept
	s.finishFlushIfDone()
	if s.inputStopped && s.allCaughtUp() {
		s.compact()
	}
}
