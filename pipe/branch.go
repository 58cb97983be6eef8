package pipe

// branch is one AudioSplitter downstream connection: a sink reference plus
// the bookkeeping needed to absorb that sink's back-pressure independently
// of every other branch.
type branch struct {
	sink    Sink
	managed bool

	enabled bool
	flushed bool

	pendingResume bool // a short write is outstanding; waiting on ResumeOutput
	cursor        int  // how far into the splitter's shared buffer this branch has written

	markedForRemoval bool

	splitter *AudioSplitter
}

// handle is the SourceHandle a branch's sink calls back on. It exists
// separately from *branch so that a removed-and-cleaned-up branch's stale
// sink can still resolve the branch it belongs to without a dangling
// pointer into the splitter's branch slice.
type handle struct {
	b *branch
}

func (h handle) ResumeOutput() {
	h.b.splitter.branchResumeOutput(h.b)
}

func (h handle) AllSamplesFlushed() {
	h.b.splitter.branchAllSamplesFlushed(h.b)
}
