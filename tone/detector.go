package tone

import (
	"math"

	"github.com/sm0svx/asynccore/pipe"
	"github.com/sm0svx/asynccore/reactor"
)

// SampleRate is the fixed input rate the Goertzel coefficients are derived
// against, matching the original detector's 8 kHz assumption.
const SampleRate = 8000.0

// DefaultThreshold is the magnitude-squared activation threshold in the
// integer-coded domain the original used.
const DefaultThreshold = 5_000_000.0

// releaseBlocks is the number of consecutive below-threshold blocks
// required before Detector reports deactivation — the hysteresis window.
const releaseBlocks = 3

// SampleScaling selects how a normalized float32 sample is mapped onto the
// value fed into the Goertzel recurrence. The design's open question notes
// that the original narrows a 16-bit sample to an unsigned 8-bit code
// before accumulating; it is unclear whether that was deliberate or a
// historical accident, so both behaviors are available here: NewDetector
// uses ScalePCM16To8Bit, and NewDetectorWithOptions takes either.
type SampleScaling int

const (
	// ScalePCM16To8Bit reproduces the original's
	// ((int)sample + 0x8000) >> 8 narrowing verbatim, including its
	// reduced dynamic range. This is what NewDetector uses.
	ScalePCM16To8Bit SampleScaling = iota
	// ScalePCM16 feeds the full signed 16-bit code into the recurrence
	// with no narrowing. A detector built with this scaling needs a
	// threshold rescaled to the wider dynamic range.
	ScalePCM16
)

func (s SampleScaling) apply(x float32) float64 {
	pcm := clampToPCM16(x)
	if s == ScalePCM16 {
		return float64(pcm)
	}
	return float64(uint8((int32(pcm) + 0x8000) >> 8))
}

func clampToPCM16(x float32) int32 {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}
	return int32(x * 32767.0)
}

// Detector is a Goertzel-based tone detector. It implements pipe.Sink: feed
// it sample frames with WriteSamples and it reports presence of its
// configured frequency through Activated and per-block magnitude through
// ValueChanged.
type Detector struct {
	toneHz   int
	blockLen int

	coeff, sine, cosine float64
	threshold           float64
	scaling             SampleScaling

	q1, q2      float64
	blockPos    int
	isActivated int // 0..releaseBlocks; acts as a release counter
	result      float64

	activated    reactor.Signal[bool]
	valueChanged reactor.Signal[float64]

	handle pipe.SourceHandle
}

// NewDetector builds a detector for toneHz using blocks of blockLen samples
// at the fixed SampleRate, with the original's threshold and 8-bit sample
// narrowing.
func NewDetector(toneHz, blockLen int) *Detector {
	return NewDetectorWithOptions(toneHz, blockLen, DefaultThreshold, ScalePCM16To8Bit)
}

// NewDetectorWithOptions is NewDetector with an explicit threshold and
// sample-scaling policy; see SampleScaling.
func NewDetectorWithOptions(toneHz, blockLen int, threshold float64, scaling SampleScaling) *Detector {
	floatN := float64(blockLen)
	k := (floatN * float64(toneHz)) / SampleRate
	omega := (2.0 * math.Pi * k) / floatN

	return &Detector{
		toneHz:    toneHz,
		blockLen:  blockLen,
		sine:      math.Sin(omega),
		cosine:    math.Cos(omega),
		coeff:     2.0 * math.Cos(omega),
		threshold: threshold,
		scaling:   scaling,
	}
}

// Activated is emitted only on transitions: true the first block a pending
// detection crosses threshold, false after releaseBlocks consecutive
// below-threshold blocks.
func (d *Detector) Activated() *reactor.Signal[bool] { return &d.activated }

// ValueChanged fires once per blockLen-sample block with the Goertzel
// magnitude squared, regardless of activation state.
func (d *Detector) ValueChanged() *reactor.Signal[float64] { return &d.valueChanged }

// IsActivated reports the detector's current activation state.
func (d *Detector) IsActivated() bool { return d.isActivated > 0 }

// Result returns the magnitude squared computed at the end of the most
// recently completed block.
func (d *Detector) Result() float64 { return d.result }

// SetHandle implements pipe.Sink.
func (d *Detector) SetHandle(h pipe.SourceHandle) { d.handle = h }

// FlushSamples implements pipe.Sink. The detector holds no samples across
// block boundaries that survive a flush, so it acknowledges immediately.
func (d *Detector) FlushSamples() {
	if d.handle != nil {
		d.handle.AllSamplesFlushed()
	}
}

// WriteSamples implements pipe.Sink. It never back-pressures: every sample
// offered is consumed and the full length is always reported accepted.
func (d *Detector) WriteSamples(samples []float32) int {
	for _, x := range samples {
		d.processSample(x)
		d.blockPos++
		if d.blockPos == d.blockLen {
			d.endBlock()
		}
	}
	return len(samples)
}

func (d *Detector) processSample(x float32) {
	u := d.scaling.apply(x)
	q0 := d.coeff*d.q1 - d.q2 + u
	d.q2 = d.q1
	d.q1 = q0
}

func (d *Detector) endBlock() {
	result := d.q1*d.q1 + d.q2*d.q2 - d.q1*d.q2*d.coeff
	d.result = result
	d.valueChanged.Emit(result)

	switch {
	case result >= d.threshold:
		if d.isActivated == 0 {
			d.activated.Emit(true)
		}
		d.isActivated = releaseBlocks
	case d.isActivated > 0:
		d.isActivated--
		if d.isActivated == 0 {
			d.activated.Emit(false)
		}
	}

	d.q1, d.q2 = 0, 0
	d.blockPos = 0
}
