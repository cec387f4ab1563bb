package sim

import "math"

const (
	// InfiniteSteps marks a run without a step target.
	InfiniteSteps uint64 = math.MaxUint64

	// SmoothingConstant is k in the step time low-pass filter
	// dtSmooth = (dt + k) / (k/dtSmooth + 1).
	SmoothingConstant = 0.3

	// InitialStepTime seeds the smoothed step time before the first sample.
	InitialStepTime = 1.0
)

// Tracker observes wall-clock progress of a running simulation.
//
// Lifecycle: NewTracker (idle) -> Append (segment running) -> Update per sample.
// Append again to chain another segment; cumulative runtime is kept across segments.
//
// Thread-safety: NOT thread-safe. Callers sharing a Tracker between the step loop
// and a display goroutine must synchronise (see monitor.Monitor).
type Tracker struct {
	steps       uint64  // target steps of the current segment, InfiniteSteps if unbounded
	stepsLast   uint64  // global step count when the segment started
	runtime     float64 // cumulative runtime in seconds
	runtimeLast float64 // runtime when the segment started
	dt          float64 // last exact sample
	dtSmooth    float64 // smoothed seconds per step
	samples     int64
}

// NewTracker creates an idle tracker with an unbounded target.
func NewTracker() *Tracker {
	return &Tracker{
		steps:    InfiniteSteps,
		dtSmooth: InitialStepTime,
	}
}

// Append starts a new run segment. It must be called before the segment's first
// Update and before any progress of the segment is displayed.
func (t *Tracker) Append(targetSteps, stepAtSegmentStart uint64) {
	t.steps = targetSteps
	t.stepsLast = stepAtSegmentStart
	t.runtimeLast = t.runtime
}

// Update records dt seconds of wall-clock time since the previous sample.
// Negative samples are treated as 0 so runtime never decreases.
func (t *Tracker) Update(dt float64) {
	if dt < 0 || math.IsNaN(dt) {
		dt = 0
	}
	t.dt = dt
	t.dtSmooth = (dt + SmoothingConstant) / (SmoothingConstant/t.dtSmooth + 1.0)
	t.runtime += dt
	t.samples++
}

// Infinite reports whether the current segment has no step target.
func (t *Tracker) Infinite() bool {
	return t.steps == InfiniteSteps
}

// TargetSteps returns the step target of the current segment.
func (t *Tracker) TargetSteps() uint64 { return t.steps }

// SegmentStart returns the global step count at the last Append.
func (t *Tracker) SegmentStart() uint64 { return t.stepsLast }

// Runtime returns cumulative runtime in seconds.
func (t *Tracker) Runtime() float64 { return t.runtime }

// SegmentRuntime returns the runtime since the last Append.
func (t *Tracker) SegmentRuntime() float64 { return t.runtime - t.runtimeLast }

// StepTime returns the last exact sample.
func (t *Tracker) StepTime() float64 { return t.dt }

// SmoothedStepTime returns the low-pass filtered seconds per step.
func (t *Tracker) SmoothedStepTime() float64 { return t.dtSmooth }

// stepsDone returns the steps completed in the current segment; false if none.
func (t *Tracker) stepsDone(currentStep uint64) (uint64, bool) {
	if currentStep <= t.stepsLast {
		return 0, false
	}
	return currentStep - t.stepsLast, true
}

// EstimateTime returns elapsed runtime for unbounded runs, otherwise the remaining
// time of the segment extrapolated from the average rate observed so far.
// ok is false while no step of the segment has completed.
func (t *Tracker) EstimateTime(currentStep uint64) (seconds float64, ok bool) {
	if t.Infinite() {
		return t.runtime, true
	}
	done, ok := t.stepsDone(currentStep)
	if !ok {
		return 0, false
	}
	return (float64(t.steps)/float64(done) - 1.0) * t.SegmentRuntime(), true
}

// EstimateTimeInstantaneous extrapolates the remaining time from the smoothed
// step time instead of the segment average. Reacts faster, but is noisier.
func (t *Tracker) EstimateTimeInstantaneous(currentStep uint64) (seconds float64, ok bool) {
	if t.Infinite() {
		return t.runtime, true
	}
	if t.samples == 0 {
		return 0, false
	}
	done, _ := t.stepsDone(currentStep)
	return (float64(t.steps) - float64(done)) * t.dtSmooth, true
}

// Completed returns the completed fraction of a bounded segment.
func (t *Tracker) Completed(currentStep uint64) (fraction float64, ok bool) {
	if t.Infinite() || t.steps == 0 {
		return 0, false
	}
	done, _ := t.stepsDone(currentStep)
	return float64(done) / float64(t.steps), true
}

// Progress is a point-in-time copy of tracker state, safe to hand to renderers.
type Progress struct {
	CurrentStep      uint64
	TargetSteps      uint64
	SegmentStart     uint64
	Runtime          float64
	SegmentRuntime   float64
	StepTime         float64
	SmoothedStepTime float64
	Time             float64 // elapsed (unbounded) or remaining (bounded) seconds
	TimeKnown        bool
	Fraction         float64 // completed fraction of a bounded segment
}

// Infinite reports whether the snapshot belongs to an unbounded segment.
func (p Progress) Infinite() bool {
	return p.TargetSteps == InfiniteSteps
}

// Snapshot captures the tracker state at the given global step count.
func (t *Tracker) Snapshot(currentStep uint64) Progress {
	p := Progress{
		CurrentStep:      currentStep,
		TargetSteps:      t.steps,
		SegmentStart:     t.stepsLast,
		Runtime:          t.runtime,
		SegmentRuntime:   t.SegmentRuntime(),
		StepTime:         t.dt,
		SmoothedStepTime: t.dtSmooth,
	}
	p.Time, p.TimeKnown = t.EstimateTime(currentStep)
	p.Fraction, _ = t.Completed(currentStep)
	return p
}
