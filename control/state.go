// SPDX-License-Identifier: EPL-2.0

package control

import (
	"sync"

	"github.com/ik5/padchop/sample"
	"github.com/ik5/padchop/slicing"
)

// MaxPendingEvents bounds the UI pad event queue.
const MaxPendingEvents = 1024

// State is the single point of contact between the control surface, the
// loader and the audio thread.
//
// Control surface and loader calls may block on the lock for a short, bounded
// time. The Try* methods are for the audio thread: they never wait, and report
// false when the lock is busy so the caller can retry on the next block.
type State struct {
	mtx sync.RWMutex

	smp       *sample.Sample
	slices    slicing.Slices
	sampleGen uint64
	slicesGen uint64

	path    string
	loads   int // begun loads not yet published
	lastErr string

	reslice bool
	pending []PadEvent

	visuals   []bool
	visualGen uint64
}

// New returns an empty State.
func New() *State {
	return &State{
		pending: make([]PadEvent, 0, MaxPendingEvents),
		visuals: make([]bool, 0, slicing.MaxRegions),
	}
}

// BeginLoad marks a load as in progress and clears the last error. Each
// BeginLoad is settled by one PublishLoad or PublishError; the state reports
// loading until all of them are.
func (s *State) BeginLoad() {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.loads++
	s.lastErr = ""
}

// EnqueuePadEvent queues a UI trigger for the next audio block.
// It returns false when the queue is full and the event was dropped.
func (s *State) EnqueuePadEvent(ev PadEvent) bool {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if len(s.pending) >= MaxPendingEvents {
		return false
	}

	s.pending = append(s.pending, ev)
	return true
}

// RequestReslice asks the audio thread to have the slices recomputed.
func (s *State) RequestReslice() {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.reslice = true
}

// Status returns what the control surface displays.
func (s *State) Status() Status {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	return s.statusLocked()
}

// Snapshot returns the status together with the current sample and slices.
// The returned values are shared and must not be modified.
func (s *State) Snapshot() Snapshot {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	return Snapshot{
		Status: s.statusLocked(),
		Sample: s.smp,
		Slices: s.slices,
	}
}

// PadVisuals appends the per-pad sounding flags to dst[:0] and returns them
// with their generation.
func (s *State) PadVisuals(dst []bool) ([]bool, uint64) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	return append(dst[:0], s.visuals...), s.visualGen
}

// Sample returns the current sample and its generation.
func (s *State) Sample() (*sample.Sample, uint64) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	return s.smp, s.sampleGen
}

// PublishLoad installs a freshly loaded sample with its initial slices in a
// single update. Readers never see the sample without these slices.
func (s *State) PublishLoad(path string, smp *sample.Sample, slices slicing.Slices) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.smp = smp
	s.slices = slices
	s.sampleGen = nextGen(s.sampleGen)
	s.slicesGen = nextGen(s.slicesGen)

	s.path = path
	s.settleLoadLocked()
	s.lastErr = ""
	s.reslice = false

	s.visuals = resizeFlags(s.visuals, len(slices))
	clear(s.visuals)
	s.visualGen = nextGen(s.visualGen)
}

// PublishError records a failed load. The loaded sample is left alone.
func (s *State) PublishError(err error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.settleLoadLocked()
	if err != nil {
		s.lastErr = err.Error()
	}
}

// PublishSlices replaces the slices computed for the sample of generation
// sampleGen. It reports false, leaving the state unchanged, when another
// sample has been published since.
func (s *State) PublishSlices(sampleGen uint64, slices slicing.Slices) bool {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.smp == nil || sampleGen != s.sampleGen {
		return false
	}

	s.slices = slices
	s.slicesGen = nextGen(s.slicesGen)

	if len(s.visuals) != len(slices) {
		s.visuals = resizeFlags(s.visuals, len(slices))
		s.visualGen = nextGen(s.visualGen)
	}

	return true
}

// TryReconcile compares seen with the current generations and returns what
// changed, updating seen. ok is false when the lock was busy.
func (s *State) TryReconcile(seen *Seen) (u Update, ok bool) {
	if !s.mtx.TryRLock() {
		return Update{}, false
	}
	defer s.mtx.RUnlock()

	u.HasSample = s.smp != nil
	if s.sampleGen != seen.SampleGen {
		seen.SampleGen = s.sampleGen
		u.Sample = s.smp
		u.SampleChanged = true
	}
	if s.slicesGen != seen.SlicesGen {
		seen.SlicesGen = s.slicesGen
		u.Slices = s.slices
		u.SlicesChanged = true
	}

	return u, true
}

// TryTakePending moves the queued pad events into dst[:0] and clears the
// re-slice request. dst should have MaxPendingEvents capacity to avoid
// allocating. ok is false when the lock was busy; nothing is taken then.
func (s *State) TryTakePending(dst []PadEvent) (events []PadEvent, reslice, ok bool) {
	if !s.mtx.TryLock() {
		return dst[:0], false, false
	}
	defer s.mtx.Unlock()

	events = append(dst[:0], s.pending...)
	s.pending = s.pending[:0]

	reslice = s.reslice
	s.reslice = false

	return events, reslice, true
}

// TrySetPadVisuals publishes the per-pad sounding flags, bumping the visual
// generation when they changed. It reports false when the lock was busy.
func (s *State) TrySetPadVisuals(flags []bool) bool {
	if !s.mtx.TryLock() {
		return false
	}
	defer s.mtx.Unlock()

	if equalFlags(s.visuals, flags) {
		return true
	}

	s.visuals = resizeFlags(s.visuals, len(flags))
	copy(s.visuals, flags)
	s.visualGen = nextGen(s.visualGen)

	return true
}

func (s *State) statusLocked() Status {
	st := Status{
		Path:      s.path,
		Loading:   s.loads > 0,
		Err:       s.lastErr,
		SampleGen: s.sampleGen,
		SlicesGen: s.slicesGen,
		Pads:      len(s.slices),
	}
	if s.smp != nil {
		st.Frames = s.smp.Frames
		st.SampleRate = s.smp.SampleRate
		st.Stereo = s.smp.Stereo
	}

	return st
}

func (s *State) settleLoadLocked() {
	if s.loads > 0 {
		s.loads--
	}
}

// nextGen increments a generation counter. After wrapping it skips 0, which
// consumers use for "nothing seen yet".
func nextGen(g uint64) uint64 {
	return max(g+1, 1)
}

func resizeFlags(flags []bool, n int) []bool {
	if n <= cap(flags) {
		old := len(flags)
		flags = flags[:n]
		if n > old {
			clear(flags[old:])
		}
		return flags
	}

	grown := make([]bool, n)
	copy(grown, flags)
	return grown
}

func equalFlags(a, b []bool) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
