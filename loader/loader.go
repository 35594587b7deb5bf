// SPDX-License-Identifier: EPL-2.0

package loader

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/ik5/padchop/control"
	"github.com/ik5/padchop/params"
	"github.com/ik5/padchop/sample"
	"github.com/ik5/padchop/slicing"
)

const (
	DefaultWorkers   = 1
	DefaultQueueSize = 8
)

// DecodeFunc turns a file path into a decoded sample.
type DecodeFunc func(path string) (*sample.Sample, error)

type Config struct {
	Shared *control.State
	Params *params.Params
	Decode DecodeFunc

	// Workers is the number of concurrent jobs, DefaultWorkers when <= 0.
	Workers int
	// QueueSize bounds pending load requests, DefaultQueueSize when <= 0.
	QueueSize int
	// MaxPads limits the slice count, slicing.MaxRegions when <= 0.
	MaxPads int

	Logger *slog.Logger
}

// Loader decodes samples and computes slices away from the audio thread,
// publishing every result into the shared control state.
type Loader struct {
	shared *control.State
	params *params.Params
	decode DecodeFunc

	workers int
	maxPads int
	log     *slog.Logger

	loads   chan string
	reslice chan struct{}
	group   singleflight.Group
}

func New(cfg Config) (*Loader, error) {
	if cfg.Shared == nil || cfg.Params == nil || cfg.Decode == nil {
		return nil, ErrMissingDeps
	}

	l := &Loader{
		shared:  cfg.Shared,
		params:  cfg.Params,
		decode:  cfg.Decode,
		workers: cfg.Workers,
		maxPads: cfg.MaxPads,
		log:     cfg.Logger,
		reslice: make(chan struct{}, 1),
	}

	if l.workers <= 0 {
		l.workers = DefaultWorkers
	}
	if l.maxPads <= 0 || l.maxPads > slicing.MaxRegions {
		l.maxPads = slicing.MaxRegions
	}
	if l.log == nil {
		l.log = slog.Default()
	}

	queue := cfg.QueueSize
	if queue <= 0 {
		queue = DefaultQueueSize
	}
	l.loads = make(chan string, queue)

	return l, nil
}

// Run processes jobs until ctx is done. Jobs already running finish first.
func (l *Loader) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	for id := range l.workers {
		g.Go(func() error {
			l.worker(ctx, id)
			return nil
		})
	}

	return g.Wait()
}

// Load queues path for decoding. The path is remembered in the params and
// the shared state shows a load in progress until every queued job has
// published. A rejected request settles its own pending mark right away.
func (l *Loader) Load(path string) error {
	if path == "" {
		return ErrEmptyPath
	}

	l.params.SetSamplePath(path)
	l.shared.BeginLoad()

	select {
	case l.loads <- path:
		l.log.Debug("sample load queued", "path", path)
		return nil
	default:
		l.shared.PublishError(ErrQueueFull)
		l.log.Warn("sample load dropped", "path", path, "err", ErrQueueFull)
		return ErrQueueFull
	}
}

// Reslice asks for the slices of the current sample to be recomputed with
// the current params. It never blocks and requests made while one is already
// pending are merged, so it is safe to call from the audio thread.
func (l *Loader) Reslice() {
	select {
	case l.reslice <- struct{}{}:
	default:
	}
}

func (l *Loader) worker(ctx context.Context, id int) {
	log := l.log.With("worker", id)
	log.Debug("loader worker started")

	for {
		select {
		case <-ctx.Done():
			log.Debug("loader worker stopped", "err", ctx.Err())
			return
		case path := <-l.loads:
			l.load(log, path)
		case <-l.reslice:
			l.resliceCurrent(log)
		}
	}
}

func (l *Loader) load(log *slog.Logger, path string) {
	start := time.Now()

	v, err, shared := l.group.Do(path, func() (any, error) {
		return l.decode(path)
	})
	if err != nil {
		var de *sample.DecodeError
		if !errors.As(err, &de) {
			err = &sample.DecodeError{Path: path, Err: err}
		}

		log.Error("sample load failed", "path", path, "err", err)
		l.shared.PublishError(err)
		return
	}

	smp, ok := v.(*sample.Sample)
	if !ok || smp == nil {
		err = &sample.DecodeError{Path: path, Err: ErrNoSample}
		log.Error("sample load failed", "path", path, "err", err)
		l.shared.PublishError(err)
		return
	}

	slices := l.computeSlices(smp)
	l.shared.PublishLoad(path, smp, slices)

	log.Info("sample loaded",
		"path", path,
		"frames", smp.Frames,
		"rate", smp.SampleRate,
		"stereo", smp.Stereo,
		"pads", len(slices),
		"shared_decode", shared,
		"elapsed", time.Since(start),
	)
}

func (l *Loader) resliceCurrent(log *slog.Logger) {
	smp, gen := l.shared.Sample()
	if smp == nil {
		log.Debug("reslice skipped, no sample loaded")
		return
	}

	slices := l.computeSlices(smp)
	if !l.shared.PublishSlices(gen, slices) {
		log.Debug("reslice discarded, sample replaced", "generation", gen)
		return
	}

	log.Debug("resliced",
		"algorithm", l.params.Algorithm(),
		"bpm", l.params.BPM(),
		"speed", l.params.Speed(),
		"pads", len(slices),
	)
}

func (l *Loader) computeSlices(smp *sample.Sample) slicing.Slices {
	return slicing.Compute(smp, l.params.BPM(), l.params.Algorithm(), l.maxPads, l.params.Speed())
}
