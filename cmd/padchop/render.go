// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/gopxl/beep/v2"

	"github.com/ik5/padchop"
	"github.com/ik5/padchop/control"
	"github.com/ik5/padchop/engine"
	"github.com/ik5/padchop/formats/wav"
	"github.com/ik5/padchop/output"
	"github.com/ik5/padchop/params"
	"github.com/ik5/padchop/sample"
	"github.com/ik5/padchop/slicing"
	"github.com/ik5/padchop/utils"
)

const streamChunk = 512 // frames per beep Stream call

type renderOptions struct {
	rate        int
	pads        int // 0 plays every pad
	gap         time.Duration
	blockFrames int
}

func runRender(args []string, stdout, stderr io.Writer) error {
	var c controls
	fs := newFlagSet("render", stderr, &c)
	out := fs.String("o", "render.wav", "output WAV file")
	opts := renderOptions{}
	fs.IntVar(&opts.rate, "rate", 44100, "output sample rate in Hz")
	fs.IntVar(&opts.pads, "pads", 0, "number of pads to play, 0 for all")
	fs.DurationVar(&opts.gap, "gap", 250*time.Millisecond, "silence after each pad")
	fs.IntVar(&opts.blockFrames, "block", output.DefaultBlockFrames, "frames rendered per block")
	if err := fs.Parse(args); err != nil {
		return err
	}
	initLogger(stderr, c.debug)

	p := params.New()
	fromPreset, err := c.apply(fs, p)
	if err != nil {
		return err
	}
	path, err := samplePath(fs, fromPreset)
	if err != nil {
		return err
	}
	if opts.rate <= 0 {
		return fmt.Errorf("%w: sample rate %d", errUsage, opts.rate)
	}

	smp, err := padchop.DecodeFile(padchop.NewRegistry(), path)
	if err != nil {
		return err
	}
	regions := slicing.Compute(smp, p.BPM(), p.Algorithm(), slicing.MaxRegions, p.Speed())

	pcm, err := renderPads(path, smp, regions, p, opts)
	if err != nil {
		return err
	}

	f, err := os.Create(*out)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	if err := wav.WriteWAV16(f, opts.rate, 2, pcm); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing output: %w", err)
	}

	logger.Info("render written", "path", *out, "frames", len(pcm)/2, "slices", len(regions))
	fmt.Fprintf(stdout, "%s: %d slices, %s\n", *out, len(regions),
		time.Duration(float64(len(pcm)/2)/float64(opts.rate)*float64(time.Second)).Round(time.Millisecond))

	return nil
}

// renderPads triggers the pads one after another through an Instrument and
// returns the interleaved stereo result. Each pad is held for the length of
// its slice at the current playback rate and then released.
func renderPads(path string, smp *sample.Sample, regions slicing.Slices, p *params.Params, opts renderOptions) ([]int16, error) {
	shared := control.New()
	shared.PublishLoad(path, smp, regions)

	inst, err := engine.New(engine.Config{
		Shared:     shared,
		Params:     p,
		SampleRate: float64(opts.rate),
	})
	if err != nil {
		return nil, err
	}

	count := len(regions)
	if opts.pads > 0 {
		count = min(count, opts.pads)
	}

	r := &pcmRecorder{
		streamer: output.NewStreamer(inst, opts.blockFrames),
		buf:      make([][2]float64, streamChunk),
		left:     make([]float32, streamChunk),
		right:    make([]float32, streamChunk),
	}

	ratio := float64(opts.rate) / (smp.SampleRate * p.PlaybackRate())
	gapFrames := int(opts.gap.Seconds() * float64(opts.rate))

	for pad := range count {
		note := p.StartingNote() + pad
		frames := int(math.Ceil(float64(regions[pad].Len()) * ratio))

		inst.SendNote(engine.NoteEvent{On: true, Note: note, Velocity: 1})
		r.record(frames)
		inst.SendNote(engine.NoteEvent{Note: note})
		r.record(gapFrames)
	}

	return r.pcm, nil
}

type pcmRecorder struct {
	streamer beep.Streamer
	buf      [][2]float64
	left     []float32
	right    []float32
	pcm      []int16
}

func (r *pcmRecorder) record(frames int) {
	if frames <= 0 {
		return
	}

	take := beep.Take(frames, r.streamer)
	for {
		n, ok := take.Stream(r.buf)
		for i := range n {
			r.left[i] = float32(r.buf[i][0])
			r.right[i] = float32(r.buf[i][1])
		}
		r.pcm = utils.InterleaveInt16(r.pcm, r.left[:n], r.right[:n])

		if !ok {
			return
		}
	}
}
