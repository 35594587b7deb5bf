// SPDX-License-Identifier: EPL-2.0

//go:build !headless

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ebitengine/oto/v3"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/ik5/padchop"
	"github.com/ik5/padchop/control"
	"github.com/ik5/padchop/engine"
	"github.com/ik5/padchop/loader"
	"github.com/ik5/padchop/midiin"
	"github.com/ik5/padchop/output"
	"github.com/ik5/padchop/params"
	"github.com/ik5/padchop/preset"
	"github.com/ik5/padchop/sample"
)

func runPlay(args []string, stdout, stderr io.Writer) error {
	var c controls
	fs := newFlagSet("play", stderr, &c)
	rate := fs.Int("rate", 48000, "output sample rate in Hz")
	block := fs.Int("block", output.DefaultBlockFrames, "frames rendered per block")
	latency := fs.Duration("latency", 20*time.Millisecond, "audio device buffer length")
	midiName := fs.String("midi", "", "use the first MIDI input whose name contains this, empty for the first input")
	noMIDI := fs.Bool("nomidi", false, "disable MIDI input")
	save := fs.String("save", "", "write the controls to a preset file on exit")
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

	shared := control.New()
	reg := padchop.NewRegistry()

	ld, err := loader.New(loader.Config{
		Shared: shared,
		Params: p,
		Decode: func(path string) (*sample.Sample, error) { return padchop.DecodeFile(reg, path) },
		Logger: logger,
	})
	if err != nil {
		return err
	}

	inst, err := engine.New(engine.Config{
		Shared:     shared,
		Params:     p,
		Reslicer:   ld,
		SampleRate: float64(*rate),
	})
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return ld.Run(gctx) })

	if err := ld.Load(path); err != nil {
		cancel()
		return errors.Join(err, g.Wait())
	}

	otoCtx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   *rate,
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
		BufferSize:   *latency,
	})
	if err != nil {
		cancel()
		return errors.Join(fmt.Errorf("opening audio device: %w", err), g.Wait())
	}
	<-ready

	player := otoCtx.NewPlayer(output.NewStream(inst, *block))
	player.Play()
	defer player.Close()

	if !*noMIDI {
		stopMIDI, err := openMIDI(*midiName, inst)
		if err != nil {
			logger.Warn("MIDI input unavailable", "err", err)
		} else {
			defer stopMIDI()
		}
	}

	logger.Info("playing", "sample", path, "rate", *rate, "block", *block)
	fmt.Fprintln(stdout, "keys 1-0 q-p a-l z-m toggle pads, space releases all, -/= tempo, ,/. algorithm, esc quits")

	g.Go(func() error { return watchStatus(gctx, shared, stderr) })
	g.Go(func() error {
		defer cancel()
		return readKeys(gctx, &keyboard{shared: shared, params: p})
	})

	err = g.Wait()

	if *save != "" {
		if serr := savePreset(*save, preset.Capture(p, shared)); serr != nil {
			err = errors.Join(err, serr)
		} else {
			logger.Info("preset saved", "path", *save)
		}
	}

	return err
}

func openMIDI(name string, sink midiin.NoteSink) (stop func(), err error) {
	drv, err := rtmididrv.New()
	if err != nil {
		return nil, fmt.Errorf("starting rtmidi driver: %w", err)
	}

	in, err := midiin.FindInput(drv, name)
	if err != nil {
		drv.Close()
		return nil, err
	}

	stopListen, err := midiin.Listen(in, sink, logger)
	if err != nil {
		drv.Close()
		return nil, err
	}

	return func() {
		stopListen()
		_ = in.Close()
		drv.Close()
	}, nil
}

// readKeys feeds raw terminal key presses to kb until a quit key or ctx ends.
// Without a terminal it just waits for ctx.
func readKeys(ctx context.Context, kb *keyboard) error {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		<-ctx.Done()
		return nil
	}

	old, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("setting raw mode: %w", err)
	}
	defer term.Restore(fd, old)

	// The reader stays blocked in Read after ctx ends. The process is
	// about to exit by then.
	keys := make(chan byte, 16)
	go func() {
		buf := make([]byte, 1)
		for {
			n, err := os.Stdin.Read(buf)
			if err != nil {
				close(keys)
				return
			}
			if n > 0 {
				keys <- buf[0]
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case b, ok := <-keys:
			if !ok || kb.press(b) {
				return nil
			}
		}
	}
}
