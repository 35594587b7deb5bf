// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/ik5/padchop"
	"github.com/ik5/padchop/params"
	"github.com/ik5/padchop/preset"
	"github.com/ik5/padchop/sample"
	"github.com/ik5/padchop/slicing"
)

func runSlice(args []string, stdout, stderr io.Writer) error {
	var c controls
	fs := newFlagSet("slice", stderr, &c)
	maxPads := fs.Int("max", slicing.MaxRegions, "maximum number of slices")
	save := fs.String("save", "", "write the controls and sample path to a preset file")
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

	smp, err := padchop.DecodeFile(padchop.NewRegistry(), path)
	if err != nil {
		return err
	}

	regions := slicing.Compute(smp, p.BPM(), p.Algorithm(), min(*maxPads, slicing.MaxRegions), p.Speed())
	logger.Debug("sample sliced", "path", path, "frames", smp.Frames, "slices", len(regions))

	if err := printSlices(stdout, path, smp, p, regions); err != nil {
		return err
	}

	if *save != "" {
		p.SetSamplePath(path)
		pr := preset.Capture(p, nil)
		pr.NumPads = len(regions)
		if err := savePreset(*save, pr); err != nil {
			return err
		}
		logger.Info("preset saved", "path", *save)
	}

	return nil
}

func printSlices(w io.Writer, path string, smp *sample.Sample, p *params.Params, regions slicing.Slices) error {
	layout := "mono"
	if smp.Stereo {
		layout = "stereo"
	}
	fmt.Fprintf(w, "%s: %d frames, %g Hz %s, %s\n", path, smp.Frames, smp.SampleRate, layout, smp.Duration())
	fmt.Fprintf(w, "algorithm %s, %g bpm, speed %g%%, %d slices\n\n", p.Algorithm(), p.BPM(), p.Speed(), len(regions))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "pad\tnote\tstart\tend\tframes\tms\t")
	for pad, r := range regions {
		ms := float64(r.Len()) * 1000 / smp.SampleRate
		fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t%d\t%.1f\t\n", pad, p.StartingNote()+pad, r.Start, r.End, r.Len(), ms)
	}

	return tw.Flush()
}
