// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/ik5/padchop/control"
	"github.com/ik5/padchop/slicing"
)

const statusInterval = 50 * time.Millisecond

// statusLine renders the load state and one cell per pad, '#' while the pad
// sounds.
func statusLine(st control.Status, visuals []bool) string {
	var b strings.Builder

	switch {
	case st.Loading:
		fmt.Fprintf(&b, "loading %s", filepath.Base(st.Path))
	case st.Err != "":
		fmt.Fprintf(&b, "error: %s", st.Err)
	case st.Path == "":
		b.WriteString("no sample")
	default:
		fmt.Fprintf(&b, "%s %d pads", filepath.Base(st.Path), st.Pads)
	}

	if len(visuals) == 0 {
		return b.String()
	}

	b.WriteString(" [")
	for pad, on := range visuals {
		if pad > 0 && pad%8 == 0 {
			b.WriteByte('|')
		}
		if on {
			b.WriteByte('#')
		} else {
			b.WriteByte('.')
		}
	}
	b.WriteByte(']')

	return b.String()
}

// watchStatus redraws the status line whenever the shared state changes.
func watchStatus(ctx context.Context, shared *control.State, w io.Writer) error {
	ticker := time.NewTicker(statusInterval)
	defer ticker.Stop()

	visuals := make([]bool, 0, slicing.MaxRegions)
	last := ""

	for {
		select {
		case <-ctx.Done():
			fmt.Fprint(w, "\r\n")
			return nil
		case <-ticker.C:
		}

		visuals, _ = shared.PadVisuals(visuals)
		line := statusLine(shared.Status(), visuals)
		if line == last {
			continue
		}

		fmt.Fprintf(w, "\r\x1b[K%s", line)
		last = line
	}
}
