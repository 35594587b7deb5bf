// SPDX-License-Identifier: EPL-2.0

package padchop_test

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/ik5/padchop"
	"github.com/ik5/padchop/formats/wav"
	"github.com/ik5/padchop/slicing"
)

func ExampleDecodeFile() {
	dir, err := os.MkdirTemp("", "padchop")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(dir)

	// two seconds of silence at 44.1 kHz
	var file bytes.Buffer
	if err := wav.WriteWAV16(&file, 44100, 1, make([]int16, 88200)); err != nil {
		log.Fatal(err)
	}
	path := filepath.Join(dir, "loop.wav")
	if err := os.WriteFile(path, file.Bytes(), 0o600); err != nil {
		log.Fatal(err)
	}

	smp, err := padchop.DecodeFile(padchop.NewRegistry(), path)
	if err != nil {
		log.Fatal(err)
	}

	slices := slicing.Compute(smp, 120, slicing.Quarter, slicing.MaxRegions, 100)
	fmt.Println(smp.Frames, len(slices), slices[1].Start)
	// Output: 88200 4 22050
}
