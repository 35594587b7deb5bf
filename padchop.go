// SPDX-License-Identifier: EPL-2.0

package padchop

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ik5/padchop/audio"
	"github.com/ik5/padchop/formats/aiff"
	"github.com/ik5/padchop/formats/mp3"
	"github.com/ik5/padchop/formats/vorbis"
	"github.com/ik5/padchop/formats/wav"
	"github.com/ik5/padchop/sample"
)

// fallbackFormats are tried in order when a file has no registered
// extension. WAV goes first since its header check is cheap and strict.
var fallbackFormats = []string{"wav", "mp3"}

// NewRegistry returns a registry with every bundled decoder.
func NewRegistry() *audio.Registry {
	reg := audio.NewRegistry()

	reg.Register("wav", wav.Decoder{})
	reg.Register("wave", wav.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})
	reg.Register("oga", vorbis.Decoder{})
	reg.Register("aif", aiff.Decoder{})
	reg.Register("aiff", aiff.Decoder{})

	return reg
}

// DecodeFile decodes the file at path into a mono or stereo Sample. Every
// failure is returned as a *sample.DecodeError.
func DecodeFile(reg *audio.Registry, path string) (*sample.Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &sample.DecodeError{Path: path, Err: err}
	}
	defer f.Close()

	if dec, format, ok := reg.Lookup(path); ok {
		smp, err := decodeWith(dec, f)
		if err != nil {
			return nil, &sample.DecodeError{Path: path, Format: format, Err: err}
		}

		return smp, nil
	}

	var errs []error
	for _, format := range fallbackFormats {
		dec, ok := reg.Get(format)
		if !ok {
			errs = append(errs, fmt.Errorf("%w: %s", audio.ErrUnknownFormat, format))
			continue
		}

		if _, err := f.Seek(0, io.SeekStart); err != nil {
			return nil, &sample.DecodeError{Path: path, Err: err}
		}

		smp, err := decodeWith(dec, f)
		if err == nil {
			return smp, nil
		}
		errs = append(errs, fmt.Errorf("as %s: %w", format, err))
	}

	return nil, &sample.DecodeError{
		Path:   path,
		Format: audio.FormatOf(path),
		Err:    errors.Join(errs...),
	}
}

func decodeWith(dec audio.Decoder, r io.Reader) (*sample.Sample, error) {
	src, err := dec.Decode(r)
	if err != nil {
		return nil, err
	}

	return sample.Collect(src)
}
