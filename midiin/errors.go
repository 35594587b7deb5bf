// SPDX-License-Identifier: EPL-2.0

package midiin

import "errors"

var ErrNoInput = errors.New("no matching MIDI input")
