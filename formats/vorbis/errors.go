// SPDX-License-Identifier: EPL-2.0

package vorbis

import "errors"

var ErrInvalidStream = errors.New("invalid vorbis stream")
