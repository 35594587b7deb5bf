// SPDX-License-Identifier: EPL-2.0

package aiff

import "errors"

var (
	// ErrNotAiffFile indicates the file is not a valid AIFF file
	ErrNotAiffFile = errors.New("not an AIFF file")

	// ErrUnsupportedAiffLayout indicates a missing format or a bit depth
	// other than 8, 16, 24 or 32
	ErrUnsupportedAiffLayout = errors.New("unsupported AIFF layout")
)
