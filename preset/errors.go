// SPDX-License-Identifier: EPL-2.0

package preset

import "github.com/pkg/errors"

var (
	ErrUnsupportedVersion = errors.New("unsupported preset version")
	ErrInvalidPreset      = errors.New("invalid preset")
)
