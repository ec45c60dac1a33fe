// Copyright 2024 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package mca

import (
	stderrors "errors"

	"github.com/cosnicolaou/mcnbt"
)

// IsCorrupt reports whether err (or any error it wraps) is an
// *mcnbt.Error of kind InvalidData, EarlyEOF or UnzipError: malformed
// data, whether in a chunk payload or in the region layout itself (a
// file shorter than the header, an out-of-range offset entry, a
// rejected compression byte), as opposed to an I/O failure or any other
// error.
func IsCorrupt(err error) bool {
	var nerr *mcnbt.Error
	if !stderrors.As(err, &nerr) {
		return false
	}
	switch nerr.Kind {
	case mcnbt.InvalidData, mcnbt.EarlyEOF, mcnbt.UnzipError:
		return true
	default:
		return false
	}
}
