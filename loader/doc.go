// SPDX-License-Identifier: EPL-2.0

// Package loader runs sample decoding and slice computation on a small pool
// of background workers.
//
// A load publishes the new sample together with its initial slices in one
// update of control.State. A failed load only records the error. Re-slice
// jobs recompute the slices of the current sample and are dropped if a newer
// sample was published in the meantime. In-flight loads are never cancelled;
// the last publish wins.
package loader
