// Package metrics captures what the windowing system reports about the
// display: pixel density, raw window size, the min/max window extents used
// to derive the usable area, orientation, multi-window state and rotation.
//
// A [Snapshot] is short-lived and read-only. It is rebuilt whenever the
// windowing system reports a configuration or rotation change, and variants
// for the other orientation, a multi-window rectangle, or an independent
// copy are derived from it with [Snapshot.ForOrientation],
// [Snapshot.ForMultiWindow] and [Snapshot.ForCopy].
//
// The package also owns unit conversion: density-independent pixels (dp)
// and scale-independent pixels (sp) to device pixels, and the line height of
// a label at a given text size.
package metrics
