// Package geom provides the integer point and rectangle value types used by
// the layout resolver.
//
// All types are plain values: methods never mutate the receiver and return a
// new value instead, so a Rect stored in a resolved profile can be handed to
// callers without copying.
package geom
