// Package grid describes the logical, device-independent shape of a home
// screen: how many columns and rows the workspace has, how large icons and
// labels are in density-independent units, how many icons fit in the dock
// (hotseat), and the shape of an open folder.
//
// An [InvariantSpec] never changes once constructed. It is shared by
// reference between the portrait and landscape profiles that are resolved
// from it, and by every multi-window variant derived from those.
//
// Specs come from three places:
//
//   - [Preset] returns one of the built-in specs ("4x5", "5x5", "6x6", ...).
//   - [LoadFile] decodes a TOML (.toml) or YAML (.yaml, .yml) file.
//   - Callers build the struct directly and call [InvariantSpec.Validate].
//
// Validation failures are contract violations and carry
// errors.ErrCodeInvalidSpec; they are not recoverable at runtime.
package grid
