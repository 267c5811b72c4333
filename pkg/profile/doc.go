// Package profile resolves an invariant grid spec, a metrics snapshot and a
// preference snapshot into a pixel-exact layout [Profile].
//
// # Resolution
//
// [Resolve] is a pure function. Each call runs the same ordered passes:
//
//  1. Orientation: decide whether the dock sits in a vertical bar and, if so,
//     which edge it occupies.
//  2. Base paddings from the device class table.
//  3. Hotseat base size from the dock row count and the tall-screen rule.
//  4. Icon and cell sizes, squeezing the icon-to-label padding when a cell
//     has no room for it.
//  5. One overflow check. When the grid does not fit, step 4 runs once more
//     at the scale that makes it fit.
//  6. Workspace padding.
//  7. Folder cell sizes, scaled down (never up) to fit the screen.
//  8. Label hiding for the vertical bar layout.
//  9. Dock preferences: hiding the dock collapses it; otherwise its paddings
//     and size follow the dock scale without dropping below what its own
//     rows need.
//
// Every field of the result is non-negative. Geometrically impossible inputs
// produce a degraded profile rather than an error; only an invalid grid spec
// or metrics snapshot fails.
//
// # Ownership
//
// A [Resolver] owns the current Profile for one display. It recomputes a fresh
// Profile whenever insets, rotation, metrics or preferences change, swaps it
// in with a new generation number and then notifies its listeners. Profiles
// are never modified after they are published.
//
// # Variants
//
// [Copy], [MultiWindow] and [Resolver.FullScreenProfile] derive related
// profiles without touching the owner's state.
package profile
