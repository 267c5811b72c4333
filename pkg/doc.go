// Package pkg provides the libraries behind gridfit, a resolver that turns a
// launcher grid description and a device's display metrics into a finished
// pixel layout.
//
// # Overview
//
// A launcher home screen is a grid of icon cells with a dock (hotseat)
// below or beside it, folders that open over the grid, and an app drawer.
// gridfit answers the question "how big is every one of those things on
// this device, in this orientation, with these user preferences?".
//
// The packages are organized in layers:
//
//  1. [geom], [errors] - Pixel geometry and coded errors
//  2. [grid], [device], [metrics], [prefs] - Resolver inputs
//  3. [profile] - The resolution pipeline and the stateful resolver
//  4. [pipeline], [cache] - Option handling and cached resolution for the
//     CLI and HTTP API
//  5. [observability], [buildinfo] - Hooks and version information
//
// # Architecture
//
// The data flow through gridfit:
//
//	grid spec (preset / TOML / YAML)   display metrics   preferences
//	              ↓                          ↓                ↓
//	                    [profile] Resolve (nine ordered passes)
//	                                     ↓
//	                            immutable Profile
//	                                     ↓
//	           listeners / CLI tables / JSON over HTTP / cache
//
// # Quick Start
//
//	spec, _ := grid.Preset("5x5")
//	m, _ := metrics.New(2.625, metrics.Window{Width: 1080, Height: 2340}, metrics.Rotation0)
//	p, err := profile.Resolve(profile.Inputs{Spec: spec, Metrics: m, Config: prefs.Default()})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(p.CellSize(), p.HotseatBarSizePx)
//
// React to preference and inset changes with a [profile.Resolver]:
//
//	store := prefs.NewStore(prefs.Default())
//	r, _ := profile.New(spec, m, store, profile.WithLogger(logger))
//	r.AddListener(myView)
//	_ = store.Set(prefs.KeyDockHidden, "true") // myView.OnLayoutChanged runs
package pkg
