// Package prefs holds the user preferences that shape the layout and
// delivers typed change events to interested parties.
//
// A [Config] is a plain value. The [Store] owns the current Config and a set
// of subscriptions, each keyed by the preference [Key] values it watches.
// When a Config is replaced the store computes which keys changed and calls
// every subscriber watching one of them, once per changed key. Subscribing
// calls the listener immediately for each watched key with force set, so a
// new subscriber never has to read the initial state separately.
//
// [FileSource] feeds a Store from a TOML or YAML file and, when watched,
// pushes every edit of that file into the Store.
package prefs
