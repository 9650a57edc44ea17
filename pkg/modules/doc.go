// Package modules provides the standard collaborators the core engine
// expects callers to register as vdom.Module values: attributes,
// properties, classes, inline style, dataset entries, and event
// listeners. Each module diffs one VData field between the old and
// new VNode and applies the difference through the matching
// dom capability interface, type-asserting the node's Elm rather than
// requiring the core adapter to grow methods for every concern.
package modules
