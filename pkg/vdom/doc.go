// Package vdom implements a keyed virtual-DOM reconciliation engine:
// a VNode tree model, a hyperscript builder, and a patch cycle that
// walks two trees and emits the minimal set of calls against a
// dom.API backend to bring a host tree in line with a new VNode tree.
//
// The engine owns no scheduling, no data observation, and no component
// state; callers decide when to call Patch and with what. See
// pkg/reactive and pkg/scheduler for layered conveniences that sit
// above this package without this package depending on them.
package vdom
