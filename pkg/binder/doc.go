// Package binder wires a free-text origin input to a geocoding suggestion
// source and copies the chosen coordinates into the host form.
//
// A Binder attaches to one input per form render. Keystrokes feed OnInput,
// which collapses bursts through a trailing-edge debounce before issuing a
// single lookup with the final text. Responses replace the binder's owned
// suggestion list and the widget's displayed labels together; a selection
// resolves against that same list, so a label from a superseded lookup is a
// silent no-op. Lookup failures empty the list instead of surfacing.
package binder
