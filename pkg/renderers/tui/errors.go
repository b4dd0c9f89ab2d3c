package tui

import "errors"

// ErrAborted is returned when the user cancels an interactive session, for
// example via Ctrl+C or by declining to retry an empty search.
var ErrAborted = errors.New("tui: aborted")
