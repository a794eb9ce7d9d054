package session

import "errors"

// errClosed is returned by Turn on a closed UI.
var errClosed = errors.New("ui is closed")

// IsClosed reports whether err signals a closed UI.
func IsClosed(err error) bool { return errors.Is(err, errClosed) }
