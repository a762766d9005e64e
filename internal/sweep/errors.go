package sweep

import "errors"

// ErrNoDirectories is returned by Scanner.Scan when it is called with
// no directory roots. No scan is performed.
var ErrNoDirectories = errors.New("you must choose a directory")
