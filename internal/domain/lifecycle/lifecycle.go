// Package lifecycle holds timing shared by fx start and stop hooks.
package lifecycle

import "time"

// DefaultTimeout bounds every start/stop hook (db ping, server shutdown, worker drain).
const DefaultTimeout = 10 * time.Second
