package signals

import (
	"os"
	"syscall"
)

// SignalLookup is the set of signals succade knows how to name from a config
// file or flag value. Trimmed from the teacher's (consul-template's) much
// larger table down to the handful the bar driver actually reacts to: the
// three termination signals, SIGPIPE (caught so a dead renderer surfaces as a
// write error instead of killing us), SIGHUP (the default reload signal) and
// SIGCHLD (ignored explicitly, see process.Supervisor doc).
var SignalLookup = map[string]os.Signal{
	"SIGHUP":  syscall.SIGHUP,
	"SIGINT":  syscall.SIGINT,
	"SIGQUIT": syscall.SIGQUIT,
	"SIGTERM": syscall.SIGTERM,
	"SIGPIPE": syscall.SIGPIPE,
	"SIGCHLD": syscall.SIGCHLD,
}
