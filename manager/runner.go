// Package manager drives the single event loop that ties the scheduler,
// spark engine, formatter and action dispatcher together over one
// process.Supervisor, generalizing the teacher's Runner (a fixed-ticker
// poll loop) into a variable-interval wait loop per the bar's scheduling
// needs.
package manager

import (
	"fmt"
	"log"
	"os"
	"sync"
	"syscall"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"

	"github.com/succade-go/succade/action"
	"github.com/succade-go/succade/bar"
	"github.com/succade-go/succade/config"
	"github.com/succade-go/succade/format"
	"github.com/succade-go/succade/process"
	"github.com/succade-go/succade/scheduler"
	"github.com/succade-go/succade/spark"
)

// ErrExitable is implemented by errors that want to dictate the process's
// exit status, the same contract the teacher's cli.go select loop checks
// for before falling back to a generic non-zero code.
type ErrExitable interface {
	error
	ExitStatus() int
}

// Runner owns one bar.State and its process.Supervisor, and drives them
// through Start/Stop the way the teacher's Runner drives a template/command
// cycle.
type Runner struct {
	ErrCh  chan error
	DoneCh chan bool

	state *config.Config
	sup   *process.Supervisor
	bar   *bar.State
	clock *scheduler.Clock

	composer *format.Composer

	stopLock sync.Mutex
	stopped  bool
	running  bool

	reloadRequested bool
}

// NewRunner builds a Runner from a finalized config.Config. The bar's
// runtime State (format parsing, Block/Spark construction) is built here so
// that a Start failure (e.g. a bad format string) surfaces before anything
// is spawned.
func NewRunner(cfg *config.Config, prefs config.Prefs) (*Runner, error) {
	log.Printf("[INFO] (runner) creating new runner")

	sup := process.NewSupervisor()
	st, err := bar.NewState(cfg, sup, prefs)
	if err != nil {
		return nil, errors.Wrap(err, "runner: building bar state")
	}

	if len(st.Blocks) == 0 && !config.BoolVal(prefs.Empty) {
		return nil, errors.New("runner: no blocks configured (pass -e to run anyway)")
	}

	r := &Runner{
		state:    cfg,
		sup:      sup,
		bar:      st,
		clock:    scheduler.NewClock(),
		composer: format.NewComposer(),
		ErrCh:    make(chan error),
		DoneCh:   make(chan bool),
	}
	return r, nil
}

// Start spawns the renderer and every spark, then runs the event loop until
// stopped. Blocking; callers run it as a goroutine and select over ErrCh/
// DoneCh the way the teacher's cli.go does.
func (r *Runner) Start() {
	log.Printf("[INFO] (runner) starting")

	if err := r.storePid(); err != nil {
		r.ErrCh <- err
		return
	}

	if err := r.openLemon(); err != nil {
		r.ErrCh <- err
		return
	}

	if err := spark.OpenAll(r.bar, r.clock.Seconds()); err != nil {
		log.Printf("[WARN] (runner) opening sparks: %s", err)
	}

	r.running = true
	waitFor := time.Duration(0)

	for r.running {
		if err := r.tick(waitFor); err != nil {
			r.ErrCh <- err
			return
		}
		waitFor = scheduler.NextWait(r.bar, r.clock.Seconds())
	}

	log.Printf("[INFO] (runner) loop exiting")
	r.DoneCh <- true
}

// tick runs one loop iteration per the event-loop spec: open due blocks,
// render if dirty, poll for events, dispatch them.
func (r *Runner) tick(waitFor time.Duration) error {
	now := r.clock.Seconds()

	if err := scheduler.Tick(r.bar, now); err != nil {
		log.Printf("[WARN] (runner) scheduler tick: %s", err)
	}

	if r.bar.Dirty {
		line, changed, err := r.composer.Render(r.bar)
		if err != nil {
			return errors.Wrap(err, "runner: composing line")
		}
		if changed {
			if _, err := r.sup.WriteLine(r.bar.Lemon.ChildID, line); err != nil {
				if pe, ok := err.(*process.Error); ok && pe.Kind == process.KindBrokenPipe {
					return errors.Wrap(err, "runner: renderer pipe broken")
				}
				log.Printf("[WARN] (runner) write to renderer: %s", err)
			}
		}
		r.bar.Dirty = false
	}

	events := r.sup.Poll(waitFor)
	for _, ev := range events {
		r.handle(ev)
	}
	return nil
}

func (r *Runner) handle(ev process.Event) {
	now := r.clock.Seconds()

	switch ev.Kind {
	case process.EventReadReady:
		r.handleReadReady(ev, now)
	case process.EventExited:
		r.handleExited(ev)
	case process.EventError:
		log.Printf("[ERR] (runner) %s: %s", ev.ChildID, ev.Err)
	}
}

func (r *Runner) handleReadReady(ev process.Event, now float64) {
	if ev.ChildID == r.bar.Lemon.ChildID {
		r.handleRendererLine(ev)
		return
	}

	for _, sp := range r.bar.Sparks {
		if sp.ChildID == ev.ChildID {
			spark.HandleReadReady(r.bar, r.sup, ev)
			return
		}
	}

	line, ok, _ := r.sup.ReadLine(ev.ChildID, ev.Stream)
	if !ok {
		return
	}
	scheduler.HandleReadReady(r.bar, ev, line, now)
}

func (r *Runner) handleRendererLine(ev process.Event) {
	for {
		line, ok, _ := r.sup.ReadLine(ev.ChildID, ev.Stream)
		if !ok {
			return
		}
		action.Dispatch(r.bar, r.sup, line)
	}
}

func (r *Runner) handleExited(ev process.Event) {
	if ev.ChildID == r.bar.Lemon.ChildID {
		log.Printf("[ERR] (runner) renderer exited, shutting down")
		r.running = false
		return
	}
	for _, sp := range r.bar.Sparks {
		if sp.ChildID == ev.ChildID {
			spark.HandleExited(r.bar, ev)
			return
		}
	}
	scheduler.HandleExited(r.bar, ev)
}

// openLemon spawns the renderer itself, wiring both its stdin (for the
// composed line) and stdout (for action feedback).
func (r *Runner) openLemon() error {
	argv, err := process.SplitCommand(config.StringVal(r.bar.Lemon.Cfg.Bin))
	if err != nil || len(argv) == 0 {
		return fmt.Errorf("runner: bad renderer command: %v", err)
	}
	argv = append(argv, lemonFlags(r.bar.Lemon.Cfg)...)

	id, err := r.sup.Spawn(argv, process.SpawnOptions{Stdin: true, Stdout: true})
	if err != nil {
		return errors.Wrap(err, "runner: spawning renderer")
	}
	r.bar.Lemon.ChildID = id
	r.bar.Lemon.Alive = true
	return nil
}

// lemonFlags translates a finalized LemonConfig into the renderer's own
// command-line flags (lemonbar's -g/-F/-B/... surface), kept here rather
// than in config since it's wiring, not configuration.
func lemonFlags(c *config.LemonConfig) []string {
	var flags []string
	if w, h := config.IntVal(c.Width), config.IntVal(c.Height); w > 0 || h > 0 {
		x, y := config.IntVal(c.X), config.IntVal(c.Y)
		flags = append(flags, "-g", fmt.Sprintf("%dx%d+%d+%d", w, h, x, y))
	}
	if config.StringPresent(c.FG) {
		flags = append(flags, "-F", config.StringVal(c.FG))
	}
	if config.StringPresent(c.BG) {
		flags = append(flags, "-B", config.StringVal(c.BG))
	}
	if config.StringPresent(c.LC) {
		flags = append(flags, "-U", config.StringVal(c.LC))
	}
	if config.IntVal(c.LW) > 0 {
		flags = append(flags, "-u", fmt.Sprintf("%d", config.IntVal(c.LW)))
	}
	if config.BoolVal(c.Bottom) {
		flags = append(flags, "-b")
	}
	if config.BoolVal(c.Force) {
		flags = append(flags, "-d")
	}
	for _, font := range []string{config.StringVal(c.BlockFont), config.StringVal(c.LabelFont), config.StringVal(c.AffixFont)} {
		if font != "" {
			flags = append(flags, "-f", font)
		}
	}
	if config.StringPresent(c.Name) {
		flags = append(flags, "-n", config.StringVal(c.Name))
	}
	return flags
}

// Stop terminates the renderer and every supervised child, then removes the
// pid file. Mirrors the teacher's stopLock-guarded, idempotent Stop.
func (r *Runner) Stop() {
	r.stopLock.Lock()
	defer r.stopLock.Unlock()

	if r.stopped {
		return
	}

	log.Printf("[INFO] (runner) stopping")
	r.running = false

	if err := r.sup.Shutdown(); err != nil {
		log.Printf("[WARN] (runner) shutdown: %s", err)
	}

	if err := r.deletePid(); err != nil {
		log.Printf("[WARN] (runner) could not remove pid: %s", err)
	}

	r.stopped = true
}

// Signal reacts to a caught OS signal: the configured kill signal (or any
// of SIGINT/SIGTERM/SIGQUIT/SIGPIPE) stops the loop; the configured reload
// signal flags a reload for the caller (cli.go) to act on.
func (r *Runner) Signal(s os.Signal) {
	if s == config.SignalVal(r.bar.Lemon.Cfg.ReloadSignal) {
		r.reloadRequested = true
		return
	}
	switch s {
	case config.SignalVal(r.bar.Lemon.Cfg.KillSignal),
		syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGPIPE:
		r.running = false
	}
}

// ReloadRequested reports and clears whether the last signal was a reload.
func (r *Runner) ReloadRequested() bool {
	v := r.reloadRequested
	r.reloadRequested = false
	return v
}

// DumpState writes a [TRACE]-level spew dump of the runner's bar.State. The
// log filter drops the line unless TRACE is enabled; the dump itself is
// built on every call.
func (r *Runner) DumpState() {
	log.Printf("[TRACE] (runner) state: %s", spew.Sdump(r.bar))
}

func (r *Runner) storePid() error {
	path := config.StringVal(r.state.Lemon.PidFile)
	if path == "" {
		return nil
	}
	log.Printf("[INFO] (runner) creating pid file at %q", path)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0666)
	if err != nil {
		return fmt.Errorf("runner: could not open pid file: %s", err)
	}
	defer f.Close()

	_, err = fmt.Fprintf(f, "%d", os.Getpid())
	if err != nil {
		return fmt.Errorf("runner: could not write pid file: %s", err)
	}
	return nil
}

func (r *Runner) deletePid() error {
	path := config.StringVal(r.state.Lemon.PidFile)
	if path == "" {
		return nil
	}
	log.Printf("[DEBUG] (runner) removing pid file at %q", path)

	stat, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("runner: could not remove pid file: %s", err)
	}
	if stat.IsDir() {
		return fmt.Errorf("runner: specified pid file path is a directory")
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("runner: could not remove pid file: %s", err)
	}
	return nil
}
