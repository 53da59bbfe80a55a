package process

import (
	"net"
	"os"
	"os/exec"
	"sync"
	"syscall"
	"time"

	"github.com/mattn/go-shellwords"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// eventBacklog bounds how many in-flight events the reader/waiter
// goroutines may have queued before they block sending; generous enough
// that a busy iteration never stalls a scanner goroutine mid-line.
const eventBacklog = 256

// Supervisor owns every spawned Child and the single event channel their
// reader/waiter goroutines fan into. It is the only thing in this program
// that touches an *exec.Cmd or a raw pipe fd.
type Supervisor struct {
	mu       sync.Mutex
	children map[ChildID]*Child
	events   chan Event
	group    *errgroup.Group

	// NoNewline disables WriteLine's default behavior of appending "\n" when
	// the caller's text doesn't already end with one.
	NoNewline bool
}

// NewSupervisor returns a ready Supervisor.
func NewSupervisor() *Supervisor {
	return &Supervisor{
		children: make(map[ChildID]*Child),
		events:   make(chan Event, eventBacklog),
		group:    &errgroup.Group{},
	}
}

func (s *Supervisor) get(id ChildID) (*Child, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.children[id]
	if !ok {
		return nil, &Error{Kind: KindClosed, ChildID: id}
	}
	return c, nil
}

// Spawn starts argv as a child process with whichever streams opts enables
// wired up as pipes the supervisor keeps its own end of. One goroutine per
// enabled readable stream scans lines into that stream's queue; one more
// goroutine blocks on cmd.Wait() and emits Exited then Reaped.
func (s *Supervisor) Spawn(argv []string, opts SpawnOptions) (ChildID, error) {
	if len(argv) == 0 {
		return ChildID{}, errors.New("process: empty argv")
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Dir = opts.Dir
	if opts.Env != nil {
		cmd.Env = opts.Env
	}

	id := newChildID()
	c := &Child{id: id, cmd: cmd, stdoutQ: &lineQueue{}, stderrQ: &lineQueue{}}

	var ourStdin, ourStdout, ourStderr *os.File

	if opts.Stdin {
		pr, pw, err := os.Pipe()
		if err != nil {
			return ChildID{}, errors.Wrap(err, "process: stdin pipe")
		}
		cmd.Stdin = pr
		ourStdin = pr
		c.stdin = pw
	}
	if opts.Stdout {
		pr, pw, err := os.Pipe()
		if err != nil {
			return ChildID{}, errors.Wrap(err, "process: stdout pipe")
		}
		cmd.Stdout = pw
		ourStdout = pw
		c.stdout = pr
	}
	if opts.Stderr {
		pr, pw, err := os.Pipe()
		if err != nil {
			return ChildID{}, errors.Wrap(err, "process: stderr pipe")
		}
		cmd.Stderr = pw
		ourStderr = pw
		c.stderr = pr
	}

	if err := cmd.Start(); err != nil {
		return ChildID{}, errors.Wrapf(err, "process: spawn %q", argv[0])
	}

	// Close the ends we handed to the child; we keep the other end of each
	// pipe open ourselves.
	if ourStdin != nil {
		ourStdin.Close()
	}
	if ourStdout != nil {
		ourStdout.Close()
	}
	if ourStderr != nil {
		ourStderr.Close()
	}

	c.alive = true
	c.pid = cmd.Process.Pid

	s.mu.Lock()
	s.children[id] = c
	s.mu.Unlock()

	if c.stdout != nil {
		s.group.Go(func() error {
			scanLines(id, StreamStdout, c.stdout, c.stdoutQ, s.events)
			return nil
		})
	}
	if c.stderr != nil {
		s.group.Go(func() error {
			scanLines(id, StreamStderr, c.stderr, c.stderrQ, s.events)
			return nil
		})
	}
	s.group.Go(func() error {
		waitChild(c, s.events)
		return nil
	})

	return id, nil
}

// SpawnDetached starts argv without retaining any handle to it: stdio is
// discarded and the supervisor does not wait for it, used for action
// commands the renderer triggers fire-and-forget (the teacher's
// run-and-forget shellwords-split command pattern, applied to clicks
// instead of reload hooks).
func (s *Supervisor) SpawnDetached(argv []string, opts SpawnOptions) error {
	if len(argv) == 0 {
		return errors.New("process: empty argv")
	}
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Dir = opts.Dir
	if opts.Env != nil {
		cmd.Env = opts.Env
	}
	if err := cmd.Start(); err != nil {
		return errors.Wrapf(err, "process: spawn detached %q", argv[0])
	}
	go cmd.Wait() //nolint:errcheck
	return nil
}

// SplitCommand splits a configured command string into argv the way the
// teacher splits its own command strings: word-aware, no shell semantics
// (globbing, redirection, pipes are intentionally not supported).
func SplitCommand(command string) ([]string, error) {
	return shellwords.Parse(command)
}

// SetArg records a single positional argument on the child identified by
// id; arg == nil clears it. The value is only stored: Spawn takes its whole
// argv from the caller, and no Supervisor method reads the stored argument.
func (s *Supervisor) SetArg(id ChildID, arg *string) error {
	c, err := s.get(id)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.arg = arg
	c.mu.Unlock()
	return nil
}

// SetStdinLineBuffered and SetStdoutLineBuffered are explicit, idempotent
// markers: every enabled stream is already line-buffered by construction in
// this implementation, but callers call these the way the original protocol
// expects, leaving a seam for a future binary-stream mode.
func (s *Supervisor) SetStdinLineBuffered(id ChildID) error {
	_, err := s.get(id)
	return err
}

func (s *Supervisor) SetStdoutLineBuffered(id ChildID) error {
	_, err := s.get(id)
	return err
}

// WriteLine writes text to the child's stdin, appending "\n" if missing
// (unless NoNewline is set). A write that would block returns KindWouldBlock
// rather than stalling.
func (s *Supervisor) WriteLine(id ChildID, text string) (int, error) {
	c, err := s.get(id)
	if err != nil {
		return 0, err
	}
	if c.stdin == nil {
		return 0, &Error{Kind: KindClosed, ChildID: id, Err: errors.New("stdin not enabled")}
	}

	if !s.NoNewline && (len(text) == 0 || text[len(text)-1] != '\n') {
		text += "\n"
	}

	c.stdin.SetWriteDeadline(time.Now().Add(writeDeadline))
	n, err := c.stdin.Write([]byte(text))
	if err != nil {
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return n, &Error{Kind: KindWouldBlock, ChildID: id, Err: err}
		}
		return n, &Error{Kind: KindBrokenPipe, ChildID: id, Err: err}
	}
	return n, nil
}

// ReadLine returns the next complete buffered line (without its terminator)
// for the given stream, or ("", false, nil) if none is pending yet.
func (s *Supervisor) ReadLine(id ChildID, which Stream) (string, bool, error) {
	c, err := s.get(id)
	if err != nil {
		return "", false, err
	}
	q := c.stdoutQ
	if which == StreamStderr {
		q = c.stderrQ
	}
	line, ok := q.pop()
	return line, ok, nil
}

// Terminate sends SIGTERM and returns immediately; the waiter goroutine
// always reaps the child and its Exited/Reaped events follow on the
// supervisor's event channel.
func (s *Supervisor) Terminate(id ChildID) error {
	c, err := s.get(id)
	if err != nil {
		return err
	}
	if !c.Alive() {
		return nil
	}
	if err := c.cmd.Process.Signal(syscall.SIGTERM); err != nil {
		return &Error{Kind: KindClosed, ChildID: id, Err: err}
	}
	return nil
}

// Close closes the supervisor's end of every pipe for id and forgets it.
// Call after EventReaped, or to force-abandon a child the caller no longer
// cares about tracking.
func (s *Supervisor) Close(id ChildID) error {
	c, err := s.get(id)
	if err != nil {
		return err
	}
	if c.stdin != nil {
		c.stdin.Close()
	}
	if c.stdout != nil {
		c.stdout.Close()
	}
	if c.stderr != nil {
		c.stderr.Close()
	}
	s.mu.Lock()
	delete(s.children, id)
	s.mu.Unlock()
	return nil
}

// Poll waits up to timeout for at least one event, then drains whatever
// else is immediately available without blocking further, returning the
// batch. timeout < 0 waits indefinitely; timeout == 0 drains only what is
// already queued.
func (s *Supervisor) Poll(timeout time.Duration) []Event {
	var first Event
	var got bool

	if timeout == 0 {
		select {
		case first = <-s.events:
			got = true
		default:
		}
	} else if timeout < 0 {
		first = <-s.events
		got = true
	} else {
		t := time.NewTimer(timeout)
		defer t.Stop()
		select {
		case first = <-s.events:
			got = true
		case <-t.C:
		}
	}

	if !got {
		return nil
	}

	batch := []Event{first}
	for {
		select {
		case e := <-s.events:
			batch = append(batch, e)
		default:
			return s.reap(batch)
		}
	}
}

// reap drops the supervisor's bookkeeping for any child whose EventReaped
// just arrived in this batch, matching the spec's "supervisor forgets the
// ChildID after this" promise.
func (s *Supervisor) reap(batch []Event) []Event {
	for _, e := range batch {
		if e.Kind == EventReaped {
			s.mu.Lock()
			if c, ok := s.children[e.ChildID]; ok {
				if c.stdout != nil {
					c.stdout.Close()
				}
				if c.stderr != nil {
					c.stderr.Close()
				}
				if c.stdin != nil {
					c.stdin.Close()
				}
				delete(s.children, e.ChildID)
			}
			s.mu.Unlock()
		}
	}
	return batch
}

// Shutdown terminates every remaining child and waits up to shutdownGrace
// for all supervisor goroutines (readers and waiters alike) to finish, using
// errgroup the way the corpus's supervisor-pattern examples group worker
// goroutines for a clean unwind. If the grace period runs out first it
// returns nil without waiting further.
func (s *Supervisor) Shutdown() error {
	s.mu.Lock()
	ids := make([]ChildID, 0, len(s.children))
	for id := range s.children {
		ids = append(ids, id)
	}
	s.mu.Unlock()

	for _, id := range ids {
		s.Terminate(id) //nolint:errcheck
	}

	done := make(chan error, 1)
	go func() { done <- s.group.Wait() }()

	select {
	case err := <-done:
		return err
	case <-time.After(shutdownGrace):
		return nil
	}
}

const shutdownGrace = 2 * time.Second
