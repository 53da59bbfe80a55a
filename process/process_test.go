package process

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpawnCapturesStdoutAndExit(t *testing.T) {
	s := NewSupervisor()
	defer s.Shutdown()

	id, err := s.Spawn([]string{"echo", "hello"}, SpawnOptions{Stdout: true})
	require.NoError(t, err)

	deadline := time.After(2 * time.Second)
	var sawLine, sawExit, sawReaped bool
	var line string
	for !sawReaped {
		select {
		case <-deadline:
			t.Fatal("timed out waiting for echo child's events")
		default:
		}
		for _, ev := range s.Poll(100 * time.Millisecond) {
			if ev.ChildID != id {
				continue
			}
			switch ev.Kind {
			case EventReadReady:
				if l, ok, _ := s.ReadLine(id, StreamStdout); ok {
					sawLine = true
					line = l
				}
			case EventExited:
				sawExit = true
				assert.Equal(t, 0, ev.ExitCode)
			case EventReaped:
				sawReaped = true
			}
		}
	}

	assert.True(t, sawExit, "expected an EventExited for the child")
	assert.True(t, sawLine, "expected an EventReadReady carrying the echoed line")
	assert.Equal(t, "hello", line)
}

func TestWriteLineToStdinRoundTrips(t *testing.T) {
	s := NewSupervisor()
	defer s.Shutdown()

	id, err := s.Spawn([]string{"cat"}, SpawnOptions{Stdin: true, Stdout: true})
	require.NoError(t, err)

	_, err = s.WriteLine(id, "ping")
	require.NoError(t, err)

	deadline := time.After(2 * time.Second)
	for {
		select {
		case <-deadline:
			t.Fatal("timed out waiting for cat to echo the line back")
		default:
		}
		line, ok, _ := s.ReadLine(id, StreamStdout)
		if ok {
			assert.Equal(t, "ping", line)
			require.NoError(t, s.Terminate(id))
			return
		}
		s.Poll(50 * time.Millisecond)
	}
}

func TestSplitCommandWordSplitsWithoutShellSemantics(t *testing.T) {
	argv, err := SplitCommand(`notify-send "hello world"`)
	require.NoError(t, err)
	assert.Equal(t, []string{"notify-send", "hello world"}, argv)
}

func TestTerminateUnknownChildErrors(t *testing.T) {
	s := NewSupervisor()
	defer s.Shutdown()

	err := s.Terminate(newChildID())
	assert.Error(t, err)
}
