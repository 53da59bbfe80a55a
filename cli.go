package main

import (
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"os"
	"os/signal"
	"sync"

	homedir "github.com/mitchellh/go-homedir"

	"github.com/succade-go/succade/config"
	"github.com/succade-go/succade/logging"
	"github.com/succade-go/succade/manager"
	"github.com/succade-go/succade/signals"
	"github.com/succade-go/succade/version"
)

const (
	ExitCodeOK int = 0

	ExitCodeError = 10 + iota
	ExitCodeInterrupt
	ExitCodeParseFlagsError
	ExitCodeRunnerError
	ExitCodeConfigError
)

// Cli is the entry point object: it owns the signal channel and the output
// streams, and drives a manager.Runner through its lifetime, including
// reloads.
type Cli struct {
	sync.Mutex

	outStream, errStream io.Writer

	signalCh chan os.Signal
	stopCh   chan struct{}
	stopped  bool
}

func NewCli(out, err io.Writer) *Cli {
	return &Cli{
		outStream: out,
		errStream: err,
		signalCh:  make(chan os.Signal, 1),
		stopCh:    make(chan struct{}),
	}
}

func (cli *Cli) setup(conf *config.Config) (*config.Config, error) {
	if err := logging.Setup(&logging.Config{
		Name:           version.Name,
		Level:          config.StringVal(conf.Lemon.LogLevel),
		Syslog:         config.BoolVal(conf.Lemon.Syslog.Enabled),
		SyslogFacility: config.StringVal(conf.Lemon.Syslog.Facility),
		Writer:         cli.errStream,
	}); err != nil {
		return nil, err
	}
	return conf, nil
}

// Run parses args, builds the first Runner, and loops handling its
// termination, errors, and any caught OS signal until shutdown.
func (cli *Cli) Run(args []string) int {
	cliConfig, prefs, isVersion, err := cli.ParseFlags(args[1:])
	if err != nil {
		if err == flag.ErrHelp {
			fmt.Fprintf(cli.errStream, usage, version.Name)
			return ExitCodeOK
		}
		fmt.Fprintln(cli.errStream, err.Error())
		return ExitCodeParseFlagsError
	}

	if isVersion {
		fmt.Fprintf(cli.errStream, "%s\n", version.HumanVersion())
		return ExitCodeOK
	}

	cfg, err := loadConfigs(*prefs.Paths, config.StringVal(prefs.Section), cliConfig)
	if err != nil {
		return logError(err, ExitCodeConfigError)
	}

	cfg, err = cli.setup(cfg)
	if err != nil {
		return logError(err, ExitCodeConfigError)
	}

	if os.Getenv("DISPLAY") == "" {
		return logError(fmt.Errorf("cli: DISPLAY is not set, refusing to start"), ExitCodeConfigError)
	}

	log.Printf("[INFO] %s", version.HumanVersion())

	runner, err := manager.NewRunner(cfg, prefs)
	if err != nil {
		return logError(err, ExitCodeRunnerError)
	}
	go runner.Start()

	signal.Notify(cli.signalCh)

	for {
		select {
		case err := <-runner.ErrCh:
			runner.Stop()
			code := ExitCodeRunnerError
			if typed, ok := err.(manager.ErrExitable); ok {
				code = typed.ExitStatus()
			}
			return logError(err, code)
		case <-runner.DoneCh:
			runner.Stop()
			return ExitCodeOK
		case s := <-cli.signalCh:
			log.Printf("[DEBUG] (cli) received signal %q", s)
			switch s {
			case signals.SignalLookup["SIGCHLD"]:
				// ignored: children are reaped by their own waiter goroutines.
			default:
				runner.Signal(s)
				if runner.ReloadRequested() {
					fmt.Fprintf(cli.errStream, "Reloading configuration...\n")
					runner.Stop()

					cfg, err = loadConfigs(*prefs.Paths, config.StringVal(prefs.Section), cliConfig)
					if err != nil {
						return logError(err, ExitCodeConfigError)
					}
					cfg, err = cli.setup(cfg)
					if err != nil {
						return logError(err, ExitCodeConfigError)
					}
					runner, err = manager.NewRunner(cfg, prefs)
					if err != nil {
						return logError(err, ExitCodeRunnerError)
					}
					go runner.Start()
				}
			}
		case <-cli.stopCh:
			return ExitCodeOK
		}
	}
}

func (cli *Cli) stop() {
	cli.Lock()
	defer cli.Unlock()
	if cli.stopped {
		return
	}
	close(cli.stopCh)
	cli.stopped = true
}

// ParseFlags parses succade's flag surface into a config.Config overlay
// (CLI-sourced values only) and a config.Prefs (config paths, bar section,
// -e/empty flag), following the teacher's funcVar/funcBoolVar adapter
// pattern unchanged.
func (cli *Cli) ParseFlags(args []string) (*config.Config, config.Prefs, bool, error) {
	var isVersion bool

	c := config.DefaultConfig()
	prefs := config.DefaultPrefs()

	configPaths := make([]string, 0, 4)

	flags := flag.NewFlagSet(version.Name, flag.ContinueOnError)
	flags.SetOutput(ioutil.Discard)
	flags.Usage = func() {}

	flags.Var((funcVar)(func(s string) error {
		expanded, err := homedir.Expand(s)
		if err != nil {
			return err
		}
		configPaths = append(configPaths, expanded)
		return nil
	}), "config", "")

	flags.Var((funcBoolVar)(func(b bool) error {
		prefs.Empty = config.Bool(b)
		return nil
	}), "e", "")

	flags.Var((funcVar)(func(s string) error {
		prefs.Section = config.String(s)
		return nil
	}), "s", "")

	flags.Var((funcVar)(func(s string) error {
		sig, err := signals.Parse(s)
		if err != nil {
			return err
		}
		c.Lemon.KillSignal = config.Signal(sig)
		return nil
	}), "kill-signal", "")

	flags.Var((funcVar)(func(s string) error {
		sig, err := signals.Parse(s)
		if err != nil {
			return err
		}
		c.Lemon.ReloadSignal = config.Signal(sig)
		return nil
	}), "reload-signal", "")

	flags.Var((funcVar)(func(s string) error {
		c.Lemon.LogLevel = config.String(s)
		return nil
	}), "log-level", "")

	flags.Var((funcBoolVar)(func(b bool) error {
		c.Lemon.Syslog.Enabled = config.Bool(b)
		return nil
	}), "syslog", "")

	flags.Var((funcVar)(func(s string) error {
		c.Lemon.Syslog.Facility = config.String(s)
		return nil
	}), "syslog-facility", "")

	flags.Var((funcVar)(func(s string) error {
		expanded, err := homedir.Expand(s)
		if err != nil {
			return err
		}
		c.Lemon.PidFile = config.String(expanded)
		return nil
	}), "pid-file", "")

	flags.BoolVar(&isVersion, "v", false, "")
	flags.BoolVar(&isVersion, "version", false, "")

	if err := flags.Parse(args); err != nil {
		return nil, config.Prefs{}, false, err
	}

	if extra := flags.Args(); len(extra) > 0 {
		return nil, config.Prefs{}, false, fmt.Errorf("cli: extra args: %q", extra)
	}

	prefs.Paths = &configPaths
	prefs.Finalize()

	return c, *prefs, isVersion, nil
}

// loadConfigs loads and merges every -config path (directory or file) into
// one Config, with the CLI overlay taking precedence over the files, the
// way the teacher's loadConfigs layers file config under CLI flags.
func loadConfigs(paths []string, barSection string, cliConfig *config.Config) (*config.Config, error) {
	finalC, err := config.FromPaths(paths, barSection)
	if err != nil {
		return nil, err
	}
	finalC = finalC.Merge(cliConfig)
	finalC.Finalize()
	return finalC, nil
}

func logError(err error, status int) int {
	log.Printf("[ERR] (cli) %s", err)
	return status
}

const usage = `Usage: %s [options]

  Drives a lemonbar-compatible status bar renderer, running configured block
  commands on their schedules and composing their output into the renderer's
  input stream. Runs until an interrupt is received.

Options:

  -config=<path>
      Sets the path to a configuration file or folder on disk. This can be
      specified multiple times to load multiple files or folders. Values are
      merged left-to-right.

  -e
      Run even if no blocks are configured.

  -s=<section>
      Name of the config section describing the bar itself (default "bar").

  -kill-signal=<signal>
      Signal to listen to for graceful termination.

  -reload-signal=<signal>
      Signal to listen to for reloading configuration.

  -log-level=<level>
      Set the logging level - values are "trace", "debug", "info", "warn",
      and "err".

  -pid-file=<path>
      Path on disk to write the PID of the process.

  -syslog
      Send the output to syslog in addition to standard error.

  -syslog-facility=<facility>
      Set the facility where syslog should log.

  -v, -version
      Print the version of this daemon.
`
