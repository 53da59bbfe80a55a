package manager

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/succade-go/succade/config"
)

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Lemon.Bin = config.String("true")
	cfg.Lemon.Format = config.String("clock")
	cfg.Blocks["clock"] = &config.BlockConfig{
		Bin:    config.String("echo"),
		Mode:   modePtr(config.ModeTimed),
		Reload: config.Float64(0.05),
	}
	cfg.Finalize()
	return cfg
}

func modePtr(m config.Mode) *config.Mode { return &m }

// renderer death: per the testable property "renderer death" from the
// spec, an exited renderer must stop the loop rather than spin forever.
func TestRunnerRendererDeathStopsLoop(t *testing.T) {
	cfg := testConfig()
	r, err := NewRunner(cfg, config.Prefs{Empty: config.Bool(true)})
	require.NoError(t, err)

	go r.Start()

	select {
	case <-r.DoneCh:
	case err := <-r.ErrCh:
		t.Fatalf("unexpected error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("runner did not stop after renderer exited")
	}
}

func TestNewRunnerRejectsEmptyWithoutFlag(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Lemon.Bin = config.String("true")
	cfg.Lemon.Format = config.String("")
	cfg.Finalize()

	_, err := NewRunner(cfg, config.Prefs{})
	assert.Error(t, err)
}
