package bar

import (
	"github.com/succade-go/succade/config"
	"github.com/succade-go/succade/process"
)

// Lemon is the runtime counterpart of config.LemonConfig: the renderer's
// static settings plus the one mutable field the rest of the system needs,
// its supervised ChildID once spawned.
type Lemon struct {
	Cfg *config.LemonConfig

	ChildID process.ChildID
	Alive   bool
}

// NewLemon wraps a finalized LemonConfig for runtime use. The renderer
// itself isn't spawned here - manager.Runner does that once its Supervisor
// exists - this only carries the static settings forward.
func NewLemon(cfg *config.LemonConfig) *Lemon {
	return &Lemon{Cfg: cfg}
}
