package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/antnav/internal/config"
	"github.com/san-kum/antnav/internal/navigation"
)

// Forager runs the foraging phase of a run in one particular way.
type Forager func(ctrl *navigation.Controller, moves []navigation.Move) error

type Registry struct {
	foragers map[string]Forager
}

func NewRegistry() *Registry {
	r := &Registry{foragers: make(map[string]Forager)}

	r.foragers[config.ModeTurn] = func(ctrl *navigation.Controller, moves []navigation.Move) error {
		return ctrl.ExecuteForagingRun(moves)
	}
	r.foragers[config.ModeCompass] = func(ctrl *navigation.Controller, moves []navigation.Move) error {
		return ctrl.ExecuteCompassRun(moves)
	}

	return r
}

func (r *Registry) GetForager(mode string) (Forager, error) {
	fn, ok := r.foragers[mode]
	if !ok {
		return nil, fmt.Errorf("unknown foraging mode: %s", mode)
	}
	return fn, nil
}

func (r *Registry) ListModes() []string {
	names := make([]string, 0, len(r.foragers))
	for name := range r.foragers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
