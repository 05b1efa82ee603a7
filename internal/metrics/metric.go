package metrics

import "github.com/san-kum/antnav/internal/navigation"

// Metric accumulates a single value over the moves of a run. Metrics also
// satisfy navigation.Observer so they can be attached to a controller.
type Metric interface {
	Name() string
	Observe(phase navigation.Phase, s navigation.Snapshot)
	Value() float64
	Reset()
}

// Observer adapts a Metric to navigation.Observer.
func Observer(m Metric) navigation.Observer {
	return navigation.ObserverFunc(m.Observe)
}

// Defaults returns the metrics recorded for every run.
func Defaults() []Metric {
	return []Metric{
		NewMaxExcursion(),
		NewHomingError(),
		NewMeanHeadingChange(),
		NewHomingDistance(),
	}
}

// Collect reads every metric into a map keyed by name.
func Collect(ms []Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}
