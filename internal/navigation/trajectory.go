package navigation

import "iter"

// Snapshot is the agent state recorded after a movement. Index 0 is the
// state before the first movement.
type Snapshot struct {
	Index      int
	Position   Vec2
	HomeVector Vec2
	Heading    float64
	Odometer   float64
}

// Trajectory is the append-only movement log of one agent.
type Trajectory struct {
	snaps []Snapshot
}

func (t *Trajectory) append(s Snapshot) {
	s.Index = len(t.snaps)
	t.snaps = append(t.snaps, s)
}

// Len returns the number of recorded snapshots, including the initial one.
func (t Trajectory) Len() int { return len(t.snaps) }

// At returns the i-th snapshot.
func (t Trajectory) At(i int) Snapshot { return t.snaps[i] }

// Last returns the most recent snapshot.
func (t Trajectory) Last() Snapshot { return t.snaps[len(t.snaps)-1] }

// Positions returns the position sequence.
func (t Trajectory) Positions() []Vec2 {
	out := make([]Vec2, len(t.snaps))
	for i, s := range t.snaps {
		out[i] = s.Position
	}
	return out
}

// HomeVectors returns the home vector sequence, parallel to Positions.
func (t Trajectory) HomeVectors() []Vec2 {
	out := make([]Vec2, len(t.snaps))
	for i, s := range t.snaps {
		out[i] = s.HomeVector
	}
	return out
}

// HomeDistances returns the home vector length at every snapshot.
func (t Trajectory) HomeDistances() []float64 {
	out := make([]float64, len(t.snaps))
	for i, s := range t.snaps {
		out[i] = s.HomeVector.Norm()
	}
	return out
}

// All yields the snapshots in order without copying the log.
func (t Trajectory) All() iter.Seq[Snapshot] {
	return func(yield func(Snapshot) bool) {
		for _, s := range t.snaps {
			if !yield(s) {
				return
			}
		}
	}
}

// Clone returns an independent copy.
func (t Trajectory) Clone() Trajectory {
	c := make([]Snapshot, len(t.snaps))
	copy(c, t.snaps)
	return Trajectory{snaps: c}
}

// NewTrajectory rebuilds a trajectory from stored snapshots. Indices are
// reassigned in order.
func NewTrajectory(snaps []Snapshot) Trajectory {
	var t Trajectory
	for _, s := range snaps {
		t.append(s)
	}
	return t
}
