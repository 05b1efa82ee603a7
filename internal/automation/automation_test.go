package automation

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/antnav/internal/config"
	"github.com/san-kum/antnav/internal/experiment"
	"github.com/san-kum/antnav/internal/navigation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const scenarioYAML = `
name: morning
description: two runs under a low sun
steps:
  - name: east
    preset: straight
    sun_azimuth: 10
    seed: 3
  - preset: sunward
    noise: 0
    seed: 4
    step_size: 2.5
  - moves:
      - {turn: 0, distance: 4}
      - {turn: 90, distance: 3}
    seed: 5
`

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadScenario(t *testing.T) {
	sc, err := LoadScenario(writeScenario(t, scenarioYAML))
	require.NoError(t, err)

	assert.Equal(t, "morning", sc.Name)
	require.Len(t, sc.Steps, 3)
	require.NotNil(t, sc.Steps[0].SunAzimuth)
	assert.Equal(t, 10.0, *sc.Steps[0].SunAzimuth)
	require.NotNil(t, sc.Steps[1].Noise)
	assert.Zero(t, *sc.Steps[1].Noise)
	assert.Nil(t, sc.Steps[2].Noise)
}

func TestScenarioStepConfig(t *testing.T) {
	sc, err := LoadScenario(writeScenario(t, scenarioYAML))
	require.NoError(t, err)

	cfg, err := sc.Steps[1].Config()
	require.NoError(t, err)
	assert.Equal(t, "sunward", cfg.Name)
	assert.Equal(t, config.ModeCompass, cfg.Mode)
	assert.Zero(t, cfg.Noise, "explicit zero noise must override the preset")
	assert.Equal(t, 2.5, cfg.StepSize)

	_, err = ScenarioStep{Preset: "missing"}.Config()
	assert.Error(t, err)

	_, err = ScenarioStep{StepSize: -1}.Config()
	assert.True(t, errors.Is(err, navigation.ErrInvalidConfiguration))
}

func TestRunScenario(t *testing.T) {
	sc, err := LoadScenario(writeScenario(t, scenarioYAML))
	require.NoError(t, err)

	results, err := RunScenario(context.Background(), sc, zap.NewNop())
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "east", results[0].Config.Name)
	assert.Equal(t, 10, results[0].Summary.StepsToHome)
	assert.InDelta(t, 5, results[2].Trajectory.At(2).Position.Sub(results[2].Trajectory.At(0).Position).Norm(), 1e-9)
	for _, r := range results {
		assert.Equal(t, navigation.PhaseArrived, r.Summary.Phase)
	}
}

func TestRunSweep(t *testing.T) {
	base := experiment.FromConfig(config.GetPreset("comparison"))
	base.Mode = config.ModeCompass
	base.Seed = 100

	sweep := &NoiseSweep{Base: base, Levels: []float64{0.01, 0.05, 0.1, 0.2}, Workers: 2}
	points, err := RunSweep(context.Background(), sweep, zap.NewNop())
	require.NoError(t, err)
	require.Len(t, points, 4)

	for i, p := range points {
		assert.Equal(t, sweep.Levels[i], p.Noise)
		assert.EqualValues(t, 100+i, p.Seed)
		assert.LessOrEqual(t, p.FinalError, navigation.ArrivalThreshold+1e-9)
		assert.Positive(t, p.TotalDistance)
		assert.Equal(t, p.Result.Summary.StepsToHome, p.Steps)
	}

	again, err := RunSweep(context.Background(), sweep, zap.NewNop())
	require.NoError(t, err)
	for i := range points {
		assert.Equal(t, points[i].FinalError, again[i].FinalError, "sweep must be reproducible per seed")
	}
}

func TestRunSweep_PropagatesErrors(t *testing.T) {
	base := experiment.FromConfig(config.GetPreset("simple"))
	base.Seed = 1

	_, err := RunSweep(context.Background(), &NoiseSweep{Base: base, Levels: []float64{0.1, -0.5}}, zap.NewNop())
	assert.ErrorIs(t, err, navigation.ErrInvalidConfiguration)
}
