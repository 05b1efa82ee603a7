package navigation

import (
	"fmt"
	"math"
	"math/rand"
	"time"
)

// Reading is one noisy observation of the sun bearing. Angle and Vector come
// from the same noise draw.
type Reading struct {
	Angle  float64
	Vector Vec2
}

// SunCompass models a polarized-light compass. It holds the true sun azimuth
// and only ever hands out noisy readings of it.
type SunCompass struct {
	noise   float64
	azimuth float64
	rng     *rand.Rand
}

// NewSunCompass creates a compass with Gaussian reading error of standard
// deviation noise (radians). A nil rng gets a private clock-seeded source.
func NewSunCompass(noise float64, rng *rand.Rand) (*SunCompass, error) {
	if noise < 0 || math.IsNaN(noise) {
		return nil, fmt.Errorf("%w: noise level must be non-negative, got %f", ErrInvalidConfiguration, noise)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &SunCompass{noise: noise, rng: rng}, nil
}

// SetSunPosition sets the true sun azimuth in degrees. Any value is accepted;
// it wraps naturally through the trigonometry downstream.
func (c *SunCompass) SetSunPosition(azimuthDeg float64) {
	c.azimuth = Radians(azimuthDeg)
}

// Calibrate sets a known sun azimuth in degrees. It behaves exactly like
// SetSunPosition.
func (c *SunCompass) Calibrate(knownAzimuthDeg float64) {
	c.SetSunPosition(knownAzimuthDeg)
}

// Sample takes one reading: a single draw from N(0, noise) added to the true
// azimuth.
func (c *SunCompass) Sample() Reading {
	angle := c.azimuth + c.rng.NormFloat64()*c.noise
	return Reading{Angle: angle, Vector: Unit(angle)}
}

// NoiseLevel returns the standard deviation of the reading error.
func (c *SunCompass) NoiseLevel() float64 { return c.noise }
