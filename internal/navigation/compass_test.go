package navigation

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

func TestNewSunCompass_InvalidNoise(t *testing.T) {
	for _, noise := range []float64{-0.01, -1, math.NaN()} {
		_, err := NewSunCompass(noise, nil)
		if !errors.Is(err, ErrInvalidConfiguration) {
			t.Errorf("noise %v: expected ErrInvalidConfiguration, got %v", noise, err)
		}
	}
}

func TestSunCompass_NoiselessReading(t *testing.T) {
	c, err := NewSunCompass(0, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("new compass: %v", err)
	}
	c.SetSunPosition(90)

	for i := 0; i < 20; i++ {
		r := c.Sample()
		if math.Abs(r.Angle-math.Pi/2) > 1e-12 {
			t.Fatalf("sample %d: angle %v, want π/2", i, r.Angle)
		}
	}
}

func TestSunCompass_SampleIsOneDraw(t *testing.T) {
	c, err := NewSunCompass(0.3, rand.New(rand.NewSource(99)))
	if err != nil {
		t.Fatalf("new compass: %v", err)
	}
	c.SetSunPosition(45)

	for i := 0; i < 100; i++ {
		r := c.Sample()
		if r.Vector.X != math.Cos(r.Angle) || r.Vector.Y != math.Sin(r.Angle) {
			t.Fatalf("sample %d: vector %v does not match angle %v", i, r.Vector, r.Angle)
		}
	}
}

func TestSunCompass_SeededReproducible(t *testing.T) {
	a, _ := NewSunCompass(0.2, rand.New(rand.NewSource(42)))
	b, _ := NewSunCompass(0.2, rand.New(rand.NewSource(42)))
	a.Calibrate(-30)
	b.SetSunPosition(-30)

	for i := 0; i < 50; i++ {
		ra, rb := a.Sample(), b.Sample()
		if ra != rb {
			t.Fatalf("sample %d differs: %v vs %v", i, ra, rb)
		}
	}
}

func TestSunCompass_NoiseSpread(t *testing.T) {
	c, _ := NewSunCompass(0.1, rand.New(rand.NewSource(3)))
	c.SetSunPosition(0)

	const n = 5000
	var sum, sumSq float64
	for i := 0; i < n; i++ {
		a := c.Sample().Angle
		sum += a
		sumSq += a * a
	}
	mean := sum / n
	std := math.Sqrt(sumSq/n - mean*mean)

	if math.Abs(mean) > 0.01 {
		t.Errorf("mean error %v, expected near 0", mean)
	}
	if math.Abs(std-0.1) > 0.01 {
		t.Errorf("stddev %v, expected near 0.1", std)
	}
}

func TestSunCompass_LargeAzimuthWraps(t *testing.T) {
	c, _ := NewSunCompass(0, nil)
	c.SetSunPosition(450)
	r := c.Sample()
	if math.Abs(r.Vector.X) > 1e-12 || math.Abs(r.Vector.Y-1) > 1e-12 {
		t.Errorf("450° should point north, got %v", r.Vector)
	}
}
