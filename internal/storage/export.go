package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/antnav/internal/navigation"
)

type ExportPoint struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	HX       float64 `json:"hx"`
	HY       float64 `json:"hy"`
	Heading  float64 `json:"heading"`
	Odometer float64 `json:"odometer"`
}

type ExportData struct {
	Run    RunMetadata   `json:"run"`
	Steps  int           `json:"steps"`
	Points []ExportPoint `json:"points"`
}

// ExportJSON writes run metadata together with the full trajectory.
func ExportJSON(w io.Writer, meta *RunMetadata, tr navigation.Trajectory) error {
	data := ExportData{
		Run:    *meta,
		Steps:  tr.Len(),
		Points: make([]ExportPoint, 0, tr.Len()),
	}

	for s := range tr.All() {
		data.Points = append(data.Points, ExportPoint{
			X:        s.Position.X,
			Y:        s.Position.Y,
			HX:       s.HomeVector.X,
			HY:       s.HomeVector.Y,
			Heading:  s.Heading,
			Odometer: s.Odometer,
		})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
