package scope

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Summary aggregates the detections recorded across a batch for the report's
// summary block.
type Summary struct {
	Count       int     `json:"count"`
	MeanRange   float64 `json:"mean_range"`
	MinRange    float64 `json:"min_range"`
	MaxRange    float64 `json:"max_range"`
	RangeStdDev float64 `json:"range_std_dev"`

	// MeanAzimuth is the circular mean in degrees [0, 360). A plain
	// arithmetic mean of bearings near north would land around 180.
	MeanAzimuth float64 `json:"mean_azimuth"`
}

// Summarize computes range and azimuth statistics over recorded detections.
// An empty slice yields a zero Summary.
func Summarize(detections []Detection) Summary {
	if len(detections) == 0 {
		return Summary{}
	}

	ranges := make([]float64, len(detections))
	var sinSum, cosSum float64
	for i, d := range detections {
		ranges[i] = d.RangeUnits
		rad := d.AzimuthDegrees * math.Pi / 180
		sinSum += math.Sin(rad)
		cosSum += math.Cos(rad)
	}

	s := Summary{
		Count:     len(detections),
		MeanRange: stat.Mean(ranges, nil),
		MinRange:  ranges[0],
		MaxRange:  ranges[0],
	}
	if len(ranges) > 1 {
		s.RangeStdDev = stat.StdDev(ranges, nil)
	}
	for _, r := range ranges[1:] {
		if r < s.MinRange {
			s.MinRange = r
		}
		if r > s.MaxRange {
			s.MaxRange = r
		}
	}

	mean := math.Atan2(sinSum, cosSum) * 180 / math.Pi
	if mean < 0 {
		mean += 360
	}
	s.MeanAzimuth = mean

	return s
}
