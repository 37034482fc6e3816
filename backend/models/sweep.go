// ABOUTME: Data models for capacity sweeps across a range of user counts
// ABOUTME: Each point carries the headline series for both fabric designs

package models

// SweepRequest asks for comparisons at From, From+Step, ... up to and including To.
type SweepRequest struct {
	Config NetworkConfig `json:"config"`
	From   int           `json:"from"`
	To     int           `json:"to"`
	Step   int           `json:"step"`
}

// SeriesValue is one design's headline figures at a sweep point
type SeriesValue struct {
	Possible      bool    `json:"possible"`
	TotalSwitches int     `json:"total_switches"`
	TotalCables   int     `json:"total_cables"`
	TotalPower    float64 `json:"total_power"`
	PowerPerPort  float64 `json:"power_per_port"`
	UserCapacity  int     `json:"user_capacity"`
	AvgHops       float64 `json:"avg_hops"`
}

// SweepPoint is the comparison at one requested user count
type SweepPoint struct {
	NumUsers int         `json:"num_users"`
	Clos     SeriesValue `json:"clos"`
	Mesh     SeriesValue `json:"mesh"`
}

// SweepResponse lists points in ascending NumUsers order
type SweepResponse struct {
	Config NetworkConfig `json:"config"`
	Points []SweepPoint  `json:"points"`
}

// NewSeriesValue extracts the sweep series from a sizing result
func NewSeriesValue(m TopologyMetrics) SeriesValue {
	return SeriesValue{
		Possible:      m.Possible,
		TotalSwitches: m.TotalSwitches,
		TotalCables:   m.TotalCables,
		TotalPower:    m.TotalPower,
		PowerPerPort:  m.PowerPerPort(),
		UserCapacity:  m.UserCapacity,
		AvgHops:       m.AvgHops,
	}
}
