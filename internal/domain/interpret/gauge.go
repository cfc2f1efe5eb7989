package interpret

// Band is a closed sub-interval of [0,100] drawn in one color. Colors are
// opaque tokens handed to the renderer verbatim.
type Band struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Color string  `json:"color"`
}

// Threshold is the marker drawn at the client's percentage.
type Threshold struct {
	Value     float64 `json:"value"`
	Color     string  `json:"color"`
	Width     int     `json:"width"`
	Thickness float64 `json:"thickness"`
}

// Tick is a labelled axis position.
type Tick struct {
	Value float64 `json:"value"`
	Label string  `json:"label"`
}

// Gauge color tokens.
const (
	ColorVeryLow  = "#f13c0b"
	ColorLow      = "#fe7900"
	ColorModerate = "#ffcf15"
	ColorHigh     = "#88c817"
	ColorExcel    = "#01bf11"
	ColorDivider  = "#fffef5"
)

const (
	thresholdColor     = "grey"
	thresholdWidth     = 4
	thresholdThickness = 0.8
)

// Dividers are exactly 1 point wide and centered on each tier threshold.
var bands = []Band{
	{0, 19.5, ColorVeryLow},
	{19.5, 20.5, ColorDivider},
	{20.5, 39.5, ColorLow},
	{39.5, 40.5, ColorDivider},
	{40.5, 59.5, ColorModerate},
	{59.5, 60.5, ColorDivider},
	{60.5, 79.5, ColorHigh},
	{79.5, 80.5, ColorDivider},
	{80.5, 100, ColorExcel},
}

// Bands returns the nine gauge bands in ascending order.
func Bands() []Band {
	out := make([]Band, len(bands))
	copy(out, bands)
	return out
}

// Ticks returns the axis ticks 0%..100% in steps of 20.
func Ticks() []Tick {
	return []Tick{
		{0, "0%"}, {20, "20%"}, {40, "40%"}, {60, "60%"}, {80, "80%"}, {100, "100%"},
	}
}

func thresholdAt(pct float64) Threshold {
	return Threshold{Value: pct, Color: thresholdColor, Width: thresholdWidth, Thickness: thresholdThickness}
}
