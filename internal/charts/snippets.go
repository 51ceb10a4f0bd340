package charts

import (
	"github.com/wcharczuk/go-chart/v2/drawing"

	"aqimon/internal/aqi"
)

// ChartSnippet represents an embeddable ECharts chart fragment.
// Div contains a single root <div id="..."></div>, Script the <script>
// block that initializes the chart in that div, and HTML the complete
// snippet ready for template substitution.
type ChartSnippet struct {
	ID     string
	Title  string
	Div    string
	Script string
	HTML   string
}

// echartsCDN is the script tag loading the ECharts runtime
const echartsCDN = `<script src="https://cdn.jsdelivr.net/npm/echarts@5.4.3/dist/echarts.min.js"></script>`

// bandColor returns the hex color token for an index value
func bandColor(value float64) string {
	return aqi.Color(value)
}

// bandDrawingColor converts a band's hex color into a go-chart color.
// The Unknown sentinel's "gray" token maps to a neutral gray.
func bandDrawingColor(value float64) drawing.Color {
	hex := bandColor(value)
	if len(hex) != 7 || hex[0] != '#' {
		return drawing.Color{R: 128, G: 128, B: 128, A: 255}
	}
	return drawing.Color{
		R: hexByte(hex[1], hex[2]),
		G: hexByte(hex[3], hex[4]),
		B: hexByte(hex[5], hex[6]),
		A: 255,
	}
}

func hexByte(hi, lo byte) uint8 {
	return hexNibble(hi)<<4 | hexNibble(lo)
}

func hexNibble(b byte) uint8 {
	switch {
	case b >= '0' && b <= '9':
		return b - '0'
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10
	default:
		return 0
	}
}
