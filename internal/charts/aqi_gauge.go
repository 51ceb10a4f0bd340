package charts

import (
	"encoding/json"
	"fmt"

	"aqimon/internal/aqi"
	"aqimon/internal/models"
)

// generateGaugeSnippet builds an ECharts gauge for a city's current AQI.
// The gauge arc is split into the six severity bands with their display
// colors.
func (cg *ChartGenerator) generateGaugeSnippet(city models.CityReport) (ChartSnippet, error) {
	id := "chart-aqi-gauge"
	value := city.CurrentIndex

	// Band boundaries as fractions of the 0-500 scale
	bandStops := make([][]interface{}, len(aqi.Bands))
	for i, band := range aqi.Bands {
		bandStops[i] = []interface{}{band.High / aqi.MaxIndex, band.Color}
	}

	option := map[string]interface{}{
		"tooltip": map[string]interface{}{
			"formatter": "{a} <br/>{b} : {c}",
		},
		"series": []interface{}{
			map[string]interface{}{
				"name":        "AQI",
				"type":        "gauge",
				"min":         0,
				"max":         500,
				"splitNumber": 10,
				"radius":      "80%",
				"axisLine": map[string]interface{}{
					"lineStyle": map[string]interface{}{
						"width": 20,
						"color": bandStops,
					},
				},
				"pointer": map[string]interface{}{
					"itemStyle": map[string]interface{}{
						"color": "auto",
					},
				},
				"axisTick": map[string]interface{}{
					"distance": -20,
					"length":   8,
					"lineStyle": map[string]interface{}{
						"color": "#fff",
						"width": 2,
					},
				},
				"splitLine": map[string]interface{}{
					"distance": -20,
					"length":   20,
					"lineStyle": map[string]interface{}{
						"color": "#fff",
						"width": 3,
					},
				},
				"axisLabel": map[string]interface{}{
					"color":    "inherit",
					"fontSize": 12,
					"distance": 30,
				},
				"detail": map[string]interface{}{
					"valueAnimation": true,
					"formatter":      fmt.Sprintf("%.0f\n%s", value, city.Category.Label),
					"color":          "inherit",
					"fontSize":       14,
					"fontWeight":     "bold",
					"offsetCenter":   []interface{}{0, "60%"},
				},
				"data": []interface{}{
					map[string]interface{}{
						"value": value,
						"name":  city.City,
					},
				},
			},
		},
	}

	optJSON, err := json.Marshal(option)
	if err != nil {
		return ChartSnippet{}, err
	}

	div := fmt.Sprintf("<div id=\"%s\" style=\"width:100%%;height:300px;\"></div>", id)
	script := fmt.Sprintf(`<script>(function(){var el=document.getElementById('%s');if(!el)return;var c=echarts.init(el);var option=%s;c.setOption(option);window.addEventListener('resize',function(){c.resize();});})();</script>`, id, string(optJSON))

	completeHTML := fmt.Sprintf(`%s
<div class="gauge-item">
	<h4>Current AQI: %s</h4>
	%s
</div>
%s`, echartsCDN, city.City, div, script)

	return ChartSnippet{ID: id, Title: "AQI Gauge", Div: div, Script: script, HTML: completeHTML}, nil
}
