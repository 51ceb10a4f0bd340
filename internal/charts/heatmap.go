package charts

import (
	"encoding/json"
	"fmt"

	"aqimon/internal/models"
)

// generateHeatmapSnippet builds an ECharts heatmap of current and
// projected values for every successful city: one row per city, one
// column per day.
func (cg *ChartGenerator) generateHeatmapSnippet(report *models.AggregateReport) (ChartSnippet, error) {
	id := "chart-prediction-heatmap"

	var cities []string
	var cells [][]interface{}
	days := 0

	row := 0
	for _, city := range report.Cities {
		if !city.Succeeded() {
			continue
		}
		if len(city.Forecast.Series) > days {
			days = len(city.Forecast.Series)
		}
		cities = append(cities, city.City)
		cells = append(cells, []interface{}{0, row, round1(city.CurrentIndex)})
		for i, v := range city.Forecast.Series {
			cells = append(cells, []interface{}{i + 1, row, round1(v)})
		}
		row++
	}

	if len(cities) == 0 {
		return ChartSnippet{}, fmt.Errorf("no successful cities for heatmap")
	}

	columns := make([]string, days+1)
	columns[0] = "Today"
	for i := 1; i <= days; i++ {
		columns[i] = fmt.Sprintf("Day %d", i)
	}

	option := map[string]interface{}{
		"tooltip": map[string]interface{}{
			"position": "top",
		},
		"grid": map[string]interface{}{
			"height": "60%",
			"top":    "10%",
		},
		"xAxis": map[string]interface{}{
			"type": "category",
			"data": columns,
			"splitArea": map[string]interface{}{
				"show": true,
			},
		},
		"yAxis": map[string]interface{}{
			"type": "category",
			"data": cities,
			"splitArea": map[string]interface{}{
				"show": true,
			},
		},
		"visualMap": map[string]interface{}{
			"min":        0,
			"max":        500,
			"calculable": true,
			"orient":     "horizontal",
			"left":       "center",
			"bottom":     "5%",
			"inRange": map[string]interface{}{
				// Band colors from green through maroon
				"color": []string{"#00e400", "#ffff00", "#ff7e00", "#ff0000", "#8f3f97", "#7e0023"},
			},
		},
		"series": []interface{}{
			map[string]interface{}{
				"name": "AQI",
				"type": "heatmap",
				"data": cells,
				"label": map[string]interface{}{
					"show": true,
				},
				"emphasis": map[string]interface{}{
					"itemStyle": map[string]interface{}{
						"shadowBlur":  10,
						"shadowColor": "rgba(0, 0, 0, 0.5)",
					},
				},
			},
		},
	}

	optJSON, err := json.Marshal(option)
	if err != nil {
		return ChartSnippet{}, err
	}

	div := fmt.Sprintf("<div id=\"%s\" style=\"width:100%%;height:400px;\"></div>", id)
	script := fmt.Sprintf(`<script>(function(){var el=document.getElementById('%s');if(!el)return;var c=echarts.init(el);var option=%s;c.setOption(option);window.addEventListener('resize',function(){c.resize();});})();</script>`, id, string(optJSON))

	completeHTML := fmt.Sprintf(`<div class="chart-item">
	<h4>AQI Prediction Heatmap</h4>
	%s
</div>
%s`, div, script)

	return ChartSnippet{ID: id, Title: "AQI Prediction Heatmap", Div: div, Script: script, HTML: completeHTML}, nil
}

// round1 rounds to one decimal place for heatmap cell labels
func round1(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}
