package models

import "encoding/json"

// WAQIResponse represents the WAQI city feed JSON response.
// The API returns {"status":"ok","data":{...}} on success and
// {"status":"error","data":"<message>"} on failure, so Data is kept raw
// until the status is known.
type WAQIResponse struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
}

// WAQICityData is the data payload for a successful city feed response
type WAQICityData struct {
	AQI  AQIValue `json:"aqi"` // Occasionally "-" for stations with no data
	Idx  int      `json:"idx"`
	City WAQICity `json:"city"`
	Time WAQITime `json:"time"`
	// Dominant pollutant, e.g. "pm25"
	DominentPol string `json:"dominentpol"`
}

// AQIValue decodes the feed's aqi field, which is a number for live
// stations and a placeholder string (usually "-") for offline ones.
type AQIValue struct {
	Value float64
	Valid bool
}

// UnmarshalJSON implements json.Unmarshaler
func (a *AQIValue) UnmarshalJSON(data []byte) error {
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		a.Value = num
		a.Valid = true
		return nil
	}
	// Placeholder strings decode as not-valid rather than failing the
	// whole payload
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	a.Value = 0
	a.Valid = false
	return nil
}

// WAQICity identifies the reporting station
type WAQICity struct {
	Name string    `json:"name"`
	URL  string    `json:"url"`
	Geo  []float64 `json:"geo"`
}

// WAQITime is the measurement timestamp block
type WAQITime struct {
	S  string `json:"s"` // "2006-01-02 15:04:05" local to the station
	TZ string `json:"tz"`
	V  int64  `json:"v"` // Unix epoch
}
