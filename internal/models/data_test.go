package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestCityReportSucceeded(t *testing.T) {
	success := CityReport{City: "Delhi", Status: StatusSuccess}
	if !success.Succeeded() {
		t.Error("success-tagged report should report Succeeded")
	}

	failure := CityReport{City: "Atlantis", Status: StatusFailure, Error: "not found"}
	if failure.Succeeded() {
		t.Error("failure-tagged report should not report Succeeded")
	}
}

func TestAggregateReportFor(t *testing.T) {
	report := AggregateReport{
		Timestamp: time.Now(),
		Cities: []CityReport{
			{City: "Delhi", Status: StatusSuccess, CurrentIndex: 180},
			{City: "Oslo", Status: StatusFailure, Error: "timeout"},
		},
	}

	entry, ok := report.ReportFor("Oslo")
	if !ok {
		t.Fatal("expected Oslo entry to be present")
	}
	if entry.Status != StatusFailure {
		t.Errorf("expected failure status, got %s", entry.Status)
	}

	if _, ok := report.ReportFor("Paris"); ok {
		t.Error("unexpected entry for city that was never requested")
	}
}

func TestWAQIResponseUnmarshal(t *testing.T) {
	body := `{"status":"ok","data":{"aqi":42,"idx":1437,"city":{"name":"Delhi","geo":[28.6,77.2]},"time":{"s":"2026-08-30 10:00:00","tz":"+05:30","v":1787040000},"dominentpol":"pm25"}}`

	var resp WAQIResponse
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}

	if resp.Status != "ok" {
		t.Errorf("expected status ok, got %s", resp.Status)
	}

	var data WAQICityData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		t.Fatalf("failed to unmarshal data payload: %v", err)
	}

	if !data.AQI.Valid {
		t.Fatal("aqi should be a valid numeric reading")
	}
	if data.AQI.Value != 42 {
		t.Errorf("expected aqi 42, got %v", data.AQI.Value)
	}
	if data.City.Name != "Delhi" {
		t.Errorf("expected city Delhi, got %s", data.City.Name)
	}
}

func TestAQIValuePlaceholder(t *testing.T) {
	var v AQIValue
	if err := json.Unmarshal([]byte(`"-"`), &v); err != nil {
		t.Fatalf("placeholder should decode without error: %v", err)
	}
	if v.Valid {
		t.Error("placeholder reading should not be valid")
	}
}

func TestWAQIErrorResponseKeepsRawData(t *testing.T) {
	body := `{"status":"error","data":"Unknown station"}`

	var resp WAQIResponse
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		t.Fatalf("failed to unmarshal error response: %v", err)
	}

	if resp.Status != "error" {
		t.Errorf("expected status error, got %s", resp.Status)
	}

	var msg string
	if err := json.Unmarshal(resp.Data, &msg); err != nil {
		t.Fatalf("error payload should be a string: %v", err)
	}
	if msg != "Unknown station" {
		t.Errorf("unexpected error payload: %s", msg)
	}
}
