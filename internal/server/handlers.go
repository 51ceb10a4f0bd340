package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"aqimon/internal/config"
	"aqimon/internal/logger"
	"aqimon/internal/reports"
	"aqimon/internal/storage"
)

// HandleRoot redirects to the latest stored report, or shows a landing
// page when none exist yet
func (s *Server) HandleRoot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	latest, err := s.findLatestReportURL(r.Context())
	if err != nil {
		s.serveInitialPage(w)
		return
	}

	w.Header().Set("Location", latest)
	w.WriteHeader(http.StatusFound)
}

// serveInitialPage shows a landing page when no reports exist
func (s *Server) serveInitialPage(w http.ResponseWriter) {
	pageMarkdown := fmt.Sprintf(`# Air Quality Monitor

No reports generated yet. POST to `+"`/generate`"+` to create the first one.

Version %s`, config.GetVersion())

	w.Header().Set("Content-Type", "text/html")
	fmt.Fprintf(w, "<html><body>%s</body></html>", reports.MarkdownToHTMLFragment(pageMarkdown))
}

// HandleHealth provides a health check endpoint
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	health := map[string]interface{}{
		"status":    "healthy",
		"version":   config.GetVersion(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(health)
}

// HandleCity returns the report for a single city as JSON
func (s *Server) HandleCity(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	city := r.URL.Query().Get("name")
	if strings.TrimSpace(city) == "" {
		http.Error(w, "Query parameter 'name' is required", http.StatusBadRequest)
		return
	}

	report := s.Builder.BuildReport(r.Context(), city)

	w.Header().Set("Content-Type", "application/json")
	if !report.Succeeded() {
		w.WriteHeader(http.StatusBadGateway)
	}
	json.NewEncoder(w).Encode(report)
}

// HandleGenerate generates a new aggregate report. Only one generation
// runs at a time; concurrent requests get 409.
func (s *Server) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if !s.generateMutex.TryLock() {
		s.log.Warn("Report generation already in progress, rejecting request", nil)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error":  "Report generation already in progress",
			"status": "conflict",
		})
		return
	}
	defer s.generateMutex.Unlock()

	cities := s.Config.DefaultCities
	if requested := r.URL.Query().Get("cities"); requested != "" {
		cities = splitCities(requested)
	}

	s.log.Info("Starting report generation", logger.Fields{"cities": len(cities)})

	report, folder, err := s.Generator.GenerateAndPersist(r.Context(), cities)
	if err != nil {
		s.log.Error("Report generation failed", err, nil)
		http.Error(w, "Report generation failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "ok",
		"report":  fmt.Sprintf("/reports/%s/index.html", folder),
		"summary": report.Summary,
	})
}

// HandleFileProxy serves report files through the storage client
func (s *Server) HandleFileProxy(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	filePath := strings.TrimPrefix(r.URL.Path, "/reports/")
	if filePath == "" {
		http.Error(w, "File path required", http.StatusBadRequest)
		return
	}
	if strings.Contains(filePath, "..") {
		http.Error(w, "Invalid file path", http.StatusBadRequest)
		return
	}

	fileData, err := s.Storage.GetFile(r.Context(), filePath)
	if err != nil {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", storage.GetContentType(filePath))
	w.Write(fileData)
}

// HandleListReports lists recent reports as JSON
func (s *Server) HandleListReports(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	limit := 10
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if limit > 100 {
		limit = 100
	}

	reportList, err := s.Storage.ListReports(r.Context(), limit)
	if err != nil {
		s.log.Error("Failed to list reports", err, nil)
		http.Error(w, "Failed to list reports: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"reports":   reportList,
		"count":     len(reportList),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// findLatestReportURL returns the proxy URL of the newest report
func (s *Server) findLatestReportURL(ctx context.Context) (string, error) {
	reportList, err := s.Storage.ListReports(ctx, 1)
	if err != nil || len(reportList) == 0 {
		return "", fmt.Errorf("no reports available")
	}
	return fmt.Sprintf("/reports/%s", reportList[0]), nil
}

// splitCities parses a semicolon or comma separated city list
func splitCities(raw string) []string {
	seps := func(r rune) bool { return r == ';' || r == ',' }
	fields := strings.FieldsFunc(raw, seps)

	var cities []string
	for _, f := range fields {
		if trimmed := strings.TrimSpace(f); trimmed != "" {
			cities = append(cities, trimmed)
		}
	}
	return cities
}
