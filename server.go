package main

import (
	"encoding/json"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/glucoview/meterlink/fslite"
)

// Server handles incoming HTTP requests for reading out the connected
// meter session
type Server struct {
	Logger *slog.Logger
	Device *fslite.Device
}

// ServeHTTP implements the http.Handler interface for the Server struct
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /info", s.handleInfo)
	mux.HandleFunc("GET /readings", s.handleReadings)
	mux.ServeHTTP(w, r)
}

func (s *Server) sendError(w http.ResponseWriter, message string, statusCode int) {
	if message == "" {
		w.WriteHeader(statusCode)
		return
	}

	type ErrorResponse struct {
		Message string `json:"message"`
	}
	resp := ErrorResponse{Message: message}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(resp)

}

// handleInfo serves the device metadata captured at connect time
func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	info, err := s.Device.MeterInfo()
	if err != nil {
		s.Logger.Error("Failed to read meter info", "error", err)
		s.sendError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	type InfoResponse struct {
		Version          string    `json:"version"`
		SoftwareRevision string    `json:"software_revision"`
		SerialNumber     string    `json:"serial_number"`
		Unit             string    `json:"unit"`
		Clock            time.Time `json:"clock"`
		ResultCount      int       `json:"result_count"`
	}
	resp := InfoResponse{
		Version:          info.Version,
		SoftwareRevision: info.SoftwareRevision,
		SerialNumber:     info.SerialNumber,
		Unit:             info.Unit.String(),
		Clock:            info.Clock,
		ResultCount:      info.ResultCount,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// handleReadings serves the stored measurements in device log order
func (s *Server) handleReadings(w http.ResponseWriter, r *http.Request) {
	readings, err := s.Device.Readings()
	if err != nil {
		s.Logger.Error("Failed to read measurements", "error", err)
		s.sendError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	// A saturated reading is +Inf, which JSON cannot carry as a
	// number; it is sent as a null value with the saturated flag set.
	type ReadingResponse struct {
		Timestamp time.Time `json:"timestamp"`
		Value     *float64  `json:"value"`
		Saturated bool      `json:"saturated"`
		TypeCode  string    `json:"type_code"`
	}

	resp := make([]ReadingResponse, 0, len(readings))
	for _, reading := range readings {
		out := ReadingResponse{
			Timestamp: reading.Timestamp,
			TypeCode:  reading.TypeCode,
		}
		if math.IsInf(reading.Value, 1) {
			out.Saturated = true
		} else {
			value := reading.Value
			out.Value = &value
		}
		resp = append(resp, out)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
