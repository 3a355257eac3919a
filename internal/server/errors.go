package server

import (
	"encoding/json"
	"log"
	"net/http"
)

// ErrorResponse is the JSON body for error replies.
type ErrorResponse struct {
	Error string `json:"error"`
}

// jsonResponse writes a JSON response with the given status.
func (s *Server) jsonResponse(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// errorResponse writes a JSON error with the given status.
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, ErrorResponse{Error: message})
}
