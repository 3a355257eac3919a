package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/jonathan/resume-matcher/internal/extraction"
	"github.com/jonathan/resume-matcher/internal/types"
)

// handleAnalyze runs the analysis pipeline for one resume/job pair.
// The run executes synchronously on the request context, so a client abort
// cancels all in-flight provider calls for the run.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req types.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "resume_text and job_description are required")
		return
	}

	report, err := s.runner.Analyze(r.Context(), req.ResumeText, req.JobDescription)
	if err != nil {
		var invalidInput *extraction.InvalidInputError
		if errors.As(err, &invalidInput) {
			// user-correctable, surfaced verbatim
			s.errorResponse(w, http.StatusBadRequest, invalidInput.Error())
			return
		}
		var extractionErr *extraction.ExtractionError
		if errors.As(err, &extractionErr) {
			// provider detail stays in the logs, not the response
			log.Printf("analysis failed: %v", err)
			s.errorResponse(w, http.StatusBadGateway, "analysis failed, please retry")
			return
		}
		log.Printf("analysis failed: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "internal error")
		return
	}

	s.jsonResponse(w, http.StatusOK, report)
}

// handleHealth reports server liveness.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}
