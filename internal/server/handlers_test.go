package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jonathan/resume-matcher/internal/llm"
	"github.com/jonathan/resume-matcher/internal/pipeline"
	"github.com/jonathan/resume-matcher/internal/server/ratelimit"
	"github.com/jonathan/resume-matcher/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubClient answers each stage's prompt with canned JSON, or fails every
// call when fail is set.
type stubClient struct {
	fail bool
}

func (c *stubClient) GenerateContent(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
	return "", nil
}

func (c *stubClient) GenerateJSON(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	if c.fail {
		return "", errors.New("provider unreachable")
	}
	switch {
	case strings.Contains(prompt, "Document type: resume"):
		return `{"skills": [{"name": "Go", "confidence": 0.9}], "statements": ["Built Go services"]}`, nil
	case strings.Contains(prompt, "Document type: job_description"):
		return `{"skills": [{"name": "Go", "confidence": 0.9}, {"name": "Terraform", "confidence": 0.9}], "statements": []}`, nil
	case strings.Contains(prompt, "source_index"):
		return `{"suggestions": []}`, nil
	case strings.Contains(prompt, "recommendations"):
		return `{"recommendations": []}`, nil
	default:
		return "", errors.New("unexpected prompt")
	}
}

func (c *stubClient) GetModel(_ llm.ModelTier) string { return "stub-model" }

func (c *stubClient) Close() error { return nil }

// newTestServer wires the handler stack the way New does, minus the real
// provider client.
func newTestServer(t *testing.T, client llm.Client) *httptest.Server {
	t.Helper()

	s := &Server{
		client:      client,
		rateLimiter: ratelimit.NewLimiter(&ratelimit.Config{Enabled: false}),
		runner:      pipeline.New(pipeline.Options{Client: client}),
	}
	t.Cleanup(func() { s.rateLimiter.Stop() })

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/analyze", s.handleAnalyze)
	mux.HandleFunc("GET /health", s.handleHealth)

	ts := httptest.NewServer(s.withRateLimit(s.withLogging(s.withCORS(mux))))
	t.Cleanup(ts.Close)
	return ts
}

func postAnalyze(t *testing.T, ts *httptest.Server, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(ts.URL+"/api/analyze", "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHandleAnalyze_Success(t *testing.T) {
	ts := newTestServer(t, &stubClient{})

	resp := postAnalyze(t, ts, `{
		"resume_text": "Built Go services at scale.",
		"job_description": "Looking for Go and Terraform experience."
	}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var report types.MatchReport
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, 50, report.Score)
	assert.Equal(t, []string{"go"}, report.MatchedSkills)
	assert.Equal(t, []string{"terraform"}, report.MissingSkills)
}

func TestHandleAnalyze_InvalidJSONBody(t *testing.T) {
	ts := newTestServer(t, &stubClient{})

	resp := postAnalyze(t, ts, `{not json`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandleAnalyze_MissingFields(t *testing.T) {
	ts := newTestServer(t, &stubClient{})

	resp := postAnalyze(t, ts, `{"resume_text": "Built Go services."}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body.Error, "job_description")
}

func TestHandleAnalyze_WhitespaceOnlyInputIs400(t *testing.T) {
	ts := newTestServer(t, &stubClient{})

	resp := postAnalyze(t, ts, `{"resume_text": "   ", "job_description": "Go required."}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body.Error, "resume_text")
}

func TestHandleAnalyze_ProviderFailureIs502WithGenericMessage(t *testing.T) {
	ts := newTestServer(t, &stubClient{fail: true})

	resp := postAnalyze(t, ts, `{
		"resume_text": "Built Go services.",
		"job_description": "Go required."
	}`)
	require.Equal(t, http.StatusBadGateway, resp.StatusCode)

	var body ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "analysis failed, please retry", body.Error)
	assert.NotContains(t, body.Error, "unreachable", "provider detail must not leak to clients")
}

func TestHandleHealth(t *testing.T) {
	ts := newTestServer(t, &stubClient{})

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
}

func TestRateLimit_RejectsBeyondBurst(t *testing.T) {
	s := &Server{
		client: &stubClient{},
		rateLimiter: ratelimit.NewLimiter(&ratelimit.Config{
			Enabled:         true,
			Burst:           2,
			RefillPerMinute: 1,
		}),
	}
	s.runner = pipeline.New(pipeline.Options{Client: s.client})
	t.Cleanup(func() { s.rateLimiter.Stop() })

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/analyze", s.handleAnalyze)
	mux.HandleFunc("GET /health", s.handleHealth)
	ts := httptest.NewServer(s.withRateLimit(mux))
	t.Cleanup(ts.Close)

	// fixed forwarded address so every request counts against one bucket
	send := func() *http.Response {
		body := `{"resume_text": "Built Go services.", "job_description": "Go required."}`
		req, err := http.NewRequest(http.MethodPost, ts.URL+"/api/analyze", bytes.NewBufferString(body))
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Forwarded-For", "203.0.113.7")
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		t.Cleanup(func() { resp.Body.Close() })
		return resp
	}

	for i := 0; i < 2; i++ {
		assert.Equal(t, http.StatusOK, send().StatusCode)
	}

	resp := send()
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("Retry-After"))

	// health checks bypass the limiter
	healthResp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer healthResp.Body.Close()
	assert.Equal(t, http.StatusOK, healthResp.StatusCode)
}

func TestCORS_PreflightAllowed(t *testing.T) {
	ts := newTestServer(t, &stubClient{})

	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/api/analyze", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}
