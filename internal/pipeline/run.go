// Package pipeline provides the coordinator that sequences the analysis
// stages and assembles the final match report.
package pipeline

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-matcher/internal/extraction"
	"github.com/jonathan/resume-matcher/internal/llm"
	"github.com/jonathan/resume-matcher/internal/planning"
	"github.com/jonathan/resume-matcher/internal/rewriting"
	"github.com/jonathan/resume-matcher/internal/scoring"
	"github.com/jonathan/resume-matcher/internal/types"
	"github.com/jonathan/resume-matcher/internal/verification"
)

// State names the coordinator's position in a run.
type State string

// Pipeline states. Extraction for the resume and for the job overlap inside
// StateExtracting, and rewriting/planning overlap inside StateGenerating;
// everything else is strictly sequential.
const (
	StateInit       State = "init"
	StateExtracting State = "extracting"
	StateScoring    State = "scoring"
	StateGenerating State = "generating"
	StateVerifying  State = "verifying"
	StateDone       State = "done"
	StateFailed     State = "failed"
)

// Stage names used in progress events and warnings.
const (
	StageExtractResume = "extract_resume"
	StageExtractJob    = "extract_job"
	StageScore         = "score"
	StageRewrite       = "rewrite"
	StagePlan          = "plan"
	StageVerify        = "verify"
)

// DefaultStageTimeout bounds each provider-backed stage when the caller
// does not configure one.
const DefaultStageTimeout = 45 * time.Second

// ProgressEvent reports a state transition or stage completion during a run.
type ProgressEvent struct {
	RunID   string `json:"run_id"`
	State   State  `json:"state"`
	Stage   string `json:"stage,omitempty"`
	Message string `json:"message"`
}

// ProgressCallback is invoked as the run advances. Callbacks run on the
// coordinator goroutine and must be fast.
type ProgressCallback func(event ProgressEvent)

// Options configures a Runner.
type Options struct {
	Client       llm.Client
	StageTimeout time.Duration
	OnProgress   ProgressCallback
}

// Runner coordinates analysis runs. A Runner holds no per-run state, so one
// instance serves concurrent requests; each run is fully independent.
type Runner struct {
	opts Options
}

// New creates a Runner. The client is required.
func New(opts Options) *Runner {
	if opts.StageTimeout <= 0 {
		opts.StageTimeout = DefaultStageTimeout
	}
	return &Runner{opts: opts}
}

// Analyze executes the full pipeline for one resume/job pair and assembles
// the MatchReport. The coordinator is the sole assembler of reports.
//
// Empty inputs and extraction failures are fatal and return an error with no
// report. Failures in rewriting, planning, or verification degrade the
// result: the report is still returned with the affected fields empty and a
// warning recorded for each failed stage. Cancelling ctx cancels all
// in-flight provider calls for the run.
func (r *Runner) Analyze(ctx context.Context, resumeText, jobText string) (*types.MatchReport, error) {
	runID := uuid.New().String()
	emit := func(state State, stage, message string) {
		if r.opts.OnProgress != nil {
			r.opts.OnProgress(ProgressEvent{RunID: runID, State: state, Stage: stage, Message: message})
		}
	}

	// Fail before any provider call when either document is empty.
	if strings.TrimSpace(resumeText) == "" {
		emit(StateFailed, "", "resume text is empty")
		return nil, &extraction.InvalidInputError{Field: "resume_text", Message: "text is empty"}
	}
	if strings.TrimSpace(jobText) == "" {
		emit(StateFailed, "", "job description is empty")
		return nil, &extraction.InvalidInputError{Field: "job_description", Message: "text is empty"}
	}

	// Stage 1: entity extraction, resume and job concurrently. Either
	// failure is fatal; without entities there is nothing to score.
	emit(StateExtracting, "", "extracting entities")

	var resume *types.ResumeDocument
	var job *types.JobRequirements

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		result, err := r.runExtraction(gctx, resumeText, extraction.DocTypeResume)
		if err != nil {
			return err
		}
		resume = &types.ResumeDocument{
			RawText:    resumeText,
			Skills:     result.Skills,
			Experience: result.Statements,
		}
		return nil
	})
	g.Go(func() error {
		result, err := r.runExtraction(gctx, jobText, extraction.DocTypeJob)
		if err != nil {
			return err
		}
		job = &types.JobRequirements{
			RawText:          jobText,
			RequiredSkills:   result.Skills,
			Responsibilities: result.Statements,
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		emit(StateFailed, "", err.Error())
		return nil, err
	}
	emit(StateExtracting, StageExtractResume, "extracted resume entities")
	emit(StateExtracting, StageExtractJob, "extracted job entities")

	// Stage 2: deterministic scoring.
	emit(StateScoring, StageScore, "scoring resume against job requirements")
	match := scoring.Score(resume.Skills, job.RequiredSkills, job.RawText)
	missing := types.NewSkillSet(match.Missing...)

	// Stage 3: rewriting and planning, concurrently. Both degrade
	// gracefully; a failure becomes a warning, never an abort.
	emit(StateGenerating, "", "generating suggestions and recommendations")

	var (
		bullets         []types.BulletSuggestion
		recommendations []types.Recommendation
		warnings        []types.StageWarning
		rewriteErr      error
		planErr         error
	)

	var wg errgroup.Group
	wg.Go(func() error {
		stageCtx, cancel := context.WithTimeout(ctx, r.opts.StageTimeout)
		defer cancel()
		bullets, rewriteErr = rewriting.Rewrite(stageCtx, r.opts.Client, resume.Experience, missing)
		return nil
	})
	wg.Go(func() error {
		stageCtx, cancel := context.WithTimeout(ctx, r.opts.StageTimeout)
		defer cancel()
		recommendations, planErr = planning.Plan(stageCtx, r.opts.Client, missing)
		return nil
	})
	_ = wg.Wait()

	if rewriteErr != nil {
		log.Printf("run %s: rewrite stage degraded: %v", runID, rewriteErr)
		warnings = append(warnings, types.StageWarning{Stage: StageRewrite, Message: rewriteErr.Error()})
		bullets = nil
	}
	if planErr != nil {
		log.Printf("run %s: plan stage degraded: %v", runID, planErr)
		warnings = append(warnings, types.StageWarning{Stage: StagePlan, Message: planErr.Error()})
		recommendations = nil
	}

	// Stage 4: verification. Strictly after both generation stages; local
	// and deterministic, never blocking delivery.
	emit(StateVerifying, StageVerify, "auditing generated content against source resume")
	notes := verification.Verify(resume.RawText, bullets, recommendations, job.RequiredSkills, missing)

	report := &types.MatchReport{
		RunID:             runID,
		Score:             match.Score,
		MatchedSkills:     match.Matched,
		MissingSkills:     match.Missing,
		RewrittenBullets:  emptyIfNil(bullets),
		Recommendations:   emptyIfNil(recommendations),
		VerificationNotes: notes,
		Warnings:          warnings,
	}

	emit(StateDone, "", "analysis complete")
	return report, nil
}

// runExtraction wraps one extraction call with the per-stage timeout.
func (r *Runner) runExtraction(ctx context.Context, text string, docType extraction.DocType) (*extraction.Result, error) {
	stageCtx, cancel := context.WithTimeout(ctx, r.opts.StageTimeout)
	defer cancel()
	return extraction.Extract(stageCtx, r.opts.Client, text, docType)
}

// emptyIfNil keeps degraded report fields as [] rather than null in JSON.
func emptyIfNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
