package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/careerlaunchpad/api/internal/persistence"
)

const resumeAnalysisCacheTTL = time.Hour

// Completer produces a chat completion for a system+user prompt pair.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// ResumeAnalysis is the cached advisor output for a resume. TextHash ties
// the entry to the analyzed text so a changed resume never serves stale
// feedback.
type ResumeAnalysis struct {
	Feedback  string    `json:"feedback"`
	Timestamp time.Time `json:"timestamp"`
	TextHash  string    `json:"textHash,omitempty"`
	Cached    bool      `json:"cached,omitempty"`
}

// AIService proxies advisor requests to the model provider, caching the
// expensive resume analysis per user.
type AIService struct {
	llm   Completer
	cache *persistence.Cache
}

// NewAIService builds the service.
func NewAIService(llm Completer, cache *persistence.Cache) *AIService {
	return &AIService{llm: llm, cache: cache}
}

// Chat answers a free-form advisor message.
func (s *AIService) Chat(ctx context.Context, message string) (string, error) {
	return s.llm.Complete(ctx, "You are a helpful career advisor assistant.", message)
}

// CareerAdvice answers a career question.
func (s *AIService) CareerAdvice(ctx context.Context, question string) (string, error) {
	return s.llm.Complete(ctx,
		"You are an experienced career counselor. Provide helpful, actionable career advice.",
		question)
}

// AnalyzeResume reviews resume text, serving a cached analysis when one
// exists for the user.
func (s *AIService) AnalyzeResume(ctx context.Context, userID, resumeText string) (*ResumeAnalysis, error) {
	cacheKey := "resume:analysis:" + userID
	textHash := hashText(resumeText)

	var cached ResumeAnalysis
	if s.cache.Get(ctx, cacheKey, &cached) {
		if cached.TextHash == textHash {
			cached.Cached = true
			return &cached, nil
		}
		// The resume changed; drop the entry now so a failed re-analysis
		// cannot resurrect it.
		s.cache.Delete(ctx, cacheKey)
	}

	feedback, err := s.llm.Complete(ctx,
		"You are an expert resume analyzer. Analyze the resume and provide feedback on strengths, weaknesses, and suggestions for improvement.",
		"Analyze this resume:\n\n"+resumeText)
	if err != nil {
		return nil, err
	}

	analysis := &ResumeAnalysis{Feedback: feedback, Timestamp: time.Now(), TextHash: textHash}
	s.cache.Set(ctx, cacheKey, analysis, resumeAnalysisCacheTTL)
	return analysis, nil
}

func hashText(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// GenerateCoverLetter drafts a cover letter from a job description and
// profile summary.
func (s *AIService) GenerateCoverLetter(ctx context.Context, jobDescription, userProfile string) (string, error) {
	return s.llm.Complete(ctx,
		"You are an expert cover letter writer. Generate a professional cover letter based on the job description and user profile.",
		fmt.Sprintf("Job Description:\n%s\n\nUser Profile:\n%s", jobDescription, userProfile))
}
