package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/careerlaunchpad/api/internal/ai"
	"github.com/careerlaunchpad/api/internal/api/dto"
	"github.com/careerlaunchpad/api/internal/auth"
	"github.com/careerlaunchpad/api/internal/service"
	apperrors "github.com/careerlaunchpad/api/pkg/util"
)

// AIHandler exposes the advisor endpoints. Capability gating happens in
// middleware; handlers only validate input and call the service.
type AIHandler struct {
	advisor *service.AIService
}

func NewAIHandler(advisor *service.AIService) *AIHandler {
	return &AIHandler{advisor: advisor}
}

// Chat handles POST /ai/chat.
func (h *AIHandler) Chat(c *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	if req.Message == "" {
		return apperrors.NewValidationError("message is required", nil)
	}

	reply, err := h.advisor.Chat(c.Context(), req.Message)
	if err != nil {
		return mapAdvisorError(err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    fiber.Map{"response": reply},
	})
}

// CareerAdvice handles POST /ai/career-advice.
func (h *AIHandler) CareerAdvice(c *fiber.Ctx) error {
	var req dto.AdviceRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	if req.Question == "" {
		return apperrors.NewValidationError("question is required", nil)
	}

	advice, err := h.advisor.CareerAdvice(c.Context(), req.Question)
	if err != nil {
		return mapAdvisorError(err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    fiber.Map{"advice": advice},
	})
}

// AnalyzeResume handles POST /ai/analyze-resume.
func (h *AIHandler) AnalyzeResume(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	var req dto.ResumeAnalysisRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	if req.ResumeText == "" {
		return apperrors.NewValidationError("resumeText is required", nil)
	}

	analysis, err := h.advisor.AnalyzeResume(c.Context(), identity.ID, req.ResumeText)
	if err != nil {
		return mapAdvisorError(err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    analysis,
	})
}

// GenerateCoverLetter handles POST /ai/generate-cover-letter.
func (h *AIHandler) GenerateCoverLetter(c *fiber.Ctx) error {
	var req dto.CoverLetterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	if req.JobDescription == "" || req.UserProfile == "" {
		return apperrors.NewValidationError("jobDescription and userProfile are required", nil)
	}

	letter, err := h.advisor.GenerateCoverLetter(c.Context(), req.JobDescription, req.UserProfile)
	if err != nil {
		return mapAdvisorError(err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    fiber.Map{"coverLetter": letter},
	})
}

func mapAdvisorError(err error) error {
	if errors.Is(err, ai.ErrNotConfigured) {
		return apperrors.NewDomainError("AI_UNAVAILABLE", "AI advisor is not configured", fiber.StatusServiceUnavailable, nil)
	}
	return apperrors.MapError(err)
}
