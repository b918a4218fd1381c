package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"

	"sitecheck-backend/models"
)

// Advice service errors
var (
	ErrAdvisorNotConfigured = errors.New("advice service is not configured")
	ErrUnknownCode          = errors.New("unknown regulatory code")
	ErrAdviceEmpty          = errors.New("advice generation returned no content")
)

const adviceModelName = "gemini-2.0-flash"

// AdviceService generates short remediation guidance for a violation
// code using Gemini. It is optional: without a client every call fails
// with ErrAdvisorNotConfigured.
type AdviceService struct {
	client   *genai.Client
	taxonomy models.Taxonomy
}

// AdviceServiceOption is a functional option for AdviceService
type AdviceServiceOption func(*AdviceService)

// AdviceWithGeminiClient sets the Gemini client
func AdviceWithGeminiClient(client *genai.Client) AdviceServiceOption {
	return func(s *AdviceService) {
		s.client = client
	}
}

// AdviceWithTaxonomy overrides the default class taxonomy
func AdviceWithTaxonomy(taxonomy models.Taxonomy) AdviceServiceOption {
	return func(s *AdviceService) {
		s.taxonomy = taxonomy
	}
}

// NewAdviceService creates a new advice service
func NewAdviceService(opts ...AdviceServiceOption) *AdviceService {
	s := &AdviceService{
		taxonomy: models.DefaultTaxonomy,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// KnowsCode reports whether the code exists in the taxonomy.
func (s *AdviceService) KnowsCode(code string) bool {
	for _, class := range s.taxonomy {
		if class.Code == code {
			return true
		}
	}
	return false
}

// Advise generates corrective-action guidance for the given violation
// code.
func (s *AdviceService) Advise(ctx context.Context, code string) (string, error) {
	if s.client == nil {
		return "", ErrAdvisorNotConfigured
	}
	if !s.KnowsCode(code) {
		return "", fmt.Errorf("%w: %s", ErrUnknownCode, code)
	}

	description := models.CodeDescriptions[code]
	if description == "" {
		description = models.FallbackDescription
	}

	prompt := fmt.Sprintf(`You are a construction site safety officer reviewing a detected violation.

REGULATION: %s
REQUIREMENT: %s

TASK:
List 3 concrete corrective actions a site supervisor should take today to resolve this violation.

OUTPUT REQUIREMENTS:
- Plain text, one action per line
- Each action starts with a verb
- No markdown formatting, no preamble
- Objective, factual tone; no marketing language`, code, description)

	model := s.client.GenerativeModel(adviceModelName)
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("generate advice: %w", err)
	}

	var b strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				b.WriteString(string(text))
			}
		}
	}

	if b.Len() == 0 {
		return "", ErrAdviceEmpty
	}
	return strings.TrimSpace(b.String()), nil
}
