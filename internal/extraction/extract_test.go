package extraction

import (
	"context"
	"errors"
	"testing"

	"github.com/jonathan/resume-matcher/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockLLMClient implements llm.Client for testing.
type MockLLMClient struct {
	GenerateJSONFunc func(ctx context.Context, prompt string, tier llm.ModelTier) (string, error)
	CallCount        int
}

func (m *MockLLMClient) GenerateContent(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
	return "", nil
}

func (m *MockLLMClient) GenerateJSON(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	m.CallCount++
	if m.GenerateJSONFunc != nil {
		return m.GenerateJSONFunc(ctx, prompt, tier)
	}
	return `{"skills": [], "statements": []}`, nil
}

func (m *MockLLMClient) GetModel(_ llm.ModelTier) string { return "mock-model" }

func (m *MockLLMClient) Close() error { return nil }

func TestExtract_Success(t *testing.T) {
	mockClient := &MockLLMClient{
		GenerateJSONFunc: func(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
			return `{
				"skills": [
					{"name": "Python", "confidence": 0.95},
					{"name": "SQL", "confidence": 0.9}
				],
				"statements": ["Built ETL pipelines processing 2TB daily", "Led database migration"]
			}`, nil
		},
	}

	result, err := Extract(context.Background(), mockClient, "resume text here", DocTypeResume)
	require.NoError(t, err)

	assert.Equal(t, []string{"python", "sql"}, result.Skills.Slice())
	assert.Len(t, result.Statements, 2)
}

func TestExtract_EmptyInputFailsBeforeProviderCall(t *testing.T) {
	mockClient := &MockLLMClient{}

	_, err := Extract(context.Background(), mockClient, "   \n\t  ", DocTypeResume)

	var invalidInput *InvalidInputError
	require.ErrorAs(t, err, &invalidInput)
	assert.Equal(t, "resume", invalidInput.Field)
	assert.Zero(t, mockClient.CallCount, "provider must not be called for empty input")
}

func TestExtract_ProviderFailureIsExtractionError(t *testing.T) {
	providerErr := errors.New("connection refused")
	mockClient := &MockLLMClient{
		GenerateJSONFunc: func(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
			return "", providerErr
		},
	}

	_, err := Extract(context.Background(), mockClient, "resume text", DocTypeResume)

	var extractionErr *ExtractionError
	require.ErrorAs(t, err, &extractionErr)
	assert.ErrorIs(t, err, providerErr)
}

func TestExtract_MalformedOutputIsExtractionError(t *testing.T) {
	tests := []struct {
		name   string
		output string
	}{
		{"not json", "I could not process this document"},
		{"wrong shape", `{"entities": ["python"]}`},
		{"skills not objects", `{"skills": ["python"], "statements": []}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockClient := &MockLLMClient{
				GenerateJSONFunc: func(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
					return tt.output, nil
				},
			}

			_, err := Extract(context.Background(), mockClient, "resume text", DocTypeResume)

			var extractionErr *ExtractionError
			require.ErrorAs(t, err, &extractionErr)
		})
	}
}

func TestExtract_DropsLowConfidenceAndShortSkills(t *testing.T) {
	mockClient := &MockLLMClient{
		GenerateJSONFunc: func(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
			return `{
				"skills": [
					{"name": "Python", "confidence": 0.9},
					{"name": "maybe perl", "confidence": 0.1},
					{"name": "x", "confidence": 0.9}
				],
				"statements": []
			}`, nil
		},
	}

	result, err := Extract(context.Background(), mockClient, "resume text", DocTypeResume)
	require.NoError(t, err)

	assert.Equal(t, []string{"python"}, result.Skills.Slice())
}

func TestExtract_DeduplicatesVariants(t *testing.T) {
	mockClient := &MockLLMClient{
		GenerateJSONFunc: func(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
			return `{
				"skills": [
					{"name": "Golang", "confidence": 0.9},
					{"name": "Go", "confidence": 0.9},
					{"name": "K8s", "confidence": 0.8},
					{"name": "Kubernetes", "confidence": 0.8}
				],
				"statements": []
			}`, nil
		},
	}

	result, err := Extract(context.Background(), mockClient, "resume text", DocTypeResume)
	require.NoError(t, err)

	assert.Equal(t, []string{"go", "kubernetes"}, result.Skills.Slice())
}

func TestExtract_SkillsWithoutConfidenceAreKept(t *testing.T) {
	mockClient := &MockLLMClient{
		GenerateJSONFunc: func(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
			return `{"skills": [{"name": "Terraform"}], "statements": []}`, nil
		},
	}

	result, err := Extract(context.Background(), mockClient, "resume text", DocTypeResume)
	require.NoError(t, err)

	assert.True(t, result.Skills.Contains("terraform"))
}

func TestExtract_DropsBlankStatements(t *testing.T) {
	mockClient := &MockLLMClient{
		GenerateJSONFunc: func(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
			return `{"skills": [], "statements": ["  ", "Shipped the billing service", ""]}`, nil
		},
	}

	result, err := Extract(context.Background(), mockClient, "resume text", DocTypeResume)
	require.NoError(t, err)

	assert.Equal(t, []string{"Shipped the billing service"}, result.Statements)
}
