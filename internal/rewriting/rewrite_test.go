package rewriting

import (
	"context"
	"errors"
	"testing"

	"github.com/jonathan/resume-matcher/internal/llm"
	"github.com/jonathan/resume-matcher/internal/types"
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
	return `{"suggestions": []}`, nil
}

func (m *MockLLMClient) GetModel(_ llm.ModelTier) string { return "mock-model" }

func (m *MockLLMClient) Close() error { return nil }

func TestRewrite_Success(t *testing.T) {
	statements := []string{
		"Built data pipelines",
		"Maintained CI jobs",
	}
	mockClient := &MockLLMClient{
		GenerateJSONFunc: func(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
			return `{"suggestions": [
				{"source_index": 0, "text": "Designed and operated batch data pipelines feeding analytics workloads"},
				{"source_index": 1, "text": "Automated CI jobs, cutting release friction"}
			]}`, nil
		},
	}

	suggestions, err := Rewrite(context.Background(), mockClient, statements, types.NewSkillSet("kubernetes"))
	require.NoError(t, err)
	require.Len(t, suggestions, 2)

	assert.Equal(t, 0, suggestions[0].SourceIndex)
	assert.Equal(t, "Built data pipelines", suggestions[0].SourceText)
	assert.Equal(t, 1, suggestions[1].SourceIndex)
}

func TestRewrite_DropsUntraceableSuggestions(t *testing.T) {
	statements := []string{"Built data pipelines"}
	mockClient := &MockLLMClient{
		GenerateJSONFunc: func(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
			return `{"suggestions": [
				{"source_index": 0, "text": "Improved data pipelines"},
				{"source_index": 5, "text": "Led a platform team of 30"}
			]}`, nil
		},
	}

	suggestions, err := Rewrite(context.Background(), mockClient, statements, types.NewSkillSet("kubernetes"))
	require.NoError(t, err)

	require.Len(t, suggestions, 1)
	assert.Equal(t, 0, suggestions[0].SourceIndex)
}

func TestRewrite_NoStatementsSkipsProvider(t *testing.T) {
	mockClient := &MockLLMClient{}

	suggestions, err := Rewrite(context.Background(), mockClient, nil, types.NewSkillSet("kubernetes"))
	require.NoError(t, err)

	assert.Empty(t, suggestions)
	assert.Zero(t, mockClient.CallCount)
}

func TestRewrite_NoMissingSkillsSkipsProvider(t *testing.T) {
	mockClient := &MockLLMClient{}

	suggestions, err := Rewrite(context.Background(), mockClient, []string{"Built things"}, types.NewSkillSet())
	require.NoError(t, err)

	assert.Empty(t, suggestions)
	assert.Zero(t, mockClient.CallCount)
}

func TestRewrite_ProviderFailure(t *testing.T) {
	mockClient := &MockLLMClient{
		GenerateJSONFunc: func(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
			return "", errors.New("deadline exceeded")
		},
	}

	_, err := Rewrite(context.Background(), mockClient, []string{"Built things"}, types.NewSkillSet("go"))
	assert.Error(t, err)
}

func TestRewrite_SchemaViolation(t *testing.T) {
	mockClient := &MockLLMClient{
		GenerateJSONFunc: func(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
			return `{"suggestions": [{"text": "missing the source index"}]}`, nil
		},
	}

	_, err := Rewrite(context.Background(), mockClient, []string{"Built things"}, types.NewSkillSet("go"))
	assert.Error(t, err)
}
