package providers

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewManagerPreferredOrder(t *testing.T) {
	m, err := NewManager("mock|groq:a|openai")
	require.NoError(t, err)
	require.Equal(t, 3, m.LLMCount())
	require.Equal(t, []int{1, 2, 0}, m.PreferredLLMOrder())
	require.True(t, m.HasRealProvider())

	_, ref := m.LLMProviderByIndex(1)
	require.Equal(t, "groq", ref.Name)
	require.Equal(t, "a", ref.KeyAlias)
}

func TestNewManagerRejectsUnknownProvider(t *testing.T) {
	_, err := NewManager("mock|claude")
	require.ErrorContains(t, err, "unsupported provider: claude")
}

func TestManagerDefaultsToMock(t *testing.T) {
	m, err := NewManager("")
	require.NoError(t, err)
	require.False(t, m.HasRealProvider())
	p, ref := m.LLMProviderByIndex(0)
	require.Equal(t, "mock", ref.Name)
	require.IsType(t, &MockProvider{}, p)
}
