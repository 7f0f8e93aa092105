package providers

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseProviderList(t *testing.T) {
	refs := ParseProviderList("mock|Groq:key1| openai:key2 |")
	require.Len(t, refs, 3)
	require.Equal(t, "groq", refs[1].Name)
	require.Equal(t, "key1", refs[1].KeyAlias)
	require.Equal(t, "openai:key2", refs[2].String())
}

func TestParseProviderListEmptyDefaultsToMock(t *testing.T) {
	refs := ParseProviderList("  ")
	require.Equal(t, []ProviderRef{{Raw: "mock", Name: "mock"}}, refs)
}

func TestParseProviderListCommasAndDuplicates(t *testing.T) {
	refs := ParseProviderList("groq,groq|ollama")
	require.Len(t, refs, 2)
	require.Equal(t, "ollama", refs[1].String())
}

func TestParseProviderListOllamaModelAlias(t *testing.T) {
	refs := ParseProviderList("ollama:llama3.1:8b")
	require.Equal(t, "ollama", refs[0].Name)
	require.Equal(t, "llama3.1:8b", refs[0].KeyAlias)
}
