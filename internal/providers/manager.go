package providers

import (
	"fmt"
	"strings"
)

type NamedLLMProvider struct {
	Ref      ProviderRef
	Provider LLMProvider
}

type Manager struct {
	llmProviders []NamedLLMProvider
}

// NewManager builds providers from a `name[:alias]|name...` list. An empty list
// yields the mock provider.
func NewManager(list string) (*Manager, error) {
	m := &Manager{}
	for _, ref := range ParseProviderList(list) {
		p, err := buildProvider(ref)
		if err != nil {
			return nil, err
		}
		m.llmProviders = append(m.llmProviders, NamedLLMProvider{Ref: ref, Provider: p})
	}
	return m, nil
}

// NewStaticManager wraps already-built providers, in order.
func NewStaticManager(named ...NamedLLMProvider) *Manager {
	return &Manager{llmProviders: append([]NamedLLMProvider(nil), named...)}
}

func (m *Manager) LLMProviderByIndex(i int) (LLMProvider, ProviderRef) {
	if len(m.llmProviders) == 0 {
		return NewMockProvider(), ProviderRef{Raw: "mock", Name: "mock"}
	}
	if i < 0 || i >= len(m.llmProviders) {
		i = 0
	}
	return m.llmProviders[i].Provider, m.llmProviders[i].Ref
}

func (m *Manager) LLMCount() int {
	return len(m.llmProviders)
}

func (m *Manager) LLMProviderRefs() []ProviderRef {
	out := make([]ProviderRef, 0, len(m.llmProviders))
	for i := range m.llmProviders {
		out = append(out, m.llmProviders[i].Ref)
	}
	return out
}

// HasRealProvider reports whether anything other than the mock is configured.
func (m *Manager) HasRealProvider() bool {
	for i := range m.llmProviders {
		if !strings.EqualFold(m.llmProviders[i].Ref.Name, "mock") {
			return true
		}
	}
	return false
}

// PreferredLLMOrder lists provider indexes with real providers first and mock last.
func (m *Manager) PreferredLLMOrder() []int {
	n := len(m.llmProviders)
	if n == 0 {
		return nil
	}
	out := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if !strings.EqualFold(m.llmProviders[i].Ref.Name, "mock") {
			out = append(out, i)
		}
	}
	for i := 0; i < n; i++ {
		if strings.EqualFold(m.llmProviders[i].Ref.Name, "mock") {
			out = append(out, i)
		}
	}
	return out
}

func buildProvider(ref ProviderRef) (LLMProvider, error) {
	switch strings.ToLower(ref.Name) {
	case "mock":
		return NewMockProvider(), nil
	case "openai":
		return NewOpenAIProvider(ref.KeyAlias), nil
	case "ollama":
		return NewOllamaProvider(ref.KeyAlias), nil
	case "groq":
		return NewGroqProvider(ref.KeyAlias), nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", ref.Name)
	}
}
