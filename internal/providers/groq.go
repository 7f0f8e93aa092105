package providers

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	groqURL          = "https://api.groq.com/openai/v1/chat/completions"
	defaultGroqModel = "llama-3.3-70b-versatile"
)

// GroqProvider supports LLM generation via Groq's OpenAI-compatible API.
type GroqProvider struct {
	keyName string
	apiKey  string
	model   string
	url     string
	client  *http.Client
}

func NewGroqProvider(keyName string) *GroqProvider {
	model := strings.TrimSpace(os.Getenv("MESHMIND_GROQ_MODEL"))
	if model == "" {
		model = defaultGroqModel
	}
	return &GroqProvider{
		keyName: keyName,
		apiKey:  resolveKey("GROQ", keyName),
		model:   model,
		url:     groqURL,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

func (g *GroqProvider) info() ProviderInfo {
	return ProviderInfo{Name: "groq", Key: g.keyName, Model: g.model}
}

func (g *GroqProvider) Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, ProviderInfo, error) {
	if g.apiKey == "" {
		return GenerateResponse{}, g.info(), fmt.Errorf("groq key missing for alias %q", g.keyName)
	}
	text, err := chatCompletion(ctx, g.client, g.url, g.apiKey, g.model, "groq", req)
	if err != nil {
		return GenerateResponse{}, g.info(), err
	}
	return GenerateResponse{Text: text}, g.info(), nil
}

// resolveKey prefers MESHMIND_<VENDOR>_KEY_<ALIAS> and falls back to <VENDOR>_API_KEY.
func resolveKey(vendor, alias string) string {
	if alias != "" {
		if v := os.Getenv("MESHMIND_" + vendor + "_KEY_" + sanitizeEnvToken(alias)); v != "" {
			return v
		}
	}
	return os.Getenv(vendor + "_API_KEY")
}

func sanitizeEnvToken(s string) string {
	s = strings.ToUpper(s)
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, ".", "_")
	s = strings.ReplaceAll(s, "/", "_")
	return s
}
