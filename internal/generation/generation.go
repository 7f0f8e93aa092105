package generation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"meshmind/internal/content"
	"meshmind/internal/logger"
	"meshmind/internal/metrics"
	"meshmind/internal/providers"
)

const Operation = "worksheet_content"

// Input is everything the model needs for one worksheet.
type Input struct {
	Prompt    string `json:"prompt"`
	Subject   string `json:"subject"`
	Grade     string `json:"grade"`
	Language  string `json:"language"`
	Grounding string `json:"grounding"`
}

type Settings struct {
	Temperature float64
	MaxTokens   int
	Cooldown    time.Duration
}

// Call describes one provider attempt.
type Call struct {
	Attempt   int
	Provider  string
	Model     string
	Key       string
	Status    string
	ErrorType string
	Error     string
	Latency   time.Duration
}

type CallObserver func(ctx context.Context, call Call)

type Option func(*Generator)

func WithMetrics(m *metrics.Metrics) Option {
	return func(g *Generator) { g.metrics = m }
}

func WithCallObserver(fn CallObserver) Option {
	return func(g *Generator) {
		if fn != nil {
			g.observers = append(g.observers, fn)
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// Generator turns an Input into a content.Result by walking the configured
// providers in preferred order. It is safe for concurrent use.
type Generator struct {
	manager   *providers.Manager
	settings  Settings
	log       *logger.Logger
	metrics   *metrics.Metrics
	observers []CallObserver
	now       func() time.Time

	mu            sync.Mutex
	disabledUntil map[int]time.Time
}

func New(m *providers.Manager, settings Settings, log *logger.Logger, opts ...Option) *Generator {
	if log == nil {
		log = logger.Nop()
	}
	if settings.Cooldown <= 0 {
		settings.Cooldown = 5 * time.Minute
	}
	g := &Generator{
		manager:       m,
		settings:      settings,
		log:           log,
		now:           time.Now,
		disabledUntil: map[int]time.Time{},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// BuildRequest renders the prompts for a worksheet request.
func BuildRequest(in Input, s Settings) providers.GenerateRequest {
	return providers.GenerateRequest{
		Operation:   Operation,
		System:      content.SystemPrompt(in.Subject, in.Grade, in.Language, in.Grounding),
		Prompt:      content.UserPrompt(in.Prompt),
		JSON:        true,
		Temperature: s.Temperature,
		MaxTokens:   s.MaxTokens,
	}
}

// Decode parses model output and fills in a title when the model left it out.
func Decode(raw, subject string) (content.Content, error) {
	c, err := content.Parse(raw)
	if err != nil {
		return content.Content{}, err
	}
	c.Title = c.TitleOr(DefaultTitle(subject))
	return c, nil
}

func DefaultTitle(subject string) string {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return "Worksheet"
	}
	return strings.ToUpper(subject[:1]) + strings.ToLower(subject[1:]) + " Worksheet"
}

func (g *Generator) Generate(ctx context.Context, in Input) content.Result {
	req := BuildRequest(in, g.settings)
	order := g.manager.PreferredLLMOrder()
	if len(order) == 0 {
		return content.Failed("no llm providers configured")
	}

	reason := "all llm providers exhausted"
	tried := 0
	for attempt, idx := range order {
		if g.disabled(idx) {
			continue
		}
		tried++
		res, stop, why := g.attempt(ctx, attempt, idx, in, req)
		if stop {
			return res
		}
		reason = why
	}
	if tried == 0 {
		// Every provider is cooling down; the one closest to recovery gets a try.
		res, stop, why := g.attempt(ctx, len(order), g.soonestAvailable(order), in, req)
		if stop {
			return res
		}
		reason = why
	}
	return content.Failed(reason)
}

// attempt calls one provider. stop reports that res is final; otherwise reason
// explains the failure and the caller moves on to the next provider.
func (g *Generator) attempt(ctx context.Context, attempt, idx int, in Input, req providers.GenerateRequest) (res content.Result, stop bool, reason string) {
	if err := ctx.Err(); err != nil {
		return content.Failed(err.Error()), true, ""
	}
	p, ref := g.manager.LLMProviderByIndex(idx)
	start := g.now()
	resp, info, err := p.Generate(ctx, req)
	call := Call{Attempt: attempt, Provider: firstNonEmpty(info.Name, ref.Name), Model: info.Model, Key: info.Key, Latency: g.now().Sub(start)}

	if err == nil {
		c, perr := Decode(resp.Text, in.Subject)
		if perr == nil {
			call.Status = "ok"
			g.observe(ctx, call)
			return content.Ok(c), true, ""
		}
		call.Status, call.ErrorType, call.Error = "invalid_output", string(providers.ErrorPermanent), perr.Error()
		g.observe(ctx, call)
		return content.Result{}, false, fmt.Sprintf("%s returned unusable content: %v", call.Provider, perr)
	}

	errType := providers.ClassifyError(err)
	call.Status, call.ErrorType, call.Error = "failed", string(errType), err.Error()
	g.observe(ctx, call)
	reason = fmt.Sprintf("%s: %v", call.Provider, err)
	if errors.Is(err, context.Canceled) || ctx.Err() != nil || !errType.Retryable() {
		return content.Failed(reason), true, reason
	}
	switch errType {
	case providers.ErrorQuota:
		g.disable(idx, g.settings.Cooldown)
	case providers.ErrorRate, providers.ErrorPermanent:
		g.disable(idx, time.Minute)
	}
	// ErrorRequest and ErrorTransient concern this request only.
	return content.Result{}, false, reason
}

func (g *Generator) observe(ctx context.Context, call Call) {
	g.metrics.ObserveLLMCall(call.Provider, call.Status, call.Latency)
	if call.Status == "ok" {
		g.log.Info("llm call succeeded", "provider", call.Provider, "model", call.Model, "latency_ms", call.Latency.Milliseconds())
	} else {
		g.log.Warn("llm call failed", "provider", call.Provider, "status", call.Status, "error_type", call.ErrorType, "error", call.Error)
	}
	for _, fn := range g.observers {
		fn(ctx, call)
	}
}

func (g *Generator) disabled(idx int) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	until, ok := g.disabledUntil[idx]
	return ok && g.now().Before(until)
}

func (g *Generator) soonestAvailable(order []int) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	best := order[0]
	for _, idx := range order[1:] {
		if g.disabledUntil[idx].Before(g.disabledUntil[best]) {
			best = idx
		}
	}
	return best
}

func (g *Generator) disable(idx int, d time.Duration) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.disabledUntil[idx] = g.now().Add(d)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
