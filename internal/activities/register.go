package activities

import "go.temporal.io/sdk/worker"

func Register(w worker.Worker, a *Activities) {
	w.RegisterActivity(a.AssembleContextActivity)
	w.RegisterActivity(a.LLMGenerateActivity)
	w.RegisterActivity(a.ComposeAndSaveActivity)
	w.RegisterActivity(a.RecordRunActivity)
	w.RegisterActivity(a.LogLLMCallActivity)
}
