package output

// Post outcomes reported to PipelineMetrics.
const (
	OutcomeAI       = "ai"
	OutcomeFallback = "fallback"
	OutcomeDropped  = "dropped"
)

// PipelineMetrics receives counters from the extraction pipeline.
type PipelineMetrics interface {
	PostProcessed(language, outcome string)
	EventsSaved(language string, n int)
	AIRequest(outcome string)
	TranslationFailed(field string)
	GroupFailed(group string)
}

// NopMetrics discards every observation.
type NopMetrics struct{}

func (NopMetrics) PostProcessed(string, string) {}
func (NopMetrics) EventsSaved(string, int)      {}
func (NopMetrics) AIRequest(string)             {}
func (NopMetrics) TranslationFailed(string)     {}
func (NopMetrics) GroupFailed(string)           {}
