package analysis

import "time"

// Outcomes reported to Recorder.AnalysisOutcome.
const (
	OutcomeSuccess  = "success"
	OutcomeDegraded = "degraded"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

// Search attempt results reported to Recorder.SearchAttempt.
const (
	AttemptSuccess   = "success"
	AttemptTransport = "transport_error"
	AttemptMalformed = "malformed"
	AttemptDisabled  = "disabled"
)

// Recorder receives pipeline measurements.
type Recorder interface {
	AnalysisOutcome(outcome string)
	ObserveSummarize(d time.Duration, ok bool)
	SearchAttempt(result string)
	ObserveSources(n int)
}

type noopRecorder struct{}

func (noopRecorder) AnalysisOutcome(string)                {}
func (noopRecorder) ObserveSummarize(time.Duration, bool) {}
func (noopRecorder) SearchAttempt(string)                  {}
func (noopRecorder) ObserveSources(int)                    {}
