package domain

import "time"

// Artifact is a produced file published into the output directory.
type Artifact struct {
	Name   string `json:"name"`
	Digest string `json:"digest,omitzero"`
}

// OutcomeRecord is the persisted form of a TaskOutcome.
type OutcomeRecord struct {
	Label      string `json:"label"`
	Success    bool   `json:"success"`
	Error      string `json:"error,omitzero"`
	DurationMS int64  `json:"duration_ms"`
}

// RunReport is the durable outcome log of one run.
type RunReport struct {
	Filter      string          `json:"filter,omitzero"`
	Concurrency int             `json:"concurrency"`
	StartedAt   time.Time       `json:"started_at"`
	Failed      bool            `json:"failed"`
	Outcomes    []OutcomeRecord `json:"outcomes"`
	Artifacts   []Artifact      `json:"artifacts,omitzero"`
}

// NewRunReport snapshots the run state into a report.
func NewRunReport(state *RunState, filter string, concurrency int, startedAt time.Time) RunReport {
	outcomes := state.Outcomes()
	records := make([]OutcomeRecord, 0, len(outcomes))
	for _, o := range outcomes {
		rec := OutcomeRecord{
			Label:      o.Task.Label(),
			Success:    o.Success(),
			DurationMS: o.Duration.Milliseconds(),
		}
		if o.Err != nil {
			rec.Error = o.Err.Error()
		}
		records = append(records, rec)
	}

	return RunReport{
		Filter:      filter,
		Concurrency: concurrency,
		StartedAt:   startedAt,
		Failed:      state.Failed(),
		Outcomes:    records,
	}
}
