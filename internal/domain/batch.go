package domain

// BatchRecord is the per-item outcome of a batch invocation.
type BatchRecord struct {
	Index   int    `json:"index"`
	Input   string `json:"input"`
	Output  string `json:"output,omitempty"`
	Error   string `json:"error,omitempty"`
	Success bool   `json:"success"`
}

// BatchResult aggregates per-record outcomes of one batch run.
// Results are ordered by record index regardless of completion order.
type BatchResult struct {
	RunID   string        `json:"run_id"`
	Agent   string        `json:"agent"`
	Results []BatchRecord `json:"results"`
}

// Total returns the number of records in the batch.
func (r *BatchResult) Total() int { return len(r.Results) }

// Successes returns the records that completed successfully.
func (r *BatchResult) Successes() []BatchRecord {
	return r.filter(true)
}

// Failures returns the records that failed.
func (r *BatchResult) Failures() []BatchRecord {
	return r.filter(false)
}

func (r *BatchResult) filter(success bool) []BatchRecord {
	out := make([]BatchRecord, 0, len(r.Results))
	for _, rec := range r.Results {
		if rec.Success == success {
			out = append(out, rec)
		}
	}
	return out
}
