package domain

// BatchFailure records one item that a batch operation could not process.
type BatchFailure struct {
	Identifier string `json:"identifier"`
	Reason     string `json:"reason"`
}

// BatchResult tallies a batch operation. A single item's failure never
// aborts the batch; it lands in Failed and processing continues.
type BatchResult struct {
	Successful      []string       `json:"successful"`
	Failed          []BatchFailure `json:"failed"`
	TotalProcessed  int            `json:"total_processed"`
	SuccessfulCount int            `json:"successful_count"`
	FailedCount     int            `json:"failed_count"`
}

// NewBatchResult returns an empty result sized for reporting.
func NewBatchResult() *BatchResult {
	return &BatchResult{
		Successful: []string{},
		Failed:     []BatchFailure{},
	}
}

// AddSuccess records a processed item.
func (r *BatchResult) AddSuccess(identifier string) {
	r.Successful = append(r.Successful, identifier)
	r.SuccessfulCount++
	r.TotalProcessed++
}

// AddFailure records a failed item and its reason.
func (r *BatchResult) AddFailure(identifier, reason string) {
	r.Failed = append(r.Failed, BatchFailure{Identifier: identifier, Reason: reason})
	r.FailedCount++
	r.TotalProcessed++
}
