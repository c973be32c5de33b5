package domain

// IngestReport aggregates the outcome of a batch ingestion run.
// Per-document failures are collected here and surfaced to the operator at
// the end of the run instead of aborting the batch.
type IngestReport struct {
	// Documents is the number of documents successfully extracted.
	Documents int

	// Chunks is the number of chunks written to the vector index.
	Chunks int

	// Failed lists the extraction failures, one per input.
	Failed []*ExtractionError
}

// Succeeded reports whether at least one document was ingested.
func (r *IngestReport) Succeeded() bool {
	return r.Documents > 0
}

// AddFailure records a per-document failure.
func (r *IngestReport) AddFailure(err *ExtractionError) {
	r.Failed = append(r.Failed, err)
}
