package encryption

// Job names one file to transform.
type Job struct {
	Input  string
	Output string
}

// Result represents the outcome of processing a single file.
type Result struct {
	Job

	// Output file size in bytes
	OutputSize int64

	// Any error that occurred during processing
	Error error
}
