package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

// Shown in performance history when a teacher left no feedback on an attempt.
const DefaultAttemptFeedback = "No feedback provided yet."
