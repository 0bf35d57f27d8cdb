// Package services exposes the operations collaborators drive the revenue
// system through. Every mutation reports its outcome as a Result; errors
// never cross the service boundary.
package services

import "time"

// Result is the outcome of a single service operation.
type Result struct {
	Success     bool      `json:"success"`
	RecordID    string    `json:"record_id,omitempty"`
	Message     string    `json:"message"`
	ProcessedAt time.Time `json:"processed_at"`
}

func successResult(recordID, message string) Result {
	return Result{
		Success:     true,
		RecordID:    recordID,
		Message:     message,
		ProcessedAt: time.Now(),
	}
}

func failureResult(recordID, message string) Result {
	return Result{
		RecordID:    recordID,
		Message:     message,
		ProcessedAt: time.Now(),
	}
}
