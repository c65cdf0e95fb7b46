package assistant

import (
	"context"
	"errors"
	"fmt"
)

// Status is the lifecycle state of a remote job as reported by the backend.
type Status string

const (
	StatusQueued         Status = "queued"
	StatusInProgress     Status = "in_progress"
	StatusRequiresAction Status = "requires_action"
	StatusCancelling     Status = "cancelling"
	StatusCancelled      Status = "cancelled"
	StatusFailed         Status = "failed"
	StatusCompleted      Status = "completed"
	StatusIncomplete     Status = "incomplete"
	StatusExpired        Status = "expired"
)

// Terminal reports whether the backend will never move the job out of s.
func (s Status) Terminal() bool {
	switch s {
	case StatusCompleted, StatusFailed, StatusCancelled, StatusExpired, StatusIncomplete:
		return true
	default:
		return false
	}
}

// Job identifies one remote run of the assistant over one conversation.
type Job struct {
	ID        string
	ThreadID  string
	Status    Status
	LastError string
}

// Message is a conversation entry. Only Text is consumed by the runner.
type Message struct {
	ID   string
	Role string
	Text string
}

// Backend is the remote assistant service.
//
// Messages must return the conversation newest first; the runner reads index 0.
type Backend interface {
	Submit(ctx context.Context, assistantID, text string) (Job, error)
	Fetch(ctx context.Context, job Job) (Job, error)
	Messages(ctx context.Context, job Job) ([]Message, error)
}

var (
	ErrNotCompleted = errors.New("assistant: job has not completed")
	ErrNoMessages   = errors.New("assistant: completed job has no messages")
	ErrEmptyAnswer  = errors.New("assistant: latest message has no text")
	ErrPollLimit    = errors.New("assistant: poll limit reached before job finished")
)

// JobError reports a job that stopped in a state other than completed.
type JobError struct {
	JobID   string
	Status  Status
	Message string
}

func (e *JobError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("assistant: job %s ended with status %s", e.JobID, e.Status)
	}
	return fmt.Sprintf("assistant: job %s ended with status %s: %s", e.JobID, e.Status, e.Message)
}
