package models

import (
	"errors"
	"time"
)

// Status values mirror the job lifecycle: open → accepted → completed,
// with cancel returning an accepted job to open. completed is terminal.
type Status string

const (
	StatusOpen      Status = "open"
	StatusAccepted  Status = "accepted"
	StatusCompleted Status = "completed"
)

func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusOpen, StatusAccepted, StatusCompleted:
		return st, nil
	}
	return "", errors.New("unknown job status: " + s)
}

// Action is the verb a client sends to resolve an accepted job.
type Action string

const (
	ActionDone   Action = "done"
	ActionCancel Action = "cancel"
)

func ParseAction(s string) (Action, error) {
	switch a := Action(s); a {
	case ActionDone, ActionCancel:
		return a, nil
	}
	return "", errors.New("action must be \"done\" or \"cancel\"")
}

var (
	ErrJobNotFound     = errors.New("job not found")
	ErrSelfAccept      = errors.New("you cannot accept your own job")
	ErrAlreadyAccepted = errors.New("job is already accepted")
	ErrNotAccepted     = errors.New("job is not in accepted state")
)

const UnknownAccepterName = "Unknown"

type Job struct {
	ID             string     `gorm:"primaryKey" json:"id"`
	Title          string     `json:"title"`
	Category       string     `json:"category"`
	Summary        string     `json:"summary"`
	Tags           string     `json:"tags"`
	PriceMin       float64    `json:"price_min"`
	PriceMax       float64    `json:"price_max"`
	UserEmail      string     `gorm:"index" json:"userEmail"`
	Status         Status     `gorm:"index;default:open" json:"status"`
	AcceptedBy     string     `gorm:"index" json:"acceptedBy"`
	AcceptedByName string     `json:"acceptedByName"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
}

// CanBeAcceptedBy runs the guard checks that do not need the store:
// the poster cannot take their own job, and a taken job stays taken.
// The status check is repeated atomically at the store level; this
// pre-check only exists to give the caller a precise error.
func (j *Job) CanBeAcceptedBy(email string) error {
	if j.UserEmail == email {
		return ErrSelfAccept
	}
	if j.Status == StatusAccepted {
		return ErrAlreadyAccepted
	}
	if j.Status == StatusCompleted {
		return ErrAlreadyAccepted
	}
	return nil
}

func (j *Job) IsListable() bool {
	return j.Title != "" && j.Category != ""
}
