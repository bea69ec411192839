package session

import "time"

// Session is one logged deep work session. Records are immutable once stored.
type Session struct {
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Name      string    `json:"name"`
	Buddy     string    `json:"buddy"`
	Task      string    `json:"task"`
}

// Submission is the (name, buddy, task) triple a person submits.
type Submission struct {
	Name  string `json:"name" validate:"notblank"`
	Buddy string `json:"buddy" validate:"notblank"`
	Task  string `json:"task" validate:"notblank"`
}
