package models

import "time"

// TicketHistoryEntry records one ticket created from this machine.
type TicketHistoryEntry struct {
	Key        string    `json:"key"`
	Title      string    `json:"title"`
	URL        string    `json:"url"`
	ProjectKey string    `json:"project_key"`
	IssueType  string    `json:"issue_type"`
	CreatedAt  time.Time `json:"created_at"`
}
