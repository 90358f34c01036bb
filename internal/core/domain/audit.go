package domain

import "time"

// AuditEntry records one successful mutation issued through the console.
type AuditEntry struct {
	Action     string
	Resource   string
	ResourceID int64
	ActorID    int64
	ActorName  string
	ActorRole  string
	At         time.Time
}
