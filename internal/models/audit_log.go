package models

// AuditLog is one append-only entry of the audit trail.
type AuditLog struct {
	Timestamp string `json:"Timestamp" sheet:"Timestamp"`
	User      string `json:"User" sheet:"User"`
	Action    string `json:"Action" sheet:"Action"`
	Details   string `json:"Details" sheet:"Details"`
}
