package store

import (
	"slices"
	"time"
)

// AuditOp classifies store operations for the audit trail.
type AuditOp string

const (
	OpInsert AuditOp = "INSERT"
	OpUpdate AuditOp = "UPDATE"
	OpDelete AuditOp = "DELETE"
	OpRead   AuditOp = "READ"
)

// AuditEntry is one operation recorded against the store.
type AuditEntry struct {
	Time     time.Time `json:"time"`
	Op       AuditOp   `json:"op"`
	RecordID string    `json:"record_id,omitempty"`
	Detail   string    `json:"detail"`
}

// recordAudit appends to the trail, dropping the oldest entries once the
// retention cap is reached. It takes its own lock so read queries logging
// their access do not serialize behind each other.
func (s *PaymentStore) recordAudit(op AuditOp, recordID, detail string) {
	s.auditMu.Lock()
	defer s.auditMu.Unlock()
	s.audit = append(s.audit, AuditEntry{
		Time:     time.Now(),
		Op:       op,
		RecordID: recordID,
		Detail:   detail,
	})
	if over := len(s.audit) - s.auditRetention; over > 0 {
		s.audit = slices.Delete(s.audit, 0, over)
	}
}

// AuditLogs returns the most recent limit entries, oldest first. A
// non-positive limit returns everything retained.
func (s *PaymentStore) AuditLogs(limit int) []AuditEntry {
	s.auditMu.Lock()
	defer s.auditMu.Unlock()
	n := len(s.audit)
	if limit <= 0 || limit > n {
		limit = n
	}
	return slices.Clone(s.audit[n-limit:])
}
