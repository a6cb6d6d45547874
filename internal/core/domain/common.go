package domain

import "time"

// SystemActor is recorded as CreatedBy/LastUpdatedBy for writes that are not
// triggered by an authenticated staff member (e.g. the fee scheduler).
const SystemActor = "system"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // UserID Reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // UserID Reference
}

// NewAuditFields stamps creation and update fields with the same actor and time.
func NewAuditFields(now time.Time, actor string) AuditFields {
	if actor == "" {
		actor = SystemActor
	}
	return AuditFields{
		CreatedAt:     now,
		CreatedBy:     actor,
		LastUpdatedAt: now,
		LastUpdatedBy: actor,
	}
}

// Touch records a modification.
func (a *AuditFields) Touch(now time.Time, actor string) {
	if actor == "" {
		actor = SystemActor
	}
	a.LastUpdatedAt = now
	a.LastUpdatedBy = actor
}
