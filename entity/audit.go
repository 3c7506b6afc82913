package entity

import "time"

// Audit carries created/updated timestamps plus the employee who wrote the row.
// Catalog write paths call the Apply methods explicitly before persisting.
type Audit struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	CreatedBy uint      `json:"createdBy"`
	UpdatedBy uint      `json:"updatedBy"`
}

func (a *Audit) ApplyCreateAudit(now time.Time, actorID uint) {
	a.CreatedAt = now
	a.UpdatedAt = now
	a.CreatedBy = actorID
	a.UpdatedBy = actorID
}

func (a *Audit) ApplyUpdateAudit(now time.Time, actorID uint) {
	a.UpdatedAt = now
	a.UpdatedBy = actorID
}
