package dto

import (
	"garagebook/shared/constant"
	"garagebook/shared/model"
	"garagebook/shared/timezone"
	"time"
)

// Metadata is the audit block embedded in account responses, rendered in the garage's
// timezone. Timestamps that were never set render as empty and are omitted.
type Metadata struct {
	CreatedAt  string `json:"created_at,omitempty"`
	ModifiedAt string `json:"modified_at,omitempty"`
	CreatedBy  string `json:"created_by,omitempty"`
	ModifiedBy string `json:"modified_by,omitempty"`
}

func auditTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	return timezone.Format(t, constant.DateFormat)
}

func (m *Metadata) FromModel(source model.Metadata) {
	*m = Metadata{
		CreatedAt:  auditTime(source.CreatedAt),
		ModifiedAt: auditTime(source.ModifiedAt),
		CreatedBy:  source.CreatedBy,
		ModifiedBy: source.ModifiedBy,
	}
}
