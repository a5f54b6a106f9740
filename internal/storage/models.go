package storage

import (
	"github.com/google/uuid"
)

const (
	FieldID   = "id"
	FieldUUID = "uuid"
)

// BaseEntity provides common fields for all storage entities.
//
// ID is assigned by the backend on create and is only meaningful inside one
// collection. UUID is assigned by the caller and is the identity used for
// external references.
type BaseEntity struct {
	ID   int64  `json:"id"`
	UUID string `json:"uuid"`
}

// NewBaseEntity returns an entity identity with a fresh random UUID and no ID.
func NewBaseEntity() BaseEntity {
	return BaseEntity{
		ID:   0,
		UUID: uuid.NewString(),
	}
}

// Record is one stored entity as a flat field map.
type Record map[string]any

// ID returns the raw identity value of the record.
func (r Record) ID() any {
	return r[FieldID]
}

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}

	clone := make(Record, len(r))
	for k, v := range r {
		clone[k] = v
	}

	return clone
}

// Merge copies fields onto a clone of the record. The identity field is never
// overwritten.
func (r Record) Merge(fields Record) Record {
	merged := r.Clone()
	if merged == nil {
		merged = Record{}
	}

	for k, v := range fields {
		if k == FieldID {
			continue
		}
		merged[k] = v
	}

	return merged
}
