package dto

import (
	"time"

	"github.com/google/uuid"
)

const (
	CatalogActionCreated     = "created"
	CatalogActionUpdated     = "updated"
	CatalogActionDeleted     = "deleted"
	CatalogActionFieldChange = "field_changed"
)

// CatalogChangedMessage is published in-process whenever the feature catalog
// changes, so cached plan read models can be dropped.
type CatalogChangedMessage struct {
	FeatureId  uuid.UUID `json:"feature_id"`
	Action     string    `json:"action"`
	OccurredAt time.Time `json:"occurred_at"`
}
