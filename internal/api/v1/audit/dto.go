package audit

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/tii-its/coffee-fund-app/internal/models"
)

type AuditEntryResponse struct {
	ID       uint            `json:"id"`
	ActorID  uuid.UUID       `json:"actor_id"`
	Action   string          `json:"action"`
	Entity   string          `json:"entity"`
	EntityID uuid.UUID       `json:"entity_id"`
	Meta     json.RawMessage `json:"meta,omitempty"`
	At       time.Time       `json:"at"`
}

func NewAuditEntryResponse(e models.AuditEntry) AuditEntryResponse {
	return AuditEntryResponse{
		ID:       e.ID,
		ActorID:  e.ActorID,
		Action:   e.Action,
		Entity:   e.Entity,
		EntityID: e.EntityID,
		Meta:     json.RawMessage(e.Meta),
		At:       e.At,
	}
}

type AuditListResponse struct {
	Entries []AuditEntryResponse `json:"entries"`
	Total   int64                `json:"total"`
}
