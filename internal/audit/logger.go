package audit

import (
	"encoding/json"

	"gorm.io/gorm"

	"github.com/clinicdesk/booking-gateway/internal/models"
)

// Sink is where audit events end up. The gorm sink is used when a database
// is configured; the nop sink keeps the gateway runnable without one.
type Sink interface {
	Log(sessionID, branchID, action, entity, entityID string, metadata any) error
}

type GormSink struct {
	db *gorm.DB
}

func NewGormSink(db *gorm.DB) *GormSink {
	return &GormSink{db: db}
}

func (l *GormSink) Log(
	sessionID string,
	branchID string,
	action string,
	entity string,
	entityID string,
	metadata any,
) error {

	var metaJSON string
	if metadata != nil {
		if b, err := json.Marshal(metadata); err == nil {
			metaJSON = string(b)
		}
	}

	rec := models.AuditLog{
		SessionID: sessionID,
		BranchID:  branchID,
		Action:    action,
		Entity:    entity,
		EntityID:  entityID,
		Metadata:  metaJSON,
	}

	return l.db.Create(&rec).Error
}

type NopSink struct{}

func (NopSink) Log(_, _, _, _, _ string, _ any) error { return nil }
