package definition

import (
	"context"
	"errors"

	"github.com/almanac-cloud/almanac/internal/models"
	schema "github.com/almanac-cloud/almanac/pkg/definition"
	"github.com/almanac-cloud/almanac/pkg/jsonmap"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Importer reconciles automation definitions into the database.
// Definitions are keyed by (user, name): applying the same document
// twice updates in place rather than duplicating.
type Importer struct {
	db *gorm.DB
}

// NewImporter creates a new importer. The provided db connection must be non-nil.
func NewImporter(dbConn *gorm.DB) *Importer {
	if dbConn == nil {
		panic("definition importer requires a database connection")
	}
	return &Importer{db: dbConn}
}

// Apply persists the definition for userID and returns the resulting
// automation record.
func (i *Importer) Apply(ctx context.Context, userID uuid.UUID, def *schema.Definition) (*models.Automation, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}

	var result *models.Automation
	err := i.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Automation
		err := tx.Where("user_id = ? AND name = ?", userID, def.Metadata.Name).
			First(&existing).Error

		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			result = fromDefinition(userID, def)
			return tx.Create(result).Error
		case err != nil:
			return err
		}

		desired := fromDefinition(userID, def)
		desired.ID = existing.ID
		desired.CreatedAt = existing.CreatedAt
		result = desired
		return tx.Save(result).Error
	})

	if err != nil {
		return nil, err
	}

	return result, nil
}

func fromDefinition(userID uuid.UUID, def *schema.Definition) *models.Automation {
	status := models.AutomationStatus(def.Spec.Status)
	if status == "" {
		status = models.AutomationStatusEnabled
	}

	return &models.Automation{
		ID:                uuid.New(),
		UserID:            userID,
		Name:              def.Metadata.Name,
		Description:       def.Metadata.Description,
		SkillName:         def.Spec.SkillName,
		TriggerType:       models.TriggerType(def.Spec.Trigger.Type),
		TriggerDefinition: jsonmap.FromMap(def.Spec.Trigger.Definition),
		ScheduleCron:      def.Spec.Trigger.ScheduleCron,
		Timezone:          def.Spec.Timezone,
		Status:            status,
		Metadata:          jsonmap.FromMap(def.Spec.Metadata),
	}
}
