package diff

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/almanac-cloud/almanac/internal/models"
	schema "github.com/almanac-cloud/almanac/pkg/definition"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AutomationSpec captures the fields that participate in diffing.
type AutomationSpec struct {
	Name              string
	Description       string
	SkillName         string
	TriggerType       string
	ScheduleCron      string
	TriggerDefinition map[string]any
	Timezone          string
	Status            string
	Metadata          map[string]any
}

// FromDefinition normalises an automation definition into a spec.
func FromDefinition(def *schema.Definition) AutomationSpec {
	status := def.Spec.Status
	if status == "" {
		status = string(models.AutomationStatusEnabled)
	}
	return AutomationSpec{
		Name:              def.Metadata.Name,
		Description:       def.Metadata.Description,
		SkillName:         def.Spec.SkillName,
		TriggerType:       def.Spec.Trigger.Type,
		ScheduleCron:      def.Spec.Trigger.ScheduleCron,
		TriggerDefinition: cloneAnyMap(def.Spec.Trigger.Definition),
		Timezone:          def.Spec.Timezone,
		Status:            status,
		Metadata:          cloneAnyMap(def.Spec.Metadata),
	}
}

// FromModel normalises a stored automation into a spec.
func FromModel(am *models.Automation) AutomationSpec {
	return AutomationSpec{
		Name:              am.Name,
		Description:       am.Description,
		SkillName:         am.SkillName,
		TriggerType:       string(am.TriggerType),
		ScheduleCron:      am.ScheduleCron,
		TriggerDefinition: jsonMapToAnyMap(am.TriggerDefinition),
		Timezone:          am.Timezone,
		Status:            string(am.Status),
		Metadata:          jsonMapToAnyMap(am.Metadata),
	}
}

// LoadDefinitions walks the provided paths collecting automation definitions.
func LoadDefinitions(paths []string) (map[string]AutomationSpec, error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}
	specs := make(map[string]AutomationSpec)
	for _, p := range paths {
		if err := collectPath(p, func(def *schema.Definition) error {
			name := def.Metadata.Name
			if _, exists := specs[name]; exists {
				return fmt.Errorf("duplicate automation name %q", name)
			}
			specs[name] = FromDefinition(def)
			return nil
		}); err != nil {
			return nil, err
		}
	}
	return specs, nil
}

// LoadDatabaseSpecs loads the user's automations into specs keyed by name.
func LoadDatabaseSpecs(ctx context.Context, db *gorm.DB, userID uuid.UUID) (map[string]AutomationSpec, error) {
	var automations []models.Automation
	if err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&automations).Error; err != nil {
		return nil, err
	}

	specs := make(map[string]AutomationSpec, len(automations))
	for i := range automations {
		am := &automations[i]
		specs[am.Name] = FromModel(am)
	}
	return specs, nil
}

func collectPath(path string, fn func(*schema.Definition) error) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return filepath.WalkDir(path, func(p string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if d.IsDir() {
				return nil
			}
			if !isYAML(p) {
				return nil
			}
			return decodeDefinitions(p, fn)
		})
	}
	if !isYAML(path) {
		return fmt.Errorf("%s is not a YAML file", path)
	}
	return decodeDefinitions(path, fn)
}

func decodeDefinitions(path string, fn func(*schema.Definition) error) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	for {
		var def schema.Definition
		if err := dec.Decode(&def); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return fmt.Errorf("%s: %w", path, err)
		}
		if isBlankDefinition(&def) {
			continue
		}
		if err := def.Validate(); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if err := fn(&def); err != nil {
			return err
		}
	}
	return nil
}

func isBlankDefinition(def *schema.Definition) bool {
	return def.APIVersion == "" && def.Kind == "" && def.Metadata.Name == ""
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func cloneAnyMap(in map[string]any) map[string]any {
	if len(in) == 0 {
		return map[string]any{}
	}
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func jsonMapToAnyMap(in datatypes.JSONMap) map[string]any {
	if len(in) == 0 {
		return map[string]any{}
	}
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
