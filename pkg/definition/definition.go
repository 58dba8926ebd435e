package definition

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	APIVersionV1   = "v1"
	KindAutomation = "Automation"
)

// Definition models the root automation document.
type Definition struct {
	Schema     string   `yaml:"$schema,omitempty" json:"$schema,omitempty"`
	APIVersion string   `yaml:"apiVersion" json:"apiVersion"`
	Kind       string   `yaml:"kind" json:"kind"`
	Metadata   Metadata `yaml:"metadata" json:"metadata"`
	Spec       Spec     `yaml:"spec" json:"spec"`
}

// Metadata contains descriptive data for the automation.
type Metadata struct {
	Name        string            `yaml:"name" json:"name"`
	Description string            `yaml:"description,omitempty" json:"description,omitempty"`
	Labels      map[string]string `yaml:"labels,omitempty" json:"labels,omitempty"`
}

// Spec defines the automation's scheduling rule.
type Spec struct {
	SkillName string         `yaml:"skillName,omitempty" json:"skillName,omitempty"`
	Trigger   Trigger        `yaml:"trigger" json:"trigger"`
	Timezone  string         `yaml:"timezone" json:"timezone"`
	Status    string         `yaml:"status,omitempty" json:"status,omitempty"`
	Metadata  map[string]any `yaml:"metadata,omitempty" json:"metadata,omitempty"`
}

// Trigger defines how the automation fires. A schedule trigger
// carries its cron expression as opaque text.
type Trigger struct {
	Type         string         `yaml:"type" json:"type"`
	ScheduleCron string         `yaml:"scheduleCron,omitempty" json:"scheduleCron,omitempty"`
	Definition   map[string]any `yaml:"definition,omitempty" json:"definition,omitempty"`
}

// UnmarshalYAML sets defaults while deserialising a trigger.
func (t *Trigger) UnmarshalYAML(value *yaml.Node) error {
	type rawTrigger Trigger
	rt := rawTrigger{Type: "manual"}
	if err := value.Decode(&rt); err != nil {
		return err
	}
	*t = Trigger(rt)
	if t.Type == "" {
		t.Type = "manual"
	}
	return nil
}

// Parse parses YAML bytes into a Definition.
func Parse(data []byte) (*Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, err
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return &def, nil
}

// Validate performs semantic validation on the definition. Cron
// expressions are deliberately not checked; they are stored and
// surfaced verbatim.
func (d *Definition) Validate() error {
	if d.APIVersion != APIVersionV1 {
		return fmt.Errorf("unsupported apiVersion: %s", d.APIVersion)
	}
	if d.Kind != KindAutomation {
		return fmt.Errorf("unsupported kind: %s", d.Kind)
	}
	if strings.TrimSpace(d.Metadata.Name) == "" {
		return fmt.Errorf("metadata.name is required")
	}
	if strings.TrimSpace(d.Spec.Timezone) == "" {
		return fmt.Errorf("spec.timezone is required")
	}

	if d.Spec.Trigger.Type == "" {
		d.Spec.Trigger.Type = "manual"
	}
	switch d.Spec.Trigger.Type {
	case "manual", "schedule", "event":
	default:
		return fmt.Errorf("spec.trigger.type must be one of [manual,schedule,event]")
	}

	switch d.Spec.Status {
	case "", "enabled", "disabled":
	default:
		return fmt.Errorf("spec.status must be one of [enabled,disabled]")
	}

	return nil
}
