package definition

import "testing"

var example1 = `
$schema: https://almanac.cloud/schemas/automation.v1.json
apiVersion: v1
kind: Automation
metadata:
  name: weekly-report
  description: Email the weekly usage report
spec:
  skillName: report-builder
  trigger:
    type: schedule
    scheduleCron: "0 9 * * 1"
  timezone: "America/New_York"
  status: enabled
  metadata:
    recipients: ["team@example.com"]
`

var example2 = `
apiVersion: v1
kind: Automation
metadata:
  name: on-demand-summary
spec:
  trigger:
    type: manual
  timezone: "UTC"
`

func TestParseValidDefinitions(t *testing.T) {
	defs := []string{example1, example2}

	for idx, src := range defs {
		def, err := Parse([]byte(src))
		if err != nil {
			t.Fatalf("example %d parse error: %v", idx+1, err)
		}

		if def.Kind != KindAutomation {
			t.Fatalf("example %d unexpected kind: %s", idx+1, def.Kind)
		}

		if def.Spec.Trigger.Type == "" {
			t.Fatalf("example %d trigger type not defaulted", idx+1)
		}
	}
}

func TestParseDefaultsManualTrigger(t *testing.T) {
	def, err := Parse([]byte(example2))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if def.Spec.Trigger.Type != "manual" {
		t.Fatalf("expected manual trigger, got %s", def.Spec.Trigger.Type)
	}
}

func TestParseKeepsCronVerbatim(t *testing.T) {
	src := `
apiVersion: v1
kind: Automation
metadata:
  name: odd-cron
spec:
  trigger:
    type: schedule
    scheduleCron: "not a cron at all"
  timezone: "UTC"
`
	def, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if def.Spec.Trigger.ScheduleCron != "not a cron at all" {
		t.Fatalf("cron expression was altered: %q", def.Spec.Trigger.ScheduleCron)
	}
}

func TestParseRejectsBadDocuments(t *testing.T) {
	cases := map[string]string{
		"wrong kind": `
apiVersion: v1
kind: Job
metadata:
  name: x
spec:
  timezone: UTC
`,
		"missing name": `
apiVersion: v1
kind: Automation
metadata: {}
spec:
  timezone: UTC
`,
		"missing timezone": `
apiVersion: v1
kind: Automation
metadata:
  name: x
spec: {}
`,
		"bad trigger type": `
apiVersion: v1
kind: Automation
metadata:
  name: x
spec:
  trigger:
    type: webhook
  timezone: UTC
`,
		"bad status": `
apiVersion: v1
kind: Automation
metadata:
  name: x
spec:
  trigger:
    type: manual
  timezone: UTC
  status: paused
`,
	}

	for name, src := range cases {
		if _, err := Parse([]byte(src)); err == nil {
			t.Fatalf("%s: expected parse error", name)
		}
	}
}
