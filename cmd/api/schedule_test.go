package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"livestock-health/internal/domain/dosing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const treatmentYAML = `
livestockTag: COW-001
treatmentDate: 2024-06-01
medicines:
  - name: Ivermectin
    dosage: 10ml
    frequency: 3
    duration: 3
    startTime: "08:00"
    intervalHours: 5
  - name: Vitamin B
    dosage: 5ml
    frequency: 2
    duration: 3
    scheduleType: exact
    exactTimes: ["12:30", "06:00"]
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadTreatmentFile_YAML(t *testing.T) {
	sched, err := readTreatmentFile(writeFile(t, "treatment.yaml", treatmentYAML))
	require.NoError(t, err)

	assert.Equal(t, "COW-001", sched.LivestockTag)
	assert.True(t, sched.StartDate.Equal(dosing.NewDate(2024, time.June, 1)))
	require.Len(t, sched.Medicines, 2)
	assert.Equal(t, dosing.ScheduleInterval, sched.Medicines[0].ScheduleType, "schedule type defaults to interval")
}

func TestReadTreatmentFile_JSON(t *testing.T) {
	path := writeFile(t, "treatment.json", `{
  "livestockTag": "GOAT-3",
  "treatmentDate": "2024-06-01",
  "medicines": [{"name": "Penicillin", "frequency": 1, "duration": 2, "scheduleType": "interval", "startTime": "09:00", "intervalHours": 24}]
}`)

	sched, err := readTreatmentFile(path)
	require.NoError(t, err)
	assert.Equal(t, "GOAT-3", sched.LivestockTag)
	assert.Equal(t, 2, sched.Duration())
}

func TestReadTreatmentFile_Invalid(t *testing.T) {
	cases := map[string]string{
		"no date":      "medicines:\n  - {name: A, frequency: 1, duration: 1, startTime: '08:00', intervalHours: 1}\n",
		"no medicines": "treatmentDate: 2024-06-01\n",
		"bad medicine": "treatmentDate: 2024-06-01\nmedicines:\n  - {name: A, frequency: 0, duration: 1}\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := readTreatmentFile(writeFile(t, "t.yaml", content))
			assert.Error(t, err)
		})
	}
}

func TestRunSchedule_PrintsDay(t *testing.T) {
	path := writeFile(t, "treatment.yaml", treatmentYAML)
	configPath = filepath.Join(t.TempDir(), "missing.yaml")
	t.Setenv("TIMEZONE", "UTC")

	scheduleDate = "2024-06-02"
	scheduleJSON = false
	defer func() { scheduleDate, scheduleJSON = "", false }()

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	require.NoError(t, runSchedule(cmd, []string{path}))

	text := out.String()
	assert.Contains(t, text, "COW-001  2024-06-02  day 2/3  awaiting-doses")
	for _, want := range []string{"08:00", "13:00", "18:00", "06:00", "12:30"} {
		assert.Contains(t, text, want)
	}
	// exactas ordenadas: 06:00 antes de 12:30
	assert.Less(t, strings.Index(text, "06:00"), strings.Index(text, "12:30"))
	// fecha que no es hoy: la próxima es la primera pendiente del día
	assert.Contains(t, text, "> 06:00")
}

func TestRunSchedule_JSONOutsideWindow(t *testing.T) {
	path := writeFile(t, "treatment.yaml", treatmentYAML)
	configPath = filepath.Join(t.TempDir(), "missing.yaml")

	scheduleDate = "2024-07-01"
	scheduleJSON = true
	defer func() { scheduleDate, scheduleJSON = "", false }()

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	require.NoError(t, runSchedule(cmd, []string{path}))

	var v struct {
		State string            `json:"state"`
		Doses []json.RawMessage `json:"doses"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &v))
	assert.Equal(t, string(dosing.StateOutsideWindow), v.State)
	assert.Empty(t, v.Doses)
}
