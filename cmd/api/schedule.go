package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"livestock-health/internal/config"
	"livestock-health/internal/domain/dosing"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	scheduleDate string
	scheduleJSON bool
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule [treatment-file]",
	Short: "Print the doses of a treatment for one day",
	Long: `Lee un tratamiento desde un archivo YAML o JSON y muestra las dosis del día,
sin servidor ni almacenamiento. Ejemplo de archivo:

  livestockTag: COW-001
  treatmentDate: 2024-06-01
  medicines:
    - name: Ivermectin
      dosage: 10ml
      frequency: 3
      duration: 3
      scheduleType: interval
      startTime: "08:00"
      intervalHours: 5`,
	Args: cobra.ExactArgs(1),
	RunE: runSchedule,
}

func init() {
	scheduleCmd.Flags().StringVarP(&scheduleDate, "date", "d", "", "fecha YYYY-MM-DD (por defecto hoy)")
	scheduleCmd.Flags().BoolVar(&scheduleJSON, "json", false, "salida JSON (DayView)")
}

// treatmentFile es el formato del archivo; JSON también se lee con yaml.v3.
type treatmentFile struct {
	LivestockTag  string            `yaml:"livestockTag"`
	TreatmentDate dosing.Date       `yaml:"treatmentDate"`
	Medicines     []dosing.Medicine `yaml:"medicines"`
}

func runSchedule(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	sched, err := readTreatmentFile(args[0])
	if err != nil {
		return err
	}

	now := time.Now()
	date := dosing.DateOf(now, loc)
	if scheduleDate != "" {
		date, err = dosing.ParseDate(scheduleDate)
		if err != nil {
			return fmt.Errorf("--date: %w", err)
		}
	}

	view := dayView(sched, date, now, loc)
	if scheduleJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	}
	printDayView(cmd.OutOrStdout(), sched, view)
	return nil
}

func readTreatmentFile(path string) (dosing.Schedule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return dosing.Schedule{}, fmt.Errorf("read treatment file: %w", err)
	}

	var f treatmentFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return dosing.Schedule{}, fmt.Errorf("parse treatment file: %w", err)
	}
	if f.TreatmentDate.IsZero() {
		return dosing.Schedule{}, fmt.Errorf("treatment file: treatmentDate is required")
	}
	if len(f.Medicines) == 0 {
		return dosing.Schedule{}, fmt.Errorf("treatment file: at least one medicine is required")
	}
	for i := range f.Medicines {
		if f.Medicines[i].ScheduleType == "" {
			f.Medicines[i].ScheduleType = dosing.ScheduleInterval
		}
		if err := dosing.ValidateMedicine(f.Medicines[i]); err != nil {
			return dosing.Schedule{}, fmt.Errorf("treatment file: medicine %d: %w", i+1, err)
		}
	}

	return dosing.Schedule{
		LivestockTag: strings.TrimSpace(f.LivestockTag),
		StartDate:    f.TreatmentDate,
		Medicines:    f.Medicines,
	}, nil
}

// dayView sin progreso guardado: todas las dosis pendientes.
func dayView(sched dosing.Schedule, date dosing.Date, now time.Time, loc *time.Location) dosing.DayView {
	doses := dosing.ResolveDoses(sched, date, nil)
	v := dosing.DayView{
		Date:         date,
		TreatmentDay: sched.TreatmentDay(date),
		Duration:     sched.Duration(),
		Doses:        doses,
		State:        dosing.StateOf(sched, date, doses),
	}
	if next, ok := dosing.NextDue(doses, date, now, loc); ok {
		v.Next = &next
	}
	return v
}

func printDayView(w io.Writer, sched dosing.Schedule, v dosing.DayView) {
	tag := sched.LivestockTag
	if tag == "" {
		tag = "-"
	}
	fmt.Fprintf(w, "%s  %s  day %d/%d  %s\n", tag, v.Date, v.TreatmentDay, v.Duration, v.State)
	if len(v.Doses) == 0 {
		fmt.Fprintln(w, "no doses scheduled")
		return
	}
	for _, d := range v.Doses {
		marker := " "
		if v.Next != nil && v.Next.ID == d.ID {
			marker = ">"
		}
		fmt.Fprintf(w, "%s %s  %-20s %s\n", marker, d.Time, d.MedicineName, d.Dosage)
	}
}
