package treatments

import (
	"fmt"
	"sort"

	"livestock-health/internal/domain/dosing"
)

// ClassifyDeadline ubica un seguimiento respecto de today.
func ClassifyDeadline(next, today dosing.Date) (DeadlineBucket, int, string) {
	days := next.DaysSince(today)
	switch {
	case days < 0:
		return BucketOverdue, days, fmt.Sprintf("%d days overdue", -days)
	case days == 0:
		return BucketDueSoon, days, "Due today"
	case days <= DueSoonDays:
		return BucketDueSoon, days, fmt.Sprintf("Due in %d days", days)
	default:
		return BucketOnTrack, days, fmt.Sprintf("Due in %d days", days)
	}
}

// BuildDeadlines ignora tratamientos sin fecha de seguimiento y ordena
// por días restantes (los más vencidos primero).
func BuildDeadlines(items []Treatment, today dosing.Date) []Deadline {
	out := make([]Deadline, 0, len(items))
	for _, t := range items {
		if t.NextTreatmentDate.IsZero() {
			continue
		}
		bucket, days, label := ClassifyDeadline(t.NextTreatmentDate, today)
		out = append(out, Deadline{Treatment: t, Bucket: bucket, DaysLeft: days, Label: label})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DaysLeft < out[j].DaysLeft
	})
	return out
}
