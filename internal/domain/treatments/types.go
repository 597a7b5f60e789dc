package treatments

type Status string

const (
	StatusInProgress Status = "In Progress"
	StatusCompleted  Status = "Completed"
)

// DeadlineBucket clasifica el seguimiento (next treatment date).
type DeadlineBucket string

const (
	BucketOverdue DeadlineBucket = "overdue"
	BucketDueSoon DeadlineBucket = "due_soon"
	BucketOnTrack DeadlineBucket = "on_track"
)

// DueSoonDays es la ventana (inclusive) para considerar un seguimiento próximo.
const DueSoonDays = 7
