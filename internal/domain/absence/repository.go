package absence

import (
	"context"
	"time"
)

type AbsenceRepository interface {
	// ListApprovedOverlapping returns approved absences intersecting [start, end]
	ListApprovedOverlapping(ctx context.Context, employeeID string, start, end time.Time) ([]Absence, error)
}
