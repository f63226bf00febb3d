package queries

import (
	"context"
	"time"

	"playa-admin/internal/domain/lot"
	"playa-admin/internal/domain/shift"
	"playa-admin/internal/pkg/errs"
	"playa-admin/internal/usecase/shared"

	"github.com/google/uuid"
)

// ShiftRow is the raw shift row before classification.
type ShiftRow struct {
	ID            uuid.UUID
	LotID         uuid.UUID
	AttendantID   uuid.UUID
	AttendantName string
	Start         time.Time
	End           *time.Time
	OpeningCash   int64
	ClosingCash   *int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type ShiftViewRepo interface {
	FindByLot(ctx context.Context, lotID uuid.UUID, attendantID *uuid.UUID, from, to time.Time) ([]*ShiftRow, error)
	LotHours(ctx context.Context, lotID uuid.UUID) (string, error)
}

type ShiftQueries interface {
	// Board lists a lot's shifts annotated with duration and irregularity
	// hints against the lot's opening hours.
	Board(ctx context.Context, actor shared.Actor, lotID uuid.UUID, attendantID *uuid.UUID, from, to time.Time) ([]*ShiftView, error)
}

type shiftQueriesImpl struct {
	repo  ShiftViewRepo
	guard LotGuard
}

func NewShiftQueries(repo ShiftViewRepo, guard LotGuard) ShiftQueries {
	return &shiftQueriesImpl{repo: repo, guard: guard}
}

func (q *shiftQueriesImpl) Board(ctx context.Context, actor shared.Actor, lotID uuid.UUID, attendantID *uuid.UUID, from, to time.Time) ([]*ShiftView, error) {
	if err := guardLot(ctx, q.guard, actor, lotID); err != nil {
		return nil, err
	}

	rows, err := q.repo.FindByLot(ctx, lotID, attendantID, from, to)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list shifts")
	}

	hours, err := q.repo.LotHours(ctx, lotID)
	if err != nil {
		return nil, errs.Wrap(err, "failed to read lot hours")
	}
	schedule := lot.ParseScheduleLenient(hours)

	views := make([]*ShiftView, len(rows))
	for i, row := range rows {
		entity := shift.Reconstruct(
			row.ID, row.LotID, row.AttendantID,
			row.Start, row.End, row.OpeningCash, row.ClosingCash,
			row.CreatedAt, row.UpdatedAt,
		)
		c := shift.Classify(entity, schedule)

		views[i] = &ShiftView{
			ID:              row.ID,
			LotID:           row.LotID,
			AttendantID:     row.AttendantID,
			AttendantName:   row.AttendantName,
			Start:           row.Start,
			End:             row.End,
			OpeningCash:     row.OpeningCash,
			ClosingCash:     row.ClosingCash,
			DurationMinutes: c.DurationMinutes,
			DurationLabel:   c.DurationLabel,
			Severity:        c.Severity.String(),
			OutsideSchedule: c.OutsideSchedule,
			InProgress:      c.InProgress,
		}
	}
	return views, nil
}
