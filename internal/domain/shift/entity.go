package shift

import (
	"time"

	"github.com/google/uuid"
)

// Shift is one attendant's work session at a lot, bounded by cash-register
// open and close. A nil end means the shift is still open; at most one open
// shift may exist per attendant+lot, enforced at the storage layer.
type Shift struct {
	id          uuid.UUID
	lotID       uuid.UUID
	attendantID uuid.UUID
	start       time.Time
	end         *time.Time
	openingCash int64
	closingCash *int64
	createdAt   time.Time
	updatedAt   time.Time
}

func Open(lotID, attendantID uuid.UUID, start time.Time, openingCash int64) (*Shift, error) {
	if openingCash < 0 {
		return nil, ErrNegativeCash
	}
	return &Shift{
		id:          uuid.New(),
		lotID:       lotID,
		attendantID: attendantID,
		start:       start,
		openingCash: openingCash,
	}, nil
}

func Reconstruct(
	id, lotID, attendantID uuid.UUID,
	start time.Time,
	end *time.Time,
	openingCash int64,
	closingCash *int64,
	createdAt, updatedAt time.Time,
) *Shift {
	return &Shift{
		id:          id,
		lotID:       lotID,
		attendantID: attendantID,
		start:       start,
		end:         end,
		openingCash: openingCash,
		closingCash: closingCash,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (s *Shift) Close(at time.Time, closingCash int64) error {
	if s.end != nil {
		return ErrAlreadyClosed
	}
	if at.Before(s.start) {
		return ErrEndBeforeStart
	}
	if closingCash < 0 {
		return ErrNegativeCash
	}
	s.end = &at
	s.closingCash = &closingCash
	return nil
}

func (s *Shift) IsOpen() bool {
	return s.end == nil
}

func (s *Shift) ID() uuid.UUID          { return s.id }
func (s *Shift) LotID() uuid.UUID       { return s.lotID }
func (s *Shift) AttendantID() uuid.UUID { return s.attendantID }
func (s *Shift) Start() time.Time       { return s.start }
func (s *Shift) End() *time.Time        { return s.end }
func (s *Shift) OpeningCash() int64     { return s.openingCash }
func (s *Shift) ClosingCash() *int64    { return s.closingCash }
func (s *Shift) CreatedAt() time.Time   { return s.createdAt }
func (s *Shift) UpdatedAt() time.Time   { return s.updatedAt }
