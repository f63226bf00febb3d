package payment

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNegativeAmount = errors.New("payment amount cannot be negative")
	ErrAmbiguousRef   = errors.New("payment cannot reference both an occupation and a bill")
)

// Kind tags a payment for reporting. Classification is exhaustive and
// mutually exclusive: a bill reference makes it ABONO, an occupation
// reference makes it OCUPACION, neither makes it OTRO.
type Kind string

const (
	KindSubscription Kind = "ABONO"
	KindOccupation   Kind = "OCUPACION"
	KindOther        Kind = "OTRO"
)

func (k Kind) String() string {
	return string(k)
}

// Classify derives the kind from the two optional references.
func Classify(occupationID, billID *uuid.UUID) Kind {
	switch {
	case billID != nil:
		return KindSubscription
	case occupationID != nil:
		return KindOccupation
	default:
		return KindOther
	}
}

// Payment is one recorded transaction in a lot's ledger.
type Payment struct {
	id           uuid.UUID
	lotID        uuid.UUID
	attendantID  uuid.UUID
	amount       int64
	paidAt       time.Time
	occupationID *uuid.UUID
	billID       *uuid.UUID
}

func New(lotID, attendantID uuid.UUID, amount int64, paidAt time.Time, occupationID, billID *uuid.UUID) (*Payment, error) {
	if amount < 0 {
		return nil, ErrNegativeAmount
	}
	if occupationID != nil && billID != nil {
		return nil, ErrAmbiguousRef
	}
	return &Payment{
		id:           uuid.New(),
		lotID:        lotID,
		attendantID:  attendantID,
		amount:       amount,
		paidAt:       paidAt,
		occupationID: occupationID,
		billID:       billID,
	}, nil
}

func (p *Payment) Kind() Kind {
	return Classify(p.occupationID, p.billID)
}

func (p *Payment) ID() uuid.UUID            { return p.id }
func (p *Payment) LotID() uuid.UUID         { return p.lotID }
func (p *Payment) AttendantID() uuid.UUID   { return p.attendantID }
func (p *Payment) Amount() int64            { return p.amount }
func (p *Payment) PaidAt() time.Time        { return p.paidAt }
func (p *Payment) OccupationID() *uuid.UUID { return p.occupationID }
func (p *Payment) BillID() *uuid.UUID       { return p.billID }
