package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)

type LotView struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Hours     string    `json:"hours"`
	State     string    `json:"state"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Situation values for a space row.
const (
	SituationFree       = "LIBRE"
	SituationOccupied   = "OCUPADA"
	SituationSubscribed = "ABONADA"
)

type SpaceView struct {
	ID        uuid.UUID `json:"id"`
	LotID     uuid.UUID `json:"lot_id"`
	TypeID    uuid.UUID `json:"type_id"`
	TypeName  string    `json:"type_name"`
	Label     string    `json:"label"`
	State     string    `json:"state"`
	Situation string    `json:"situation"`
	CreatedAt time.Time `json:"created_at"`
}

type SpaceTypeView struct {
	ID              uuid.UUID  `json:"id"`
	LotID           uuid.UUID  `json:"lot_id"`
	Name            string     `json:"name"`
	Description     string     `json:"description"`
	Characteristics []string   `json:"characteristics"`
	RemovedAt       *time.Time `json:"removed_at,omitempty"`
}

type RateView struct {
	ID          uuid.UUID `json:"id"`
	LotID       uuid.UUID `json:"lot_id"`
	SpaceTypeID uuid.UUID `json:"space_type_id"`
	Mode        string    `json:"mode"`
	VehicleType string    `json:"vehicle_type"`
	Price       int64     `json:"price"`
}

type VehicleView struct {
	Plate       string `json:"plate"`
	VehicleType string `json:"vehicle_type"`
}

type BillView struct {
	ID       uuid.UUID `json:"id"`
	IssuedAt time.Time `json:"issued_at"`
	Amount   int64     `json:"amount"`
	Status   string    `json:"status"`
	Debt     int64     `json:"debt"`
}

type SubscriptionView struct {
	ID             uuid.UUID     `json:"id"`
	LotID          uuid.UUID     `json:"lot_id"`
	SpaceID        uuid.UUID     `json:"space_id"`
	SpaceLabel     string        `json:"space_label"`
	SubscriberName string        `json:"subscriber_name"`
	MonthlyAmount  int64         `json:"monthly_amount"`
	StartDate      time.Time     `json:"start_date"`
	EndDate        *time.Time    `json:"end_date,omitempty"`
	State          string        `json:"state"`
	Vehicles       []VehicleView `json:"vehicles"`
	Bills          []BillView    `json:"bills,omitempty"`
}

type ShiftView struct {
	ID              uuid.UUID  `json:"id"`
	LotID           uuid.UUID  `json:"lot_id"`
	AttendantID     uuid.UUID  `json:"attendant_id"`
	AttendantName   string     `json:"attendant_name"`
	Start           time.Time  `json:"start"`
	End             *time.Time `json:"end,omitempty"`
	OpeningCash     int64      `json:"opening_cash"`
	ClosingCash     *int64     `json:"closing_cash,omitempty"`
	DurationMinutes int64      `json:"duration_minutes"`
	DurationLabel   string     `json:"duration_label"`
	Severity        string     `json:"severity"`
	OutsideSchedule bool       `json:"outside_schedule"`
	InProgress      bool       `json:"in_progress"`
}

// PaymentRecord is the raw ledger row the revenue aggregator consumes.
type PaymentRecord struct {
	ID           uuid.UUID
	LotID        uuid.UUID
	AttendantID  uuid.UUID
	Amount       int64
	PaidAt       time.Time
	OccupationID *uuid.UUID
	BillID       *uuid.UUID
}

type PaymentDetailRow struct {
	ID            uuid.UUID `json:"id"`
	LotID         uuid.UUID `json:"lot_id"`
	LotName       string    `json:"lot_name"`
	AttendantName string    `json:"attendant_name"`
	Kind          string    `json:"kind"`
	Amount        int64     `json:"amount"`
	PaidAt        time.Time `json:"paid_at"`
}

type MonthlyRevenueRow struct {
	LotID         uuid.UUID `json:"lot_id"`
	LotName       string    `json:"lot_name"`
	Month         string    `json:"month"` // YYYY-MM
	PaymentCount  int64     `json:"payment_count"`
	Total         int64     `json:"total"`
	AverageTicket int64     `json:"average_ticket"`
}

type DailyRevenueRow struct {
	Date          string `json:"date"` // YYYY-MM-DD
	Total         int64  `json:"total"`
	Subscriptions int64  `json:"subscriptions"`
	Occupations   int64  `json:"occupations"`
}

// RevenueReport bundles the three shapes derived from one payment fetch.
// Their totals cross-check: sum(Daily.Total) == sum(Monthly.Total) ==
// sum(Detail.Amount).
type RevenueReport struct {
	Monthly []MonthlyRevenueRow `json:"monthly"`
	Daily   []DailyRevenueRow   `json:"daily"`
	Detail  []PaymentDetailRow  `json:"detail"`
}

type RevenueFilter struct {
	From        time.Time  `json:"from"`
	To          time.Time  `json:"to"`
	LotID       *uuid.UUID `json:"lot_id,omitempty"`
	AttendantID *uuid.UUID `json:"attendant_id,omitempty"`
	Kind        *string    `json:"kind,omitempty"` // ABONO | OCUPACION
}
