//go:build unit

package commands

import (
	"context"
	"time"

	"playa-admin/internal/domain/lot"
	"playa-admin/internal/domain/payment"
	"playa-admin/internal/domain/rate"
	"playa-admin/internal/domain/shift"
	"playa-admin/internal/domain/space"
	"playa-admin/internal/domain/subscription"
	"playa-admin/internal/domain/user"
	"playa-admin/internal/infra"
	"playa-admin/internal/usecase/shared"

	"github.com/google/uuid"
)

var errNotFound = infra.WrapRepoErr("not found", nil, infra.KindNotFound)

// stubReads returns canned snapshots keyed by id. A nil map entry means
// not found.
type stubReads struct {
	lots          map[uuid.UUID]*shared.LotSnapshot
	spaces        map[uuid.UUID]*shared.SpaceSnapshot
	usage         map[uuid.UUID]shared.SpaceUsage
	usageErr      error
	spaceTypes    map[uuid.UUID]*shared.SpaceTypeSnapshot
	typeRefd      map[uuid.UUID]bool
	rates         map[string]*shared.RateSnapshot
	openShifts    map[uuid.UUID]*shared.ShiftSnapshot
	subscriptions map[uuid.UUID]*shared.SubscriptionSnapshot
	unpaidCounts  map[uuid.UUID]int64
	bills         map[uuid.UUID]*shared.BillSnapshot
	occupations   map[uuid.UUID]*shared.OccupationSnapshot
	usersByEmail  map[string]*shared.UserSnapshot
	usersByID     map[uuid.UUID]*shared.UserSnapshot
	invitations   map[uuid.UUID]*shared.InvitationSnapshot
}

func rateKey(lotID, typeID uuid.UUID, mode, vehicleType string) string {
	return lotID.String() + "/" + typeID.String() + "/" + mode + "/" + vehicleType
}

func (r *stubReads) LotByID(_ context.Context, id uuid.UUID) (*shared.LotSnapshot, error) {
	if s, ok := r.lots[id]; ok {
		return s, nil
	}
	return nil, errNotFound
}

func (r *stubReads) SpaceByID(_ context.Context, id uuid.UUID) (*shared.SpaceSnapshot, error) {
	if s, ok := r.spaces[id]; ok {
		return s, nil
	}
	return nil, errNotFound
}

func (r *stubReads) SpaceUsage(_ context.Context, spaceID uuid.UUID) (shared.SpaceUsage, error) {
	if r.usageErr != nil {
		return shared.SpaceUsage{}, r.usageErr
	}
	return r.usage[spaceID], nil
}

func (r *stubReads) SpaceTypeByID(_ context.Context, id uuid.UUID) (*shared.SpaceTypeSnapshot, error) {
	if s, ok := r.spaceTypes[id]; ok {
		return s, nil
	}
	return nil, errNotFound
}

func (r *stubReads) SpaceTypeReferenced(_ context.Context, id uuid.UUID) (bool, error) {
	return r.typeRefd[id], nil
}

func (r *stubReads) RateByKey(_ context.Context, lotID, spaceTypeID uuid.UUID, mode, vehicleType string) (*shared.RateSnapshot, error) {
	return r.rates[rateKey(lotID, spaceTypeID, mode, vehicleType)], nil
}

func (r *stubReads) OpenShift(_ context.Context, attendantID uuid.UUID) (*shared.ShiftSnapshot, error) {
	return r.openShifts[attendantID], nil
}

func (r *stubReads) SubscriptionByID(_ context.Context, id uuid.UUID) (*shared.SubscriptionSnapshot, error) {
	if s, ok := r.subscriptions[id]; ok {
		return s, nil
	}
	return nil, errNotFound
}

func (r *stubReads) UnpaidBillCount(_ context.Context, subscriptionID uuid.UUID) (int64, error) {
	return r.unpaidCounts[subscriptionID], nil
}

func (r *stubReads) BillByID(_ context.Context, id uuid.UUID) (*shared.BillSnapshot, error) {
	if b, ok := r.bills[id]; ok {
		return b, nil
	}
	return nil, errNotFound
}

func (r *stubReads) OpenOccupationBySpace(_ context.Context, spaceID uuid.UUID) (*shared.OccupationSnapshot, error) {
	for _, occ := range r.occupations {
		if occ.SpaceID == spaceID && occ.Exit == nil {
			return occ, nil
		}
	}
	return nil, nil
}

func (r *stubReads) OccupationByID(_ context.Context, id uuid.UUID) (*shared.OccupationSnapshot, error) {
	return r.occupations[id], nil
}

func (r *stubReads) UserByEmail(_ context.Context, email string) (*shared.UserSnapshot, error) {
	return r.usersByEmail[email], nil
}

func (r *stubReads) UserByID(_ context.Context, id uuid.UUID) (*shared.UserSnapshot, error) {
	if s, ok := r.usersByID[id]; ok {
		return s, nil
	}
	return nil, errNotFound
}

func (r *stubReads) InvitationByToken(_ context.Context, token uuid.UUID) (*shared.InvitationSnapshot, error) {
	return r.invitations[token], nil
}

// stubTx records every write so tests can assert on what a command
// persisted without a database.
type stubTx struct {
	reads *stubReads

	createdLots          []*lot.Lot
	updatedLots          []*lot.Lot
	createdSpaces        []*space.Space
	spaceStates          map[uuid.UUID]space.State
	createdSpaceTypes    []*space.SpaceType
	updatedSpaceTypes    []*space.SpaceType
	tombstonedTypes      []uuid.UUID
	deletedTypes         []uuid.UUID
	createdRates         []*rate.Rate
	repricedRates        map[uuid.UUID]int64
	deletedRates         []uuid.UUID
	createdSubscribers   []string
	createdSubscriptions []*subscription.Subscription
	updatedSubscriptions []*subscription.Subscription
	replacedVehicles     map[uuid.UUID][]subscription.Vehicle
	createdBills         []stubBill
	paidBills            map[uuid.UUID]time.Time
	createdPayments      []*payment.Payment
	createdShifts        []*shift.Shift
	closedShifts         []uuid.UUID
	createdOccupations   []stubOccupation
	closedOccupations    map[uuid.UUID]time.Time
	createdUsers         []*user.User
	deletedUsers         []uuid.UUID
	activatedUsers       map[uuid.UUID]string
	lastLogins           map[uuid.UUID]time.Time
	createdInvitations   []shared.InvitationSnapshot
	acceptedInvitations  []uuid.UUID

	userCreateErr       error
	invitationCreateErr error
	userDeleteErr       error
	rateCreateErr       error
}

type stubBill struct {
	SubscriptionID uuid.UUID
	IssuedAt       time.Time
	Amount         int64
	Status         subscription.BillStatus
}

type stubOccupation struct {
	SpaceID     uuid.UUID
	LotID       uuid.UUID
	Plate       string
	VehicleType string
	Entry       time.Time
}

func newStubTx(reads *stubReads) *stubTx {
	return &stubTx{
		reads:             reads,
		spaceStates:       make(map[uuid.UUID]space.State),
		repricedRates:     make(map[uuid.UUID]int64),
		paidBills:         make(map[uuid.UUID]time.Time),
		replacedVehicles:  make(map[uuid.UUID][]subscription.Vehicle),
		closedOccupations: make(map[uuid.UUID]time.Time),
		activatedUsers:    make(map[uuid.UUID]string),
		lastLogins:        make(map[uuid.UUID]time.Time),
	}
}

func (t *stubTx) Lots() shared.LotRepository                   { return (*stubLotRepo)(t) }
func (t *stubTx) Spaces() shared.SpaceRepository               { return (*stubSpaceRepo)(t) }
func (t *stubTx) SpaceTypes() shared.SpaceTypeRepository       { return (*stubSpaceTypeRepo)(t) }
func (t *stubTx) Rates() shared.RateRepository                 { return (*stubRateRepo)(t) }
func (t *stubTx) Subscribers() shared.SubscriberRepository     { return (*stubSubscriberRepo)(t) }
func (t *stubTx) Subscriptions() shared.SubscriptionRepository { return (*stubSubscriptionRepo)(t) }
func (t *stubTx) Bills() shared.BillRepository                 { return (*stubBillRepo)(t) }
func (t *stubTx) Payments() shared.PaymentRepository           { return (*stubPaymentRepo)(t) }
func (t *stubTx) Shifts() shared.ShiftRepository               { return (*stubShiftRepo)(t) }
func (t *stubTx) Occupations() shared.OccupationRepository     { return (*stubOccupationRepo)(t) }
func (t *stubTx) Users() shared.UserRepository                 { return (*stubUserRepo)(t) }
func (t *stubTx) Invitations() shared.InvitationRepository     { return (*stubInvitationRepo)(t) }
func (t *stubTx) Reads() shared.CommandReads                   { return t.reads }

type stubLotRepo stubTx

func (r *stubLotRepo) Create(_ context.Context, l *lot.Lot) (uuid.UUID, error) {
	r.createdLots = append(r.createdLots, l)
	return l.ID(), nil
}

func (r *stubLotRepo) Update(_ context.Context, l *lot.Lot) error {
	r.updatedLots = append(r.updatedLots, l)
	return nil
}

type stubSpaceRepo stubTx

func (r *stubSpaceRepo) Create(_ context.Context, s *space.Space) (uuid.UUID, error) {
	r.createdSpaces = append(r.createdSpaces, s)
	return s.ID(), nil
}

func (r *stubSpaceRepo) UpdateState(_ context.Context, id uuid.UUID, state space.State) error {
	r.spaceStates[id] = state
	return nil
}

type stubSpaceTypeRepo stubTx

func (r *stubSpaceTypeRepo) Create(_ context.Context, t *space.SpaceType) (uuid.UUID, error) {
	r.createdSpaceTypes = append(r.createdSpaceTypes, t)
	return t.ID(), nil
}

func (r *stubSpaceTypeRepo) Update(_ context.Context, t *space.SpaceType) error {
	r.updatedSpaceTypes = append(r.updatedSpaceTypes, t)
	return nil
}

func (r *stubSpaceTypeRepo) Tombstone(_ context.Context, id uuid.UUID, _ time.Time) error {
	r.tombstonedTypes = append(r.tombstonedTypes, id)
	return nil
}

func (r *stubSpaceTypeRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.deletedTypes = append(r.deletedTypes, id)
	return nil
}

type stubRateRepo stubTx

func (r *stubRateRepo) Create(_ context.Context, rt *rate.Rate) (uuid.UUID, error) {
	if r.rateCreateErr != nil {
		return uuid.Nil, r.rateCreateErr
	}
	r.createdRates = append(r.createdRates, rt)
	return rt.ID(), nil
}

func (r *stubRateRepo) UpdatePrice(_ context.Context, id uuid.UUID, price int64) error {
	r.repricedRates[id] = price
	return nil
}

func (r *stubRateRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.deletedRates = append(r.deletedRates, id)
	return nil
}

type stubSubscriberRepo stubTx

func (r *stubSubscriberRepo) Create(_ context.Context, name, _, _ string) (uuid.UUID, error) {
	r.createdSubscribers = append(r.createdSubscribers, name)
	return uuid.New(), nil
}

type stubSubscriptionRepo stubTx

func (r *stubSubscriptionRepo) Create(_ context.Context, s *subscription.Subscription) (uuid.UUID, error) {
	r.createdSubscriptions = append(r.createdSubscriptions, s)
	return s.ID(), nil
}

func (r *stubSubscriptionRepo) Update(_ context.Context, s *subscription.Subscription) error {
	r.updatedSubscriptions = append(r.updatedSubscriptions, s)
	return nil
}

func (r *stubSubscriptionRepo) ReplaceVehicles(_ context.Context, id uuid.UUID, vehicles []subscription.Vehicle) error {
	r.replacedVehicles[id] = vehicles
	return nil
}

type stubBillRepo stubTx

func (r *stubBillRepo) Create(_ context.Context, subscriptionID uuid.UUID, issuedAt time.Time, amount int64, status subscription.BillStatus) (uuid.UUID, error) {
	r.createdBills = append(r.createdBills, stubBill{
		SubscriptionID: subscriptionID,
		IssuedAt:       issuedAt,
		Amount:         amount,
		Status:         status,
	})
	return uuid.New(), nil
}

func (r *stubBillRepo) MarkPaid(_ context.Context, billID uuid.UUID, paidAt time.Time) error {
	r.paidBills[billID] = paidAt
	return nil
}

type stubPaymentRepo stubTx

func (r *stubPaymentRepo) Create(_ context.Context, p *payment.Payment) (uuid.UUID, error) {
	r.createdPayments = append(r.createdPayments, p)
	return p.ID(), nil
}

type stubShiftRepo stubTx

func (r *stubShiftRepo) Create(_ context.Context, s *shift.Shift) (uuid.UUID, error) {
	r.createdShifts = append(r.createdShifts, s)
	return s.ID(), nil
}

func (r *stubShiftRepo) Close(_ context.Context, id uuid.UUID, _ time.Time, _ int64) error {
	r.closedShifts = append(r.closedShifts, id)
	return nil
}

type stubOccupationRepo stubTx

func (r *stubOccupationRepo) Create(_ context.Context, spaceID, lotID uuid.UUID, plate, vehicleType string, entry time.Time) (uuid.UUID, error) {
	r.createdOccupations = append(r.createdOccupations, stubOccupation{
		SpaceID:     spaceID,
		LotID:       lotID,
		Plate:       plate,
		VehicleType: vehicleType,
		Entry:       entry,
	})
	return uuid.New(), nil
}

func (r *stubOccupationRepo) CloseOut(_ context.Context, id uuid.UUID, exit time.Time) error {
	r.closedOccupations[id] = exit
	return nil
}

type stubUserRepo stubTx

func (r *stubUserRepo) Create(_ context.Context, u *user.User) (uuid.UUID, error) {
	if r.userCreateErr != nil {
		return uuid.Nil, r.userCreateErr
	}
	r.createdUsers = append(r.createdUsers, u)
	return u.ID(), nil
}

func (r *stubUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	if r.userDeleteErr != nil {
		return r.userDeleteErr
	}
	r.deletedUsers = append(r.deletedUsers, id)
	return nil
}

func (r *stubUserRepo) Activate(_ context.Context, id uuid.UUID, passwordHash string) error {
	r.activatedUsers[id] = passwordHash
	return nil
}

func (r *stubUserRepo) UpdateLastLogin(_ context.Context, id uuid.UUID, at time.Time) error {
	r.lastLogins[id] = at
	return nil
}

type stubInvitationRepo stubTx

func (r *stubInvitationRepo) Create(_ context.Context, inv shared.InvitationSnapshot) error {
	if r.invitationCreateErr != nil {
		return r.invitationCreateErr
	}
	r.createdInvitations = append(r.createdInvitations, inv)
	return nil
}

func (r *stubInvitationRepo) MarkAccepted(_ context.Context, token uuid.UUID, _ time.Time) error {
	r.acceptedInvitations = append(r.acceptedInvitations, token)
	return nil
}

// stubUow runs the transaction body directly against the recording tx.
type stubUow struct {
	tx *stubTx
}

func newStubUow(reads *stubReads) *stubUow {
	return &stubUow{tx: newStubTx(reads)}
}

func (u *stubUow) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, u.tx)
}

func (u *stubUow) Reads() shared.CommandReads {
	return u.tx.reads
}

type stubInvalidator struct {
	lots []uuid.UUID
}

func (s *stubInvalidator) InvalidateReports(_ context.Context, lotID uuid.UUID) {
	s.lots = append(s.lots, lotID)
}

type stubPublisher struct {
	messages []InvitationMessage
	err      error
}

func (s *stubPublisher) PublishInvitation(_ context.Context, msg InvitationMessage) error {
	if s.err != nil {
		return s.err
	}
	s.messages = append(s.messages, msg)
	return nil
}
