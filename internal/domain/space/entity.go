package space

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Space ("plaza") is one physical spot in a lot. At any instant it is in
// exactly one of three situations: covered by an open occupation, covered by
// an active subscription, or free. That exclusion is resolved by the
// availability query and re-checked inside write transactions.
type Space struct {
	id        uuid.UUID
	lotID     uuid.UUID
	typeID    uuid.UUID
	label     string
	state     State
	createdAt time.Time
	updatedAt time.Time
}

func NewSpace(lotID, typeID uuid.UUID, label string) (*Space, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil, ErrEmptyLabel
	}
	return &Space{
		id:     uuid.New(),
		lotID:  lotID,
		typeID: typeID,
		label:  label,
		state:  StateActive,
	}, nil
}

func ReconstructSpace(id, lotID, typeID uuid.UUID, label string, state State, createdAt, updatedAt time.Time) *Space {
	return &Space{
		id:        id,
		lotID:     lotID,
		typeID:    typeID,
		label:     label,
		state:     state,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (s *Space) Suspend()       { s.state = StateSuspended }
func (s *Space) Restore()       { s.state = StateActive }
func (s *Space) IsActive() bool { return s.state == StateActive }

func (s *Space) ID() uuid.UUID        { return s.id }
func (s *Space) LotID() uuid.UUID     { return s.lotID }
func (s *Space) TypeID() uuid.UUID    { return s.typeID }
func (s *Space) Label() string        { return s.label }
func (s *Space) State() State         { return s.state }
func (s *Space) CreatedAt() time.Time { return s.createdAt }
func (s *Space) UpdatedAt() time.Time { return s.updatedAt }

// Lifecycle is the tagged soft-delete state of a SpaceType: either live or
// tombstoned at a known instant. Tombstoned types stay referenceable by
// existing rates and spaces but are hidden from new assignments.
type Lifecycle struct {
	removedAt *time.Time
}

func LiveLifecycle() Lifecycle {
	return Lifecycle{}
}

func TombstonedLifecycle(at time.Time) Lifecycle {
	return Lifecycle{removedAt: &at}
}

func (l Lifecycle) IsTombstoned() bool {
	return l.removedAt != nil
}

func (l Lifecycle) RemovedAt() *time.Time {
	return l.removedAt
}

// SpaceType ("tipo de plaza") groups spaces that share characteristics and
// rate eligibility.
type SpaceType struct {
	id              uuid.UUID
	lotID           uuid.UUID
	name            string
	description     string
	characteristics []string
	lifecycle       Lifecycle
	createdAt       time.Time
	updatedAt       time.Time
}

func NewSpaceType(lotID uuid.UUID, name, description string, characteristics []string) (*SpaceType, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyTypeName
	}
	return &SpaceType{
		id:              uuid.New(),
		lotID:           lotID,
		name:            name,
		description:     strings.TrimSpace(description),
		characteristics: normalizeCharacteristics(characteristics),
		lifecycle:       LiveLifecycle(),
	}, nil
}

func ReconstructSpaceType(
	id, lotID uuid.UUID,
	name, description string,
	characteristics []string,
	lifecycle Lifecycle,
	createdAt, updatedAt time.Time,
) *SpaceType {
	return &SpaceType{
		id:              id,
		lotID:           lotID,
		name:            name,
		description:     description,
		characteristics: characteristics,
		lifecycle:       lifecycle,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

// Tombstone marks the type removed without breaking referential users.
func (t *SpaceType) Tombstone(at time.Time) error {
	if t.lifecycle.IsTombstoned() {
		return ErrAlreadyRemoved
	}
	t.lifecycle = TombstonedLifecycle(at)
	return nil
}

func (t *SpaceType) Lifecycle() Lifecycle      { return t.lifecycle }
func (t *SpaceType) ID() uuid.UUID             { return t.id }
func (t *SpaceType) LotID() uuid.UUID          { return t.lotID }
func (t *SpaceType) Name() string              { return t.name }
func (t *SpaceType) Description() string       { return t.description }
func (t *SpaceType) Characteristics() []string { return t.characteristics }
func (t *SpaceType) CreatedAt() time.Time      { return t.createdAt }
func (t *SpaceType) UpdatedAt() time.Time      { return t.updatedAt }

func normalizeCharacteristics(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, c := range in {
		c = strings.TrimSpace(c)
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}
