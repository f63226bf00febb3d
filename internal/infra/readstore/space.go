package readstore

import (
	"context"

	"playa-admin/internal/infra"
	"playa-admin/internal/pkg/pgconv"
	"playa-admin/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type SpaceReadStore struct {
	db infra.DBTX
}

func NewSpaceReadStore(db infra.DBTX) *SpaceReadStore {
	return &SpaceReadStore{db: db}
}

// FindByLot returns the lot's spaces with their type name. The situation
// column starts LIBRE; the availability resolver overlays occupancy.
func (r *SpaceReadStore) FindByLot(ctx context.Context, lotID uuid.UUID, typeID *uuid.UUID) ([]*queries.SpaceView, error) {
	const query = `
		SELECT s.id, s.lot_id, s.type_id, st.name, s.label, s.state, s.created_at
		FROM spaces s
		JOIN space_types st ON st.id = s.type_id
		WHERE s.lot_id = $1 AND ($2::uuid IS NULL OR s.type_id = $2)
		ORDER BY s.created_at DESC`

	rows, err := r.db.Query(ctx, query, lotID, pgconv.UUIDPtrToPgtype(typeID))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list spaces", err)
	}
	defer rows.Close()

	var views []*queries.SpaceView
	for rows.Next() {
		view := new(queries.SpaceView)
		var createdAt pgtype.Timestamptz
		if err := rows.Scan(&view.ID, &view.LotID, &view.TypeID, &view.TypeName, &view.Label, &view.State, &createdAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan space row", err)
		}
		view.CreatedAt = pgconv.TimeFromPgtype(createdAt)
		view.Situation = queries.SituationFree
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate space rows", err)
	}
	return views, nil
}

func (r *SpaceReadStore) OccupiedSpaceIDs(ctx context.Context, lotID uuid.UUID) ([]uuid.UUID, error) {
	const query = `SELECT space_id FROM occupations WHERE lot_id = $1 AND exit_at IS NULL`
	return r.spaceIDs(ctx, query, lotID, "failed to list occupied spaces")
}

func (r *SpaceReadStore) SubscribedSpaceIDs(ctx context.Context, lotID uuid.UUID) ([]uuid.UUID, error) {
	const query = `SELECT space_id FROM subscriptions WHERE lot_id = $1 AND state = 'ACTIVO'`
	return r.spaceIDs(ctx, query, lotID, "failed to list subscribed spaces")
}

func (r *SpaceReadStore) spaceIDs(ctx context.Context, query string, lotID uuid.UUID, msg string) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, query, lotID)
	if err != nil {
		return nil, infra.WrapRepoErr(msg, err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, infra.WrapRepoErr(msg, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(msg, err)
	}
	return ids, nil
}
