package readstore

import (
	"context"

	"playa-admin/internal/infra"
	"playa-admin/internal/pkg/pgconv"
	"playa-admin/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type SpaceTypeReadStore struct {
	db infra.DBTX
}

func NewSpaceTypeReadStore(db infra.DBTX) *SpaceTypeReadStore {
	return &SpaceTypeReadStore{db: db}
}

func (r *SpaceTypeReadStore) FindByLot(ctx context.Context, lotID uuid.UUID, includeRemoved bool) ([]*queries.SpaceTypeView, error) {
	const query = `
		SELECT id, lot_id, name, description, characteristics, removed_at
		FROM space_types
		WHERE lot_id = $1 AND ($2 OR removed_at IS NULL)
		ORDER BY name`

	rows, err := r.db.Query(ctx, query, lotID, includeRemoved)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list space types", err)
	}
	defer rows.Close()

	var views []*queries.SpaceTypeView
	for rows.Next() {
		view := new(queries.SpaceTypeView)
		var removedAt pgtype.Timestamptz
		if err := rows.Scan(&view.ID, &view.LotID, &view.Name, &view.Description, &view.Characteristics, &removedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan space type row", err)
		}
		view.RemovedAt = pgconv.TimePtrFromPgtype(removedAt)
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate space type rows", err)
	}
	return views, nil
}

type RateReadStore struct {
	db infra.DBTX
}

func NewRateReadStore(db infra.DBTX) *RateReadStore {
	return &RateReadStore{db: db}
}

func (r *RateReadStore) FindByLot(ctx context.Context, lotID uuid.UUID) ([]*queries.RateView, error) {
	const query = `
		SELECT id, lot_id, space_type_id, mode, vehicle_type, price
		FROM rates
		WHERE lot_id = $1
		ORDER BY space_type_id, mode, vehicle_type`

	rows, err := r.db.Query(ctx, query, lotID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list rates", err)
	}
	defer rows.Close()

	var views []*queries.RateView
	for rows.Next() {
		view := new(queries.RateView)
		if err := rows.Scan(&view.ID, &view.LotID, &view.SpaceTypeID, &view.Mode, &view.VehicleType, &view.Price); err != nil {
			return nil, infra.WrapRepoErr("failed to scan rate row", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate rate rows", err)
	}
	return views, nil
}
