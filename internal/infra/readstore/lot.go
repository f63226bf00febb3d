package readstore

import (
	"context"

	"playa-admin/internal/infra"
	"playa-admin/internal/pkg/pgconv"
	"playa-admin/internal/usecase/queries"
	"playa-admin/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type LotReadStore struct {
	db infra.DBTX
}

func NewLotReadStore(db infra.DBTX) *LotReadStore {
	return &LotReadStore{db: db}
}

const lotColumns = `id, owner_id, name, address, hours, state, created_at, updated_at`

// visibleLotExpr filters rows of the aliased lots table l to those the user
// bound at the placeholder may read: lots they own plus lots named in an
// invitation they accepted.
func visibleLotExpr(placeholder string) string {
	return `(l.owner_id = ` + placeholder + ` OR EXISTS (
		SELECT 1 FROM invitations i
		WHERE i.user_id = ` + placeholder + `
		  AND i.accepted_at IS NOT NULL
		  AND l.id = ANY (i.lot_ids)))`
}

func (r *LotReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.LotView, error) {
	row := r.db.QueryRow(ctx, `SELECT `+lotColumns+` FROM lots WHERE id = $1`, id)
	view, err := scanLotView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("lot not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find lot by id", err)
	}
	return view, nil
}

func (r *LotReadStore) FindVisible(ctx context.Context, userID uuid.UUID) ([]*queries.LotView, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+lotColumns+` FROM lots l WHERE `+visibleLotExpr("$1")+` ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list visible lots", err)
	}
	defer rows.Close()

	var views []*queries.LotView
	for rows.Next() {
		view, err := scanLotView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan lot row", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate lot rows", err)
	}
	return views, nil
}

// VisibleLot implements queries.LotGuard. An invisible lot comes back as
// not found, whether it exists or not.
func (r *LotReadStore) VisibleLot(ctx context.Context, actor shared.Actor, lotID uuid.UUID) error {
	var visible bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM lots l WHERE l.id = $1 AND `+visibleLotExpr("$2")+`)`,
		lotID, actor.ID,
	).Scan(&visible)
	if err != nil {
		return infra.WrapRepoErr("failed to resolve lot visibility", err)
	}
	if !visible {
		return infra.WrapRepoErr("lot not visible", nil, infra.KindNotFound)
	}
	return nil
}

func scanLotView(row pgx.Row) (*queries.LotView, error) {
	var (
		view      queries.LotView
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)
	err := row.Scan(&view.ID, &view.OwnerID, &view.Name, &view.Address, &view.Hours, &view.State, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	view.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	view.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
	return &view, nil
}
