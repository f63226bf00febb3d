package queries

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"playa-admin/internal/domain/payment"
	"playa-admin/internal/pkg/errs"
	"playa-admin/internal/usecase/shared"

	"github.com/google/uuid"
)

// Placeholder when a lot or attendant name cannot be resolved. Reports are
// fail-open on display metadata: a missing name must never hide revenue.
const unnamedLabel = "Sin nombre"

// PaymentViewRepo reads the payment ledger restricted to the lots the
// actor may see; rows from other owners' lots never leave the store.
type PaymentViewRepo interface {
	FindByFilter(ctx context.Context, actor shared.Actor, filter RevenueFilter) ([]*PaymentRecord, error)
	LotNames(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error)
	AttendantNames(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error)
}

// ReportCache is a best-effort cache; a miss or failure falls through to
// the database.
type ReportCache interface {
	Get(ctx context.Context, key string) (*RevenueReport, bool)
	Set(ctx context.Context, key string, report *RevenueReport)
}

type RevenueQueries interface {
	Report(ctx context.Context, actor shared.Actor, filter RevenueFilter) (*RevenueReport, error)
}

type revenueQueriesImpl struct {
	repo   PaymentViewRepo
	cache  ReportCache
	guard  LotGuard
	logger *slog.Logger
}

func NewRevenueQueries(repo PaymentViewRepo, cache ReportCache, guard LotGuard, logger *slog.Logger) RevenueQueries {
	return &revenueQueriesImpl{repo: repo, cache: cache, guard: guard, logger: logger}
}

func (q *revenueQueriesImpl) Report(ctx context.Context, actor shared.Actor, filter RevenueFilter) (*RevenueReport, error) {
	if filter.LotID != nil {
		if err := guardLot(ctx, q.guard, actor, *filter.LotID); err != nil {
			return nil, err
		}
	}

	// the key carries the actor so one owner's cached report can never be
	// served to another
	key := cacheKey(actor, filter)
	if q.cache != nil {
		if cached, ok := q.cache.Get(ctx, key); ok {
			return cached, nil
		}
	}

	records, err := q.repo.FindByFilter(ctx, actor, filter)
	if err != nil {
		return nil, errs.Wrap(err, "failed to fetch payment ledger")
	}

	report := Aggregate(records, filter.Kind, q.nameResolver(ctx, records))

	if q.cache != nil {
		q.cache.Set(ctx, key, report)
	}
	return report, nil
}

// nameResolver looks up display names for every lot and attendant that
// appears in the ledger slice. Lookup failures degrade to placeholders.
func (q *revenueQueriesImpl) nameResolver(ctx context.Context, records []*PaymentRecord) NameResolver {
	lotSet := make(map[uuid.UUID]bool)
	attSet := make(map[uuid.UUID]bool)
	for _, r := range records {
		lotSet[r.LotID] = true
		attSet[r.AttendantID] = true
	}

	lotNames, err := q.repo.LotNames(ctx, keysOf(lotSet))
	if err != nil {
		q.logger.Warn("lot name lookup failed, using placeholders", "error", err)
		lotNames = nil
	}
	attNames, err := q.repo.AttendantNames(ctx, keysOf(attSet))
	if err != nil {
		q.logger.Warn("attendant name lookup failed, using placeholders", "error", err)
		attNames = nil
	}

	return NameResolver{Lots: lotNames, Attendants: attNames}
}

type NameResolver struct {
	Lots       map[uuid.UUID]string
	Attendants map[uuid.UUID]string
}

func (n NameResolver) LotName(id uuid.UUID) string {
	if name, ok := n.Lots[id]; ok && name != "" {
		return name
	}
	return unnamedLabel
}

func (n NameResolver) AttendantName(id uuid.UUID) string {
	if name, ok := n.Attendants[id]; ok && name != "" {
		return name
	}
	return unnamedLabel
}

type monthlyKey struct {
	lotID uuid.UUID
	month string
}

// Aggregate builds the three report shapes in a single pass over the
// ledger. The average ticket is computed once at the end, not incrementally.
func Aggregate(records []*PaymentRecord, kindFilter *string, names NameResolver) *RevenueReport {
	monthly := make(map[monthlyKey]*MonthlyRevenueRow)
	daily := make(map[string]*DailyRevenueRow)
	detail := make([]PaymentDetailRow, 0, len(records))

	for _, r := range records {
		kind := payment.Classify(r.OccupationID, r.BillID)
		if kindFilter != nil && kind.String() != *kindFilter {
			continue
		}

		mk := monthlyKey{lotID: r.LotID, month: r.PaidAt.Format("2006-01")}
		m, ok := monthly[mk]
		if !ok {
			m = &MonthlyRevenueRow{LotID: r.LotID, LotName: names.LotName(r.LotID), Month: mk.month}
			monthly[mk] = m
		}
		m.PaymentCount++
		m.Total += r.Amount

		dk := r.PaidAt.Format("2006-01-02")
		d, ok := daily[dk]
		if !ok {
			d = &DailyRevenueRow{Date: dk}
			daily[dk] = d
		}
		d.Total += r.Amount
		switch kind {
		case payment.KindSubscription:
			d.Subscriptions += r.Amount
		case payment.KindOccupation:
			d.Occupations += r.Amount
		}

		detail = append(detail, PaymentDetailRow{
			ID:            r.ID,
			LotID:         r.LotID,
			LotName:       names.LotName(r.LotID),
			AttendantName: names.AttendantName(r.AttendantID),
			Kind:          kind.String(),
			Amount:        r.Amount,
			PaidAt:        r.PaidAt,
		})
	}

	report := &RevenueReport{
		Monthly: make([]MonthlyRevenueRow, 0, len(monthly)),
		Daily:   make([]DailyRevenueRow, 0, len(daily)),
		Detail:  detail,
	}

	for _, m := range monthly {
		if m.PaymentCount > 0 {
			m.AverageTicket = m.Total / m.PaymentCount
		}
		report.Monthly = append(report.Monthly, *m)
	}
	sort.Slice(report.Monthly, func(i, j int) bool {
		a, b := report.Monthly[i], report.Monthly[j]
		if a.Month != b.Month {
			return a.Month < b.Month
		}
		return a.LotName < b.LotName
	})

	for _, d := range daily {
		report.Daily = append(report.Daily, *d)
	}
	sort.Slice(report.Daily, func(i, j int) bool {
		return report.Daily[i].Date < report.Daily[j].Date
	})

	sort.Slice(report.Detail, func(i, j int) bool {
		return report.Detail[i].PaidAt.After(report.Detail[j].PaidAt)
	})

	return report
}

func cacheKey(actor shared.Actor, f RevenueFilter) string {
	lot := "all"
	if f.LotID != nil {
		lot = f.LotID.String()
	}
	att := "all"
	if f.AttendantID != nil {
		att = f.AttendantID.String()
	}
	kind := "all"
	if f.Kind != nil {
		kind = *f.Kind
	}
	return fmt.Sprintf("reports:%d:%d:%s:%s:%s:%s", f.From.Unix(), f.To.Unix(), lot, att, kind, actor.ID)
}

func keysOf(set map[uuid.UUID]bool) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	return out
}
