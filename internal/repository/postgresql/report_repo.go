package postgresql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"valet_parking/internal/domain"
	"valet_parking/internal/repository"
)

type pgReportRepository struct {
	db   *sql.DB
	psql sq.StatementBuilderType
}

func NewPgReportRepository(db *sql.DB) repository.ReportRepository {
	return &pgReportRepository{db: db, psql: sq.StatementBuilder.PlaceholderFormat(sq.Dollar)}
}

func parkedCarFilterWhere(f domain.ParkedCarFilter) sq.And {
	where := sq.And{
		sq.Eq{"pc.parking_spot_id": f.ParkingSpotID},
		sq.Eq{"pc.deleted": false},
	}
	if !f.From.IsZero() {
		where = append(where, sq.GtOrEq{"pc.parked_at": f.From})
	}
	if !f.To.IsZero() {
		where = append(where, sq.Lt{"pc.parked_at": f.To})
	}
	if f.Status != "" {
		where = append(where, sq.Eq{"pc.status": string(f.Status)})
	}
	if f.ActiveOnly {
		where = append(where, sq.NotEq{"pc.status": string(domain.StatusRetrieved)})
	}
	if f.Keyword != "" {
		pattern := "%" + f.Keyword + "%"
		where = append(where, sq.Or{
			sq.ILike{"c.license_plate": pattern},
			sq.ILike{"u.name": pattern},
		})
	}
	return where
}

func (r *pgReportRepository) SearchParkedCars(ctx context.Context, f domain.ParkedCarFilter) ([]domain.ParkedCarView, int, error) {
	where := parkedCarFilterWhere(f)

	countSQL, countArgs, err := r.psql.Select("COUNT(*)").
		From("parked_cars pc INNER JOIN cars c ON pc.car_id = c.id INNER JOIN users u ON pc.user_id = u.id").
		Where(where).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("ReportRepository.SearchParkedCars (building count): %w", err)
	}
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("ReportRepository.SearchParkedCars (count): %w", err)
	}

	builder := r.psql.Select(parkedCarViewColumns...).
		From(parkedCarViewFrom).
		Where(where).
		OrderBy("pc.parked_at DESC")
	if f.Limit > 0 {
		builder = builder.Limit(uint64(f.Limit)).Offset(uint64(f.Offset))
	}
	listSQL, listArgs, err := builder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("ReportRepository.SearchParkedCars (building list): %w", err)
	}

	rows, err := r.db.QueryContext(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("ReportRepository.SearchParkedCars: %w", err)
	}
	defer rows.Close()

	views := []domain.ParkedCarView{}
	for rows.Next() {
		v, err := scanParkedCarView(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("ReportRepository.SearchParkedCars (scanning row): %w", err)
		}
		views = append(views, *v)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("ReportRepository.SearchParkedCars (rows error): %w", err)
	}
	return views, total, nil
}

func (r *pgReportRepository) LotTotals(ctx context.Context, parkingSpotID int, from, to time.Time) (domain.LotTotals, error) {
	var totals domain.LotTotals

	tickets := r.psql.Select("COUNT(*)").From("parked_cars").
		Where(sq.Eq{"parking_spot_id": parkingSpotID, "deleted": false})
	collection := r.psql.Select("COALESCE(SUM(p.amount), 0)").
		From("payments p").
		Join("parked_cars pc ON p.parked_car_id = pc.id").
		Where(sq.Eq{"pc.parking_spot_id": parkingSpotID, "p.deleted": false, "p.status": string(domain.PaymentCompleted)})
	if !from.IsZero() {
		tickets = tickets.Where(sq.GtOrEq{"parked_at": from})
		collection = collection.Where(sq.GtOrEq{"p.created_at": from})
	}
	if !to.IsZero() {
		tickets = tickets.Where(sq.Lt{"parked_at": to})
		collection = collection.Where(sq.Lt{"p.created_at": to})
	}

	ticketsSQL, ticketsArgs, err := tickets.ToSql()
	if err != nil {
		return totals, fmt.Errorf("ReportRepository.LotTotals (building tickets): %w", err)
	}
	if err := r.db.QueryRowContext(ctx, ticketsSQL, ticketsArgs...).Scan(&totals.Tickets); err != nil {
		return totals, fmt.Errorf("ReportRepository.LotTotals (tickets): %w", err)
	}

	collectionSQL, collectionArgs, err := collection.ToSql()
	if err != nil {
		return totals, fmt.Errorf("ReportRepository.LotTotals (building collection): %w", err)
	}
	if err := r.db.QueryRowContext(ctx, collectionSQL, collectionArgs...).Scan(&totals.Collection); err != nil {
		return totals, fmt.Errorf("ReportRepository.LotTotals (collection): %w", err)
	}
	return totals, nil
}

func (r *pgReportRepository) CountByStatus(ctx context.Context, parkingSpotID int, statuses ...domain.ParkedCarStatus) (int, error) {
	values := make([]string, 0, len(statuses))
	for _, s := range statuses {
		values = append(values, string(s))
	}
	query, args, err := r.psql.Select("COUNT(*)").From("parked_cars").
		Where(sq.Eq{"parking_spot_id": parkingSpotID, "deleted": false, "status": values}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("ReportRepository.CountByStatus (building): %w", err)
	}
	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("ReportRepository.CountByStatus: %w", err)
	}
	return count, nil
}
