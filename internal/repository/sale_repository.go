package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/salesdash/api/internal/db"
	"github.com/salesdash/api/internal/domain"
)

type saleRepository struct {
	db db.DBTX
}

// NewSaleRepository creates a sale repository over a pgx pool or
// transaction.
func NewSaleRepository(exec db.DBTX) SaleRepository {
	return &saleRepository{db: exec}
}

func (r *saleRepository) List(ctx context.Context, q domain.ListQuery) ([]domain.Sale, int64, error) {
	pred := compileFilter(q.Filter)

	countQuery := "SELECT COUNT(*) FROM sales " + pred.where

	var total int64
	if err := r.db.QueryRow(ctx, countQuery, pred.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count sales: %w", err)
	}

	builder := &sqlBuilder{args: append([]any{}, pred.args...)}
	limitIdx := builder.addArg(q.Limit)
	offsetIdx := builder.addArg(q.Offset())

	rowsQuery := fmt.Sprintf("SELECT id, doc FROM sales %s %s LIMIT %s OFFSET %s",
		pred.where, orderClause(q.Sort), builder.placeholder(limitIdx), builder.placeholder(offsetIdx))

	rows, err := r.db.Query(ctx, rowsQuery, builder.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	sales := []domain.Sale{}
	for rows.Next() {
		var (
			id  uuid.UUID
			raw json.RawMessage
		)
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, 0, fmt.Errorf("scan sale row: %w", err)
		}
		doc, err := domain.DocumentFromJSONB(raw)
		if err != nil {
			return nil, 0, fmt.Errorf("decode sale document %s: %w", id, err)
		}
		sales = append(sales, domain.AdaptSale(id, doc))
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate sale rows: %w", err)
	}

	return sales, total, nil
}

func (r *saleRepository) Aggregate(ctx context.Context, filter domain.SaleFilter) (domain.Stats, error) {
	pred := compileFilter(filter)

	var stats domain.Stats
	if err := r.db.QueryRow(ctx, aggregateQuery(pred.where), pred.args...).Scan(&stats.TotalUnitsSold, &stats.TotalAmount, &stats.TotalDiscount); err != nil {
		return domain.Stats{}, fmt.Errorf("aggregate sales: %w", err)
	}

	stats.TotalAmount = roundWhole(stats.TotalAmount)
	stats.TotalDiscount = roundWhole(stats.TotalDiscount)
	return stats, nil
}

// aggregateQuery builds the stats query over a compiled predicate. Legacy
// documents can miss quantity, discount or amount fields entirely, which
// makes sale_num NULL; every NULL is coalesced to the same default the
// adapter applies on read (quantity 1, discount 0, amounts 0, and a zero
// finalAmount recomputed from totalAmount), so the totals always agree with
// the rows the page shows for the same filtered set.
func aggregateQuery(where string) string {
	return fmt.Sprintf(`SELECT
		COALESCE(SUM(COALESCE(%s, 1)), 0)::bigint,
		COALESCE(SUM(COALESCE(NULLIF(%s, 0), COALESCE(%s, 0) * (1 - COALESCE(%s, 0) / 100))), 0)::float8,
		COALESCE(SUM(COALESCE(%s, 0) * COALESCE(%s, 0) / 100), 0)::float8
	FROM sales %s`,
		quantityExpr,
		finalAmountExpr, totalAmountExpr, discountExpr,
		totalAmountExpr, discountExpr,
		where)
}

func (r *saleRepository) FilterOptions(ctx context.Context) (domain.FilterOptions, error) {
	options := domain.FilterOptions{
		Regions:           []string{},
		Genders:           []string{},
		ProductCategories: []string{},
		PaymentMethods:    []string{},
		Tags:              []string{},
	}

	distinct := []struct {
		expr string
		dest *[]string
	}{
		{regionExpr, &options.Regions},
		{genderExpr, &options.Genders},
		{categoryExpr, &options.ProductCategories},
		{paymentMethodExpr, &options.PaymentMethods},
	}
	for _, d := range distinct {
		values, err := r.distinctValues(ctx, fmt.Sprintf(
			"SELECT DISTINCT %s AS v FROM sales WHERE COALESCE(%s, '') <> '' ORDER BY v", d.expr, d.expr))
		if err != nil {
			return domain.FilterOptions{}, err
		}
		*d.dest = values
	}

	tags, err := r.distinctValues(ctx,
		"SELECT DISTINCT t AS v FROM sales, unnest("+tagsExpr+") AS t WHERE t <> '' ORDER BY v")
	if err != nil {
		return domain.FilterOptions{}, err
	}
	options.Tags = tags

	ageQuery := fmt.Sprintf(
		"SELECT COALESCE(MIN(%s), 0)::int, COALESCE(MAX(%s), 100)::int FROM sales", ageExpr, ageExpr)
	if err := r.db.QueryRow(ctx, ageQuery).Scan(&options.AgeRange.Min, &options.AgeRange.Max); err != nil {
		return domain.FilterOptions{}, fmt.Errorf("age range: %w", err)
	}

	return options, nil
}

func (r *saleRepository) distinctValues(ctx context.Context, query string) ([]string, error) {
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("distinct values: %w", err)
	}
	defer rows.Close()

	values := []string{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan distinct value: %w", err)
		}
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate distinct values: %w", err)
	}
	return values, nil
}

func (r *saleRepository) GetByTransactionID(ctx context.Context, transactionID string) (domain.Sale, error) {
	query := fmt.Sprintf("SELECT id, doc FROM sales WHERE %s = $1", transactionIDExpr)

	var (
		id  uuid.UUID
		raw json.RawMessage
	)
	if err := r.db.QueryRow(ctx, query, transactionID).Scan(&id, &raw); err != nil {
		return domain.Sale{}, fmt.Errorf("get sale %s: %w", transactionID, err)
	}
	doc, err := domain.DocumentFromJSONB(raw)
	if err != nil {
		return domain.Sale{}, fmt.Errorf("decode sale document %s: %w", id, err)
	}
	return domain.AdaptSale(id, doc), nil
}

func (r *saleRepository) InsertDocument(ctx context.Context, doc domain.Document) (uuid.UUID, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return uuid.Nil, fmt.Errorf("marshal sale document: %w", err)
	}

	var id uuid.UUID
	err = r.db.QueryRow(ctx,
		"INSERT INTO sales (doc) VALUES ($1) RETURNING id", raw).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert sale document: %w", err)
	}
	return id, nil
}

// roundWhole rounds a monetary total to whole currency units for the stat
// cards, matching the dashboard's display contract.
func roundWhole(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	f, _ := decimal.NewFromFloat(v).Round(0).Float64()
	return f
}
