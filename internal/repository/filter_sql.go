package repository

import (
	"fmt"
	"strings"

	"github.com/salesdash/api/internal/domain"
)

// The compiler translates a normalized SaleFilter into one parameterized
// WHERE fragment. The fragment is compiled once per request and passed
// unchanged to the count query, the page query and the aggregate query;
// that identity is what keeps pagination totals and stats consistent with
// the rows on the page.
//
// Field access goes through the SQL helper functions installed by the
// migrations (sale_text, sale_num, sale_date, sale_tags). They coalesce the
// two legacy key spellings and cast values to proper types, so ages,
// amounts and dates compare numerically even when a document stores them
// as strings.

const (
	transactionIDExpr = "sale_text(doc, 'transactionId', 'Transaction ID')"
	customerNameExpr  = "sale_text(doc, 'customerName', 'Customer Name')"
	phoneNumberExpr   = "sale_text(doc, 'phoneNumber', 'Phone Number')"
	regionExpr        = "sale_text(doc, 'customerRegion', 'Customer Region')"
	genderExpr        = "sale_text(doc, 'gender', 'Gender')"
	categoryExpr      = "sale_text(doc, 'productCategory', 'Product Category')"
	paymentMethodExpr = "sale_text(doc, 'paymentMethod', 'Payment Method')"
	ageExpr           = "sale_num(doc, 'age', 'Age')"
	quantityExpr      = "sale_num(doc, 'quantity', 'Quantity')"
	totalAmountExpr   = "sale_num(doc, 'totalAmount', 'Total Amount')"
	finalAmountExpr   = "sale_num(doc, 'finalAmount', 'Final Amount')"
	discountExpr      = "sale_num(doc, 'discountPercentage', 'Discount Percentage')"
	dateExpr          = "sale_date(doc)"
	tagsExpr          = "sale_tags(doc)"
)

type sqlBuilder struct {
	args []any
}

func newSQLBuilder() *sqlBuilder {
	return &sqlBuilder{args: make([]any, 0)}
}

func (b *sqlBuilder) addArg(value any) int {
	b.args = append(b.args, value)
	return len(b.args)
}

func (b *sqlBuilder) placeholder(idx int) string {
	return fmt.Sprintf("$%d", idx)
}

// predicate is the opaque compiled form of all active filters.
type predicate struct {
	where string
	args  []any
}

// compileFilter builds the predicate: OR within a multi-valued dimension,
// AND across dimensions, and only the bounds actually present for ranges.
func compileFilter(filter domain.SaleFilter) predicate {
	builder := newSQLBuilder()
	clauses := []string{}

	if filter.Search != "" {
		idx := builder.addArg("%" + escapeLike(filter.Search) + "%")
		ph := builder.placeholder(idx)
		clauses = append(clauses, fmt.Sprintf("(%s ILIKE %s OR %s ILIKE %s OR %s ILIKE %s)",
			customerNameExpr, ph, phoneNumberExpr, ph, transactionIDExpr, ph))
	}

	appendAnyClause(builder, &clauses, regionExpr, filter.Regions)
	appendAnyClause(builder, &clauses, genderExpr, filter.Genders)
	appendAnyClause(builder, &clauses, categoryExpr, filter.ProductCategories)
	appendAnyClause(builder, &clauses, paymentMethodExpr, filter.PaymentMethods)

	if len(filter.Tags) > 0 {
		tags := make([]string, 0, len(filter.Tags))
		for _, tag := range filter.Tags {
			tags = append(tags, strings.ToLower(strings.TrimSpace(tag)))
		}
		idx := builder.addArg(tags)
		clauses = append(clauses, fmt.Sprintf("%s && %s::text[]", tagsExpr, builder.placeholder(idx)))
	}

	if filter.MinAge != nil {
		idx := builder.addArg(*filter.MinAge)
		clauses = append(clauses, fmt.Sprintf("%s >= %s", ageExpr, builder.placeholder(idx)))
	}
	if filter.MaxAge != nil {
		idx := builder.addArg(*filter.MaxAge)
		clauses = append(clauses, fmt.Sprintf("%s <= %s", ageExpr, builder.placeholder(idx)))
	}

	if filter.StartDate != nil {
		idx := builder.addArg(*filter.StartDate)
		clauses = append(clauses, fmt.Sprintf("%s >= %s::date", dateExpr, builder.placeholder(idx)))
	}
	if filter.EndDate != nil {
		idx := builder.addArg(*filter.EndDate)
		clauses = append(clauses, fmt.Sprintf("%s <= %s::date", dateExpr, builder.placeholder(idx)))
	}

	if len(clauses) == 0 {
		return predicate{args: builder.args}
	}
	return predicate{
		where: "WHERE " + strings.Join(clauses, " AND "),
		args:  builder.args,
	}
}

// appendAnyClause adds a matches-any-of clause for a multi-valued
// dimension. Absent values add nothing, so an empty list never turns into
// a matches-nothing predicate.
func appendAnyClause(builder *sqlBuilder, clauses *[]string, expr string, values []string) {
	if len(values) == 0 {
		return
	}
	idx := builder.addArg(values)
	*clauses = append(*clauses, fmt.Sprintf("%s = ANY(%s::text[])", expr, builder.placeholder(idx)))
}

// escapeLike neutralizes LIKE wildcards in user input so search is a plain
// substring match.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}

// orderClause maps a resolved SortSpec to its ORDER BY fragment. Every
// ordering ends with the transactionId tie-break so pagination stays
// deterministic for records sharing the primary sort value.
func orderClause(sort domain.SortSpec) string {
	expr := dateExpr
	switch sort.Key {
	case domain.SortByQuantity:
		expr = quantityExpr
	case domain.SortByAmount:
		expr = finalAmountExpr
	case domain.SortByCustomerName:
		expr = "lower(" + customerNameExpr + ")"
	}

	direction := "ASC"
	if sort.Descending {
		direction = "DESC"
	}

	return fmt.Sprintf("ORDER BY %s %s NULLS LAST, %s ASC", expr, direction, transactionIDExpr)
}
