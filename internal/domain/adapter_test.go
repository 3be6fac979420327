package domain

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestAdaptSaleCamelCaseShape(t *testing.T) {
	id := uuid.New()
	doc := Document{
		"transactionId":      "TXN-001",
		"customerName":       "Alice Sharma",
		"phoneNumber":        "9800000001",
		"gender":             "Female",
		"age":                float64(34),
		"customerRegion":     "North",
		"customerType":       "Premium",
		"productCategory":    "Electronics",
		"tags":               []any{"organic", "sale"},
		"quantity":           float64(2),
		"pricePerUnit":       float64(250),
		"discountPercentage": float64(10),
		"totalAmount":        float64(500),
		"finalAmount":        float64(450),
		"date":               "2024-03-15",
		"paymentMethod":      "Card",
	}

	s := AdaptSale(id, doc)

	if s.ID != id {
		t.Errorf("expected id %s, got %s", id, s.ID)
	}
	if s.TransactionID != "TXN-001" {
		t.Errorf("expected TXN-001, got %q", s.TransactionID)
	}
	if s.Gender != "Female" || s.Age != 34 || s.CustomerRegion != "North" {
		t.Errorf("unexpected customer fields: %+v", s)
	}
	if s.Quantity != 2 || s.TotalAmount != 500 || s.FinalAmount != 450 {
		t.Errorf("unexpected amounts: %+v", s)
	}
	if len(s.Tags) != 2 || s.Tags[0] != "organic" || s.Tags[1] != "sale" {
		t.Errorf("unexpected tags: %v", s.Tags)
	}
	want := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	if !s.Date.Equal(want) {
		t.Errorf("expected date %v, got %v", want, s.Date)
	}
}

func TestAdaptSaleTitleCaseShape(t *testing.T) {
	doc := Document{
		"Transaction ID":      "TXN-002",
		"Customer Name":       "Rohan Patel",
		"Phone Number":        "9800000002",
		"Gender":              "male",
		"Age":                 "41",
		"Customer Region":     "South",
		"Product Category":    "Clothing",
		"Tags":                "sale,new",
		"Quantity":            "3",
		"Price per Unit":      "199.99",
		"Discount Percentage": "5",
		"Total Amount":        "599.97",
		"Date":                "2024-01-20",
		"Payment Method":      "UPI",
	}

	s := AdaptSale(uuid.Nil, doc)

	if s.TransactionID != "TXN-002" || s.CustomerName != "Rohan Patel" {
		t.Errorf("unexpected identity fields: %+v", s)
	}
	if s.Gender != "Male" {
		t.Errorf("expected normalized gender Male, got %q", s.Gender)
	}
	if s.Age != 41 || s.Quantity != 3 {
		t.Errorf("expected string numbers coerced, got age=%d quantity=%d", s.Age, s.Quantity)
	}
	if s.PricePerUnit != 199.99 || s.TotalAmount != 599.97 {
		t.Errorf("unexpected amounts: %+v", s)
	}
	// Delimited tag string splits into a list.
	if len(s.Tags) != 2 || s.Tags[0] != "sale" || s.Tags[1] != "new" {
		t.Errorf("expected tags [sale new], got %v", s.Tags)
	}
}

func TestAdaptSaleTagShapesAreEquivalent(t *testing.T) {
	fromList := AdaptSale(uuid.Nil, Document{"tags": []any{"sale", "new"}})
	fromString := AdaptSale(uuid.Nil, Document{"Tags": "sale, new"})

	if len(fromList.Tags) != len(fromString.Tags) {
		t.Fatalf("expected identical tag lists, got %v vs %v", fromList.Tags, fromString.Tags)
	}
	for i := range fromList.Tags {
		if fromList.Tags[i] != fromString.Tags[i] {
			t.Errorf("tags[%d]: %q vs %q", i, fromList.Tags[i], fromString.Tags[i])
		}
	}
}

func TestAdaptSaleCamelCaseWinsOverLegacy(t *testing.T) {
	doc := Document{
		"customerName":  "New Name",
		"Customer Name": "Old Name",
	}
	s := AdaptSale(uuid.Nil, doc)
	if s.CustomerName != "New Name" {
		t.Errorf("expected camelCase spelling to win, got %q", s.CustomerName)
	}
}

func TestAdaptSaleDefaults(t *testing.T) {
	s := AdaptSale(uuid.Nil, Document{"transactionId": "TXN-003"})

	if s.Gender != "Other" {
		t.Errorf("expected default gender Other, got %q", s.Gender)
	}
	if s.Age != 25 {
		t.Errorf("expected default age 25, got %d", s.Age)
	}
	if s.CustomerType != "Regular" {
		t.Errorf("expected default customer type Regular, got %q", s.CustomerType)
	}
	if s.Quantity != 1 {
		t.Errorf("expected default quantity 1, got %d", s.Quantity)
	}
	if s.PaymentMethod != "Cash" || s.OrderStatus != "Completed" || s.DeliveryType != "Standard" {
		t.Errorf("unexpected operational defaults: %+v", s)
	}
	if s.Tags == nil || len(s.Tags) != 0 {
		t.Errorf("expected empty non-nil tags, got %v", s.Tags)
	}
}

func TestAdaptSaleComputesMissingFinalAmount(t *testing.T) {
	doc := Document{
		"totalAmount":        float64(200),
		"discountPercentage": float64(15),
	}
	s := AdaptSale(uuid.Nil, doc)

	if s.FinalAmount != 170 {
		t.Errorf("expected computed final amount 170, got %v", s.FinalAmount)
	}
}

func TestAdaptSaleFinalAmountRounding(t *testing.T) {
	doc := Document{
		"totalAmount":        float64(99.99),
		"discountPercentage": float64(33),
	}
	s := AdaptSale(uuid.Nil, doc)

	// 99.99 * 0.67 = 66.9933, rounded to the minor unit.
	if math.Abs(s.FinalAmount-66.99) > 1e-9 {
		t.Errorf("expected 66.99, got %v", s.FinalAmount)
	}
}

func TestAdaptSaleUnparsableValues(t *testing.T) {
	doc := Document{
		"transactionId": "TXN-004",
		"age":           "forty",
		"quantity":      "a few",
		"totalAmount":   "lots",
		"date":          "someday",
	}
	s := AdaptSale(uuid.Nil, doc)

	if s.Age != 25 {
		t.Errorf("expected default age for unparsable value, got %d", s.Age)
	}
	if s.Quantity != 1 {
		t.Errorf("expected default quantity for unparsable value, got %d", s.Quantity)
	}
	if s.TotalAmount != 0 {
		t.Errorf("expected zero total for unparsable value, got %v", s.TotalAmount)
	}
	if !s.Date.IsZero() {
		t.Errorf("expected zero date for unparsable value, got %v", s.Date)
	}
}

func TestNewPagination(t *testing.T) {
	cases := []struct {
		page, limit int
		total       int64
		wantPages   int64
	}{
		{1, 10, 0, 0},
		{1, 10, 1, 1},
		{1, 10, 10, 1},
		{3, 10, 25, 3},
		{1, 100, 250, 3},
	}
	for _, tc := range cases {
		got := NewPagination(tc.page, tc.limit, tc.total)
		if got.Pages != tc.wantPages {
			t.Errorf("NewPagination(%d, %d, %d).Pages = %d, expected %d",
				tc.page, tc.limit, tc.total, got.Pages, tc.wantPages)
		}
		if got.Current != tc.page || got.Limit != tc.limit || got.Total != tc.total {
			t.Errorf("unexpected pagination %+v", got)
		}
	}
}
