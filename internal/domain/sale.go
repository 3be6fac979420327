package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Sale is the canonical representation of one retail transaction. Every
// stored document, whichever legacy shape it has, is adapted into this type
// at the store-read boundary so downstream code never sees the drifted
// schemas.
type Sale struct {
	ID            uuid.UUID `json:"id" validate:"-"`
	TransactionID string    `json:"transactionId" validate:"required"`

	CustomerID     string `json:"customerId"`
	CustomerName   string `json:"customerName" validate:"required"`
	PhoneNumber    string `json:"phoneNumber"`
	Gender         string `json:"gender" validate:"oneof=Male Female Other"`
	Age            int    `json:"age" validate:"gte=0,lte=150"`
	CustomerRegion string `json:"customerRegion"`
	CustomerType   string `json:"customerType"`

	ProductID       string   `json:"productId"`
	ProductName     string   `json:"productName"`
	Brand           string   `json:"brand"`
	ProductCategory string   `json:"productCategory"`
	Tags            []string `json:"tags"`

	Quantity           int     `json:"quantity" validate:"gte=0"`
	PricePerUnit       float64 `json:"pricePerUnit" validate:"gte=0"`
	DiscountPercentage float64 `json:"discountPercentage" validate:"gte=0,lte=100"`
	TotalAmount        float64 `json:"totalAmount" validate:"gte=0"`
	FinalAmount        float64 `json:"finalAmount" validate:"gte=0"`

	Date          time.Time `json:"date"`
	PaymentMethod string    `json:"paymentMethod"`
	OrderStatus   string    `json:"orderStatus"`
	DeliveryType  string    `json:"deliveryType"`
	StoreID       string    `json:"storeId"`
	StoreLocation string    `json:"storeLocation"`
	SalespersonID string    `json:"salespersonId"`
	EmployeeName  string    `json:"employeeName"`
}

// SaleFilter holds the normalized, typed filter dimensions for listing
// sales. Empty slices and nil bounds mean "no filter on this dimension".
type SaleFilter struct {
	Search            string
	Regions           []string
	Genders           []string
	ProductCategories []string
	Tags              []string
	PaymentMethods    []string
	MinAge            *int
	MaxAge            *int
	StartDate         *time.Time
	EndDate           *time.Time
}

// IsZero reports whether no filter dimension is active.
func (f SaleFilter) IsZero() bool {
	return f.Search == "" &&
		len(f.Regions) == 0 &&
		len(f.Genders) == 0 &&
		len(f.ProductCategories) == 0 &&
		len(f.Tags) == 0 &&
		len(f.PaymentMethods) == 0 &&
		f.MinAge == nil && f.MaxAge == nil &&
		f.StartDate == nil && f.EndDate == nil
}

// SortKey identifies a client-facing sort dimension.
type SortKey string

const (
	SortByDate         SortKey = "date"
	SortByQuantity     SortKey = "quantity"
	SortByAmount       SortKey = "amount"
	SortByCustomerName SortKey = "customerName"
)

// SortSpec is a resolved sort key plus direction.
type SortSpec struct {
	Key        SortKey
	Descending bool
}

// ListQuery is the full normalized input for a paginated sales read.
type ListQuery struct {
	Filter SaleFilter
	Sort   SortSpec
	Page   int
	Limit  int
}

// Offset returns the row offset for the current page.
func (q ListQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

// Stats holds the aggregate totals over the filtered set. The totals are
// computed against the same filter predicate as the page query and are
// independent of the pagination window.
type Stats struct {
	TotalUnitsSold int64   `json:"totalUnitsSold"`
	TotalAmount    float64 `json:"totalAmount"`
	TotalDiscount  float64 `json:"totalDiscount"`
}

// Pagination describes the page window of a list response.
type Pagination struct {
	Current int   `json:"current"`
	Limit   int   `json:"limit"`
	Total   int64 `json:"total"`
	Pages   int64 `json:"pages"`
}

// NewPagination computes the pages count as ceil(total/limit).
func NewPagination(page, limit int, total int64) Pagination {
	pages := int64(0)
	if total > 0 {
		pages = (total + int64(limit) - 1) / int64(limit)
	}
	return Pagination{Current: page, Limit: limit, Total: total, Pages: pages}
}

// AgeRange is the observed min/max customer age across the collection.
type AgeRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// FilterOptions lists the distinct values available for each filter
// dimension, deduplicated, empty values removed, alphabetically sorted.
type FilterOptions struct {
	Regions           []string `json:"regions"`
	Genders           []string `json:"genders"`
	ProductCategories []string `json:"productCategories"`
	PaymentMethods    []string `json:"paymentMethods"`
	Tags              []string `json:"tags"`
	AgeRange          AgeRange `json:"ageRange"`
}

// Document is a raw stored sale document as read from the JSONB column.
type Document map[string]any

// DocumentFromJSONB decodes a JSONB payload into a Document.
func DocumentFromJSONB(raw json.RawMessage) (Document, error) {
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}
