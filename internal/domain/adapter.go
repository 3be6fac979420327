package domain

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Two incompatible document shapes exist in the store: the typed camelCase
// schema and the older "Title Case" schema whose values are all strings.
// AdaptSale is the single place both are folded into the canonical Sale;
// defaults for missing optional fields are applied here and nowhere else.

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01/02/2006",
}

// legacyKeys maps each canonical field to its stored spellings, probed in
// order. The camelCase spelling wins when both are present.
var legacyKeys = map[string][]string{
	"transactionId":      {"transactionId", "Transaction ID"},
	"customerId":         {"customerId", "Customer ID"},
	"customerName":       {"customerName", "Customer Name"},
	"phoneNumber":        {"phoneNumber", "Phone Number"},
	"gender":             {"gender", "Gender"},
	"age":                {"age", "Age"},
	"customerRegion":     {"customerRegion", "Customer Region"},
	"customerType":       {"customerType", "Customer Type"},
	"productId":          {"productId", "Product ID"},
	"productName":        {"productName", "Product Name"},
	"brand":              {"brand", "Brand"},
	"productCategory":    {"productCategory", "Product Category"},
	"tags":               {"tags", "Tags"},
	"quantity":           {"quantity", "Quantity"},
	"pricePerUnit":       {"pricePerUnit", "Price per Unit"},
	"discountPercentage": {"discountPercentage", "Discount Percentage"},
	"totalAmount":        {"totalAmount", "Total Amount"},
	"finalAmount":        {"finalAmount", "Final Amount"},
	"date":               {"date", "Date"},
	"paymentMethod":      {"paymentMethod", "Payment Method"},
	"orderStatus":        {"orderStatus", "Order Status"},
	"deliveryType":       {"deliveryType", "Delivery Type"},
	"storeId":            {"storeId", "Store ID"},
	"storeLocation":      {"storeLocation", "Store Location"},
	"salespersonId":      {"salespersonId", "Salesperson ID"},
	"employeeName":       {"employeeName", "Employee Name"},
}

// AdaptSale converts a stored document of either legacy shape into the
// canonical Sale. The function is total: any document yields a Sale, with
// unparsable or missing fields replaced by their documented defaults.
func AdaptSale(id uuid.UUID, doc Document) Sale {
	s := Sale{
		ID:            id,
		TransactionID: docString(doc, "transactionId"),

		CustomerID:     docString(doc, "customerId"),
		CustomerName:   docString(doc, "customerName"),
		PhoneNumber:    docString(doc, "phoneNumber"),
		Gender:         normalizeGender(docString(doc, "gender")),
		Age:            docInt(doc, "age", 25),
		CustomerRegion: docString(doc, "customerRegion"),
		CustomerType:   docStringDefault(doc, "customerType", "Regular"),

		ProductID:       docString(doc, "productId"),
		ProductName:     docString(doc, "productName"),
		Brand:           docString(doc, "brand"),
		ProductCategory: docString(doc, "productCategory"),
		Tags:            docTags(doc),

		Quantity:           docInt(doc, "quantity", 1),
		PricePerUnit:       docFloat(doc, "pricePerUnit"),
		DiscountPercentage: docFloat(doc, "discountPercentage"),
		TotalAmount:        docFloat(doc, "totalAmount"),

		Date:          docDate(doc),
		PaymentMethod: docStringDefault(doc, "paymentMethod", "Cash"),
		OrderStatus:   docStringDefault(doc, "orderStatus", "Completed"),
		DeliveryType:  docStringDefault(doc, "deliveryType", "Standard"),
		StoreID:       docString(doc, "storeId"),
		StoreLocation: docString(doc, "storeLocation"),
		SalespersonID: docString(doc, "salespersonId"),
		EmployeeName:  docString(doc, "employeeName"),
	}

	if v, ok := docLookup(doc, "finalAmount"); ok {
		if f, ok := coerceFloat(v); ok {
			s.FinalAmount = f
		}
	}
	if s.FinalAmount == 0 && s.TotalAmount > 0 {
		s.FinalAmount = computeFinalAmount(s.TotalAmount, s.DiscountPercentage)
	}

	return s
}

// computeFinalAmount applies the discount and rounds to the currency's
// minor unit: totalAmount * (1 - discountPercentage/100).
func computeFinalAmount(totalAmount, discountPercentage float64) float64 {
	total := decimal.NewFromFloat(totalAmount)
	discount := decimal.NewFromFloat(discountPercentage).Div(decimal.NewFromInt(100))
	final := total.Mul(decimal.NewFromInt(1).Sub(discount)).Round(2)
	f, _ := final.Float64()
	return f
}

func docLookup(doc Document, field string) (any, bool) {
	for _, key := range legacyKeys[field] {
		if v, ok := doc[key]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func docString(doc Document, field string) string {
	v, ok := docLookup(doc, field)
	if !ok {
		return ""
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	}
	return ""
}

func docStringDefault(doc Document, field, def string) string {
	if s := docString(doc, field); s != "" {
		return s
	}
	return def
}

func docInt(doc Document, field string, def int) int {
	v, ok := docLookup(doc, field)
	if !ok {
		return def
	}
	if f, ok := coerceFloat(v); ok {
		return int(f)
	}
	return def
}

func docFloat(doc Document, field string) float64 {
	v, ok := docLookup(doc, field)
	if !ok {
		return 0
	}
	if f, ok := coerceFloat(v); ok {
		return f
	}
	return 0
}

func coerceFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

func docDate(doc Document) time.Time {
	v, ok := docLookup(doc, "date")
	if !ok {
		return time.Time{}
	}
	raw, ok := v.(string)
	if !ok {
		return time.Time{}
	}
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}

// docTags folds both tag storage shapes into one list: a genuine JSON array
// or a single delimited string like "organic,skincare".
func docTags(doc Document) []string {
	v, ok := docLookup(doc, "tags")
	if !ok {
		return []string{}
	}

	var raw []string
	switch t := v.(type) {
	case []any:
		for _, item := range t {
			if s, ok := item.(string); ok {
				raw = append(raw, s)
			}
		}
	case []string:
		raw = t
	case string:
		raw = strings.Split(t, ",")
	}

	tags := make([]string, 0, len(raw))
	for _, tag := range raw {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

func normalizeGender(raw string) string {
	switch strings.ToLower(raw) {
	case "male", "m":
		return "Male"
	case "female", "f":
		return "Female"
	default:
		return "Other"
	}
}
