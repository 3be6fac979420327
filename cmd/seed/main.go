// Command seed populates the store with synthetic sales for local
// development. Generated documents use the current camelCase shape with
// typed values; combine with import-sales and a legacy spreadsheet to
// reproduce a mixed-shape collection.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/salesdash/api/internal/config"
	"github.com/salesdash/api/internal/db"
	"github.com/salesdash/api/internal/domain"
	"github.com/salesdash/api/internal/repository"
)

var (
	regions        = []string{"North", "South", "East", "West", "Central"}
	genders        = []string{"Male", "Female", "Other"}
	customerTypes  = []string{"Regular", "Premium", "Wholesale"}
	categories     = []string{"Electronics", "Clothing", "Groceries", "Beauty", "Sports", "Home"}
	brands         = []string{"Acme", "Globex", "Initech", "Umbrella", "Stark"}
	paymentMethods = []string{"Cash", "Card", "UPI", "Net Banking", "Wallet"}
	orderStatuses  = []string{"Completed", "Pending", "Cancelled", "Returned"}
	deliveryTypes  = []string{"Standard", "Express", "Same Day", "Pickup"}
	tagPool        = []string{"organic", "sale", "new", "clearance", "imported", "bestseller", "seasonal"}

	productNames = map[string][]string{
		"Electronics": {"Wireless Mouse", "Bluetooth Speaker", "LED Monitor", "Power Bank"},
		"Clothing":    {"Cotton T-Shirt", "Denim Jacket", "Running Shorts", "Wool Scarf"},
		"Groceries":   {"Olive Oil", "Basmati Rice", "Green Tea", "Almond Butter"},
		"Beauty":      {"Face Serum", "Shampoo", "Hand Cream", "Sunscreen"},
		"Sports":      {"Yoga Mat", "Tennis Racket", "Water Bottle", "Resistance Bands"},
		"Home":        {"Table Lamp", "Throw Pillow", "Ceramic Vase", "Wall Clock"},
	}

	firstNames = []string{"Aarav", "Diya", "Rohan", "Priya", "Kabir", "Ananya", "Vikram", "Meera", "Arjun", "Sana"}
	lastNames  = []string{"Sharma", "Patel", "Iyer", "Khan", "Gupta", "Reddy", "Singh", "Das", "Nair", "Mehta"}
)

func main() {
	var (
		count      = flag.Int("count", 500, "number of sales to generate")
		configPath = flag.String("config", ".", "directory containing config.yaml")
		seed       = flag.Int64("seed", time.Now().UnixNano(), "random seed")
	)
	flag.Parse()

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.WithError(err).Fatal("failed to load configuration")
	}

	ctx := context.Background()

	conn, err := db.Connect(ctx, cfg.Database, logger)
	if err != nil {
		logger.WithError(err).Fatal("failed to connect to database")
	}
	defer conn.Close()

	if err := db.RunMigrations(cfg.Database); err != nil {
		logger.WithError(err).Fatal("failed to run migrations")
	}

	rng := rand.New(rand.NewSource(*seed))
	repo := repository.NewSaleRepository(conn.Pool)

	inserted := 0
	for i := 0; i < *count; i++ {
		doc := randomSale(rng, i)
		if _, err := repo.InsertDocument(ctx, doc); err != nil {
			logger.WithError(err).WithField("transactionId", doc["transactionId"]).Error("failed to insert sale")
			continue
		}
		inserted++
	}

	logger.WithFields(logrus.Fields{"requested": *count, "inserted": inserted}).Info("seeding finished")
}

func randomSale(rng *rand.Rand, n int) domain.Document {
	category := pick(rng, categories)
	quantity := 1 + rng.Intn(5)
	pricePerUnit := money(rng, 50, 5000)
	discount := float64(rng.Intn(7) * 5)

	total := decimal.NewFromFloat(pricePerUnit).Mul(decimal.NewFromInt(int64(quantity)))
	final := total.Mul(decimal.NewFromInt(1).Sub(decimal.NewFromFloat(discount).Div(decimal.NewFromInt(100)))).Round(2)

	totalAmount, _ := total.Round(2).Float64()
	finalAmount, _ := final.Float64()

	date := time.Now().AddDate(0, 0, -rng.Intn(365)).UTC().Format("2006-01-02")
	customerName := pick(rng, firstNames) + " " + pick(rng, lastNames)

	return domain.Document{
		"transactionId":      fmt.Sprintf("TXN-%06d", n+1),
		"customerId":         fmt.Sprintf("CUST-%04d", rng.Intn(2000)+1),
		"customerName":       customerName,
		"phoneNumber":        fmt.Sprintf("98%08d", rng.Intn(100000000)),
		"gender":             pick(rng, genders),
		"age":                18 + rng.Intn(53),
		"customerRegion":     pick(rng, regions),
		"customerType":       pick(rng, customerTypes),
		"productId":          fmt.Sprintf("PROD-%04d", rng.Intn(500)+1),
		"productName":        pick(rng, productNames[category]),
		"brand":              pick(rng, brands),
		"productCategory":    category,
		"tags":               pickTags(rng),
		"quantity":           quantity,
		"pricePerUnit":       pricePerUnit,
		"discountPercentage": discount,
		"totalAmount":        totalAmount,
		"finalAmount":        finalAmount,
		"date":               date,
		"paymentMethod":      pick(rng, paymentMethods),
		"orderStatus":        pick(rng, orderStatuses),
		"deliveryType":       pick(rng, deliveryTypes),
		"storeId":            fmt.Sprintf("STORE-%02d", rng.Intn(20)+1),
		"storeLocation":      pick(rng, regions) + " Plaza",
		"salespersonId":      fmt.Sprintf("EMP-%03d", rng.Intn(50)+1),
		"employeeName":       pick(rng, firstNames) + " " + pick(rng, lastNames),
	}
}

func pick(rng *rand.Rand, values []string) string {
	return values[rng.Intn(len(values))]
}

func pickTags(rng *rand.Rand) []string {
	count := 1 + rng.Intn(3)
	seen := map[string]bool{}
	tags := []string{}
	for len(tags) < count {
		tag := pick(rng, tagPool)
		if seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
	}
	return tags
}

func money(rng *rand.Rand, min, max float64) float64 {
	v := min + rng.Float64()*(max-min)
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}
