// Package importer normalizes raw card records from heterogeneous sources
// (Collectr CSV exports, showcase API pages, manually pasted product JSON)
// into the canonical card shape. Raw record shapes never leak past this
// package.
package importer

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/palmsoff/binderd/internal/domain"
	apperrors "github.com/palmsoff/binderd/internal/errors"
	"github.com/palmsoff/binderd/internal/id"
)

// Collectr CSV export headers. The market price header varies by export
// version (it embeds the price date), so it is located by prefix instead.
const (
	headerProductName   = "Product Name"
	headerCatalogGroup  = "Set"
	headerCardNumber    = "Card Number"
	headerRarity        = "Rarity"
	headerVariant       = "Variant"
	headerGrade         = "Grade"
	headerCondition     = "Condition"
	headerCostPaid      = "Cost Paid"
	headerQuantity      = "Quantity"
	headerPriceOverride = "Price Override"
	headerWatchlist     = "Watchlist"
	headerPortfolioName = "Portfolio Name"
	headerNotes         = "Notes"

	marketPricePrefix = "Market Price"
)

// csvRow is the raw delimited-text record: header name to string value.
// All numerics are still strings at this stage.
type csvRow map[string]string

// ParseCSV parses a Collectr CSV export into canonical cards grouped by
// portfolio name. Rows flagged watchlist-only with no portfolio name belong
// to a different intake path and are excluded. Either the whole batch
// normalizes or the import is rejected; there is no partial success.
func ParseCSV(r io.Reader) (map[string][]domain.Card, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true // tolerate malformed quotes in hand-edited exports
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1 // exports pad trailing columns inconsistently

	records, err := reader.ReadAll()
	if err != nil {
		return nil, apperrors.Validation("malformed CSV: " + err.Error())
	}
	if len(records) < 2 {
		return nil, apperrors.Validation("import contained no data rows")
	}

	headers := records[0]
	rows := make([]csvRow, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(csvRow, len(headers))
		for i, h := range headers {
			if i < len(record) {
				row[strings.TrimSpace(h)] = record[i]
			}
		}
		rows = append(rows, row)
	}

	groups := make(map[string][]domain.Card)
	now := time.Now()
	for _, row := range rows {
		portfolio := strings.TrimSpace(row[headerPortfolioName])
		if isTruthy(row[headerWatchlist]) && portfolio == "" {
			// Watchlist-only rows with no portfolio are a separate intake.
			continue
		}
		if portfolio == "" {
			portfolio = domain.DefaultCollection
		}

		card, err := cardFromCSVRow(row, headers, now)
		if err != nil {
			return nil, err
		}
		groups[portfolio] = append(groups[portfolio], card)
	}

	if len(groups) == 0 {
		return nil, apperrors.Validation("import contained no portfolio rows")
	}
	return groups, nil
}

func cardFromCSVRow(row csvRow, headers []string, now time.Time) (domain.Card, error) {
	name := strings.TrimSpace(row[headerProductName])
	group := strings.TrimSpace(row[headerCatalogGroup])
	number := strings.TrimSpace(row[headerCardNumber])

	marketPrice, err := parsePrice(marketPriceValue(row, headers))
	if err != nil {
		return domain.Card{}, apperrors.Validationf("row %q: bad market price: %v", name, err)
	}

	cardID, err := id.Card(group, name, number)
	if err != nil {
		return domain.Card{}, err
	}

	return domain.Card{
		ID:            cardID,
		ProductName:   name,
		CatalogGroup:  group,
		CardNumber:    number,
		Rarity:        strings.TrimSpace(row[headerRarity]),
		Variant:       strings.TrimSpace(row[headerVariant]),
		Grade:         strings.TrimSpace(row[headerGrade]),
		Condition:     strings.TrimSpace(row[headerCondition]),
		CostPaid:      parseOptionalPrice(row[headerCostPaid]),
		Quantity:      parseQuantity(row[headerQuantity]),
		MarketPrice:   marketPrice,
		PriceOverride: parseOptionalPrice(row[headerPriceOverride]),
		Watchlist:     isTruthy(row[headerWatchlist]),
		DateAdded:     now,
		Notes:         strings.TrimSpace(row[headerNotes]),
	}, nil
}

// marketPriceValue locates the market price column by prefix match, since
// the exact header varies by export version ("Market Price (1/15/26)" etc).
// Absence defaults to "0".
func marketPriceValue(row csvRow, headers []string) string {
	for _, h := range headers {
		trimmed := strings.TrimSpace(h)
		if strings.HasPrefix(trimmed, marketPricePrefix) {
			if v := strings.TrimSpace(row[trimmed]); v != "" {
				return v
			}
			return "0"
		}
	}
	return "0"
}

func parsePrice(s string) (decimal.Decimal, error) {
	s = cleanNumeric(s)
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

// parseOptionalPrice distinguishes "absent" from "explicitly zero": an
// empty or unparseable value is nil, anything else is kept verbatim.
func parseOptionalPrice(s string) *decimal.Decimal {
	s = cleanNumeric(s)
	if s == "" {
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}
	return &d
}

func parseQuantity(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func cleanNumeric(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	return strings.ReplaceAll(s, ",", "")
}

func isTruthy(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "1", "y":
		return true
	default:
		return false
	}
}
