// Package importer parses broker CSV exports into transactions.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rcarvalho/Portfolio-Consolidator-Backend/internal/apperrors"
	"github.com/rcarvalho/Portfolio-Consolidator-Backend/internal/model"
)

// expectedHeaders is the exact header row a transaction CSV must carry.
var expectedHeaders = []string{
	"date", "ticker", "broker", "country", "category", "type",
	"quantity", "unitPrice", "fees", "splitFrom", "splitTo",
	"maturityDate", "interestRate",
}

// ParseTransactionsCSV reads a transaction CSV export and returns the parsed
// transactions. The file must carry the exact expected header row; any
// malformed row aborts the whole parse so a partial import can never happen.
func ParseTransactionsCSV(r io.Reader) ([]model.Transaction, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrInvalidCSVHeaders, err)
	}
	if err := validateHeaders(headers); err != nil {
		return nil, err
	}

	transactions := []model.Transaction{}
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV line %d: %w", line, err)
		}

		t, err := parseRecord(record)
		if err != nil {
			return nil, fmt.Errorf("invalid CSV line %d: %w", line, err)
		}
		transactions = append(transactions, t)
	}

	return transactions, nil
}

func validateHeaders(headers []string) error {
	if len(headers) != len(expectedHeaders) {
		return fmt.Errorf("%w: expected %d columns, got %d",
			apperrors.ErrInvalidCSVHeaders, len(expectedHeaders), len(headers))
	}
	for i, h := range headers {
		if strings.TrimSpace(h) != expectedHeaders[i] {
			return fmt.Errorf("%w: expected column %q, got %q",
				apperrors.ErrInvalidCSVHeaders, expectedHeaders[i], strings.TrimSpace(h))
		}
	}
	return nil
}

func parseRecord(record []string) (model.Transaction, error) {
	date, err := time.Parse("2006-01-02", record[0])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("bad date: %w", err)
	}

	quantity, err := parseFloat(record[6], "quantity")
	if err != nil {
		return model.Transaction{}, err
	}
	unitPrice, err := parseFloat(record[7], "unitPrice")
	if err != nil {
		return model.Transaction{}, err
	}
	fees, err := parseFloat(record[8], "fees")
	if err != nil {
		return model.Transaction{}, err
	}
	splitFrom, err := parseFloat(record[9], "splitFrom")
	if err != nil {
		return model.Transaction{}, err
	}
	splitTo, err := parseFloat(record[10], "splitTo")
	if err != nil {
		return model.Transaction{}, err
	}

	txType := model.TransactionType(record[5])
	switch txType {
	case model.TypeBuy, model.TypeSell, model.TypeDividend, model.TypeBonus, model.TypeSplit, model.TypeRedemption:
	default:
		return model.Transaction{}, fmt.Errorf("%w: %s", apperrors.ErrInvalidTransactionType, record[5])
	}

	category := model.AssetCategory(record[4])
	switch category {
	case model.CategoryStock, model.CategoryFund, model.CategoryFixedIncome:
	default:
		return model.Transaction{}, fmt.Errorf("%w: %s", apperrors.ErrInvalidAssetCategory, record[4])
	}

	t := model.Transaction{
		Date:         date.UTC(),
		Ticker:       strings.TrimSpace(record[1]),
		Broker:       strings.TrimSpace(record[2]),
		Country:      strings.TrimSpace(record[3]),
		Category:     category,
		Type:         txType,
		Quantity:     quantity,
		UnitPrice:    unitPrice,
		Fees:         fees,
		SplitFrom:    splitFrom,
		SplitTo:      splitTo,
		InterestRate: strings.TrimSpace(record[12]),
	}

	if t.Ticker == "" {
		return model.Transaction{}, apperrors.ErrInvalidTicker
	}

	if maturityStr := strings.TrimSpace(record[11]); maturityStr != "" {
		maturity, err := time.Parse("2006-01-02", maturityStr)
		if err != nil {
			return model.Transaction{}, fmt.Errorf("bad maturityDate: %w", err)
		}
		maturity = maturity.UTC()
		t.MaturityDate = &maturity
	}

	return t, nil
}

func parseFloat(raw, field string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("bad %s: %w", field, err)
	}
	return value, nil
}
