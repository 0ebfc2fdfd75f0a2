package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/rcarvalho/Portfolio-Consolidator-Backend/internal/api/request"
)

// ValidTransactionType contains the allowed transaction type values.
var ValidTransactionType = map[string]bool{
	"buy": true, "sell": true, "dividend": true, "bonus": true, "split": true, "redemption": true,
}

// ValidAssetCategory contains the allowed asset category values.
var ValidAssetCategory = map[string]bool{
	"stock": true, "fund": true, "fixed_income": true,
}

// ValidateCreateTransaction validates a transaction creation request.
// Checks all required fields and validates their formats and constraints.
//
// Required fields:
//   - date: Must be in YYYY-MM-DD format
//   - ticker, broker, country: Must be non-empty
//   - category: Must be one of: stock, fund, fixed_income
//   - type: Must be one of: buy, sell, dividend, bonus, split, redemption
//   - quantity: Must be positive, except for splits which use splitFrom/splitTo
//   - unitPrice: Must be non-negative
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateCreateTransaction(req request.CreateTransactionRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Date) == "" {
		errors["date"] = "date is required"
	} else if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		errors["date"] = err.Error()
	}

	if strings.TrimSpace(req.Ticker) == "" {
		errors["ticker"] = "ticker is required"
	}
	if strings.TrimSpace(req.Broker) == "" {
		errors["broker"] = "broker is required"
	}
	if strings.TrimSpace(req.Country) == "" {
		errors["country"] = "country is required"
	}

	if strings.TrimSpace(req.Category) == "" {
		errors["category"] = "category is required"
	} else if !ValidAssetCategory[req.Category] {
		errors["category"] = fmt.Sprintf("invalid category: %s", req.Category)
	}

	if strings.TrimSpace(req.Type) == "" {
		errors["transactionType"] = "type is required"
	} else if !ValidTransactionType[req.Type] {
		errors["transactionType"] = fmt.Sprintf("invalid type: %s", req.Type)
	}

	if req.Type == "split" {
		if req.SplitFrom <= 0 || req.SplitTo <= 0 {
			errors["splitRatio"] = "splitFrom and splitTo must be positive"
		}
	} else {
		if req.Quantity <= 0.0 {
			errors["quantity"] = "quantity must be positive"
		}
		if req.UnitPrice < 0.0 {
			errors["unitPrice"] = "unitPrice cannot be negative"
		}
	}

	if req.Fees < 0.0 {
		errors["fees"] = "fees cannot be negative"
	}

	if req.MaturityDate != "" {
		if _, err := time.Parse("2006-01-02", req.MaturityDate); err != nil {
			errors["maturityDate"] = err.Error()
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateUpdateTransaction validates a transaction update request.
// All fields are optional, but if provided, they must meet the same constraints as create.
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateUpdateTransaction(req request.UpdateTransactionRequest) error {
	errors := make(map[string]string)

	if req.Date != nil {
		if strings.TrimSpace(*req.Date) == "" {
			errors["date"] = "date is required"
		} else if _, err := time.Parse("2006-01-02", *req.Date); err != nil {
			errors["date"] = err.Error()
		}
	}
	if req.Ticker != nil && strings.TrimSpace(*req.Ticker) == "" {
		errors["ticker"] = "ticker is required"
	}
	if req.Broker != nil && strings.TrimSpace(*req.Broker) == "" {
		errors["broker"] = "broker is required"
	}
	if req.Country != nil && strings.TrimSpace(*req.Country) == "" {
		errors["country"] = "country is required"
	}
	if req.Category != nil {
		if !ValidAssetCategory[*req.Category] {
			errors["category"] = fmt.Sprintf("invalid category: %s", *req.Category)
		}
	}
	if req.Type != nil {
		if !ValidTransactionType[*req.Type] {
			errors["transactionType"] = fmt.Sprintf("invalid type: %s", *req.Type)
		}
	}
	if req.Quantity != nil && *req.Quantity <= 0.0 {
		errors["quantity"] = "quantity must be positive"
	}
	if req.UnitPrice != nil && *req.UnitPrice < 0.0 {
		errors["unitPrice"] = "unitPrice cannot be negative"
	}
	if req.Fees != nil && *req.Fees < 0.0 {
		errors["fees"] = "fees cannot be negative"
	}
	if req.MaturityDate != nil && *req.MaturityDate != "" {
		if _, err := time.Parse("2006-01-02", *req.MaturityDate); err != nil {
			errors["maturityDate"] = err.Error()
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
