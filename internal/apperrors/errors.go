package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrTransactionNotFound indicates that a transaction with the given ID does not exist.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrPositionNotFound indicates that no position exists for the given ticker/broker/country.
	ErrPositionNotFound = errors.New("position not found")

	// ErrExchangeRateNotFound indicates no stored rate for a specific currency pair and date.
	ErrExchangeRateNotFound = errors.New("exchange rate for currency/date not found")

	// ErrSettingNotFound indicates that a system setting key does not exist.
	ErrSettingNotFound = errors.New("setting not found")

	// ErrQuoteNotFound indicates that a quote lookup returned no results for the ticker.
	ErrQuoteNotFound = errors.New("quote not found")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrEmptyID indicates that a required ID parameter is empty or missing.
	ErrEmptyID = errors.New("ID cannot be empty")

	// ErrNegativeAmount indicates that an amount field has an invalid negative value.
	ErrNegativeAmount = errors.New("amount cannot be negative")

	// ErrInvalidTransactionType indicates an unknown transaction type value.
	ErrInvalidTransactionType = errors.New("invalid transaction type")

	// ErrInvalidAssetCategory indicates an unknown asset category value.
	ErrInvalidAssetCategory = errors.New("invalid asset category")

	// ErrInvalidSplitRatio indicates a split with a non-positive from/to ratio.
	ErrInvalidSplitRatio = errors.New("invalid split ratio")

	// ErrInvalidDateRange indicates that the provided date range is invalid
	// (e.g., start date is after end date).
	ErrInvalidDateRange = errors.New("invalid date range")

	// Validation errors for required fields
	ErrInvalidTicker        = errors.New("ticker is required")
	ErrInvalidTransactionID = errors.New("transaction ID is required")
	ErrInvalidCurrency      = errors.New("currency parameter is required")
	ErrInvalidDate          = errors.New("date parameter is required")
)

// Operation failure errors represent system-level failures when retrieving or processing data.
// These errors indicate that an operation failed, but not due to missing entities or validation issues.
var (
	// Transaction operation errors
	ErrFailedToRetrieveTransactions = errors.New("failed to retrieve transactions")
	ErrFailedToRetrieveTransaction  = errors.New("failed to retrieve transaction")

	// Consolidation operation errors
	ErrFailedToConsolidate         = errors.New("failed to consolidate portfolio")
	ErrFailedToGetEquityHistory    = errors.New("failed to get equity history")
	ErrFailedToGetRealizedGains    = errors.New("failed to get realized gains")
	ErrFailedToGetTaxReport        = errors.New("failed to get tax report")
	ErrFailedToRebuildSnapshots    = errors.New("failed to rebuild equity snapshots")
	ErrFailedToRetrieveExchangeRate = errors.New("failed to retrieve exchange rate")
	ErrFailedToUpdateExchangeRate  = errors.New("failed to update exchange rate")

	// Quote operation errors
	ErrFailedToRetrieveQuote = errors.New("failed to retrieve quote")

	// Import operation errors
	ErrFailedToImportTransactions = errors.New("failed to import transactions")
	ErrInvalidCSVHeaders          = errors.New("invalid CSV headers")

	// System operation errors
	ErrFailedToGetVersionInfo = errors.New("failed to get version information")
	ErrFailedToRetrieveSetting = errors.New("failed to retrieve setting")
	ErrFailedToStoreSetting    = errors.New("failed to store setting")
)

// Data integrity errors represent inconsistencies or corruption in the data.
var (
	// ErrDataInconsistency indicates that the data is in an inconsistent state
	// (e.g., a sell references more shares than the ledger holds).
	ErrDataInconsistency = errors.New("data inconsistency detected")

	// ErrMissingRequiredField indicates that a required field is missing or empty.
	ErrMissingRequiredField = errors.New("missing required field")
)
