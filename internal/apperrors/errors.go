package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrAssetNotFound indicates that an asset with the given ID does not exist in the ledger.
	ErrAssetNotFound = errors.New("asset not found")

	// ErrSnapshotNotFound indicates that nothing is stored under the requested storage key.
	ErrSnapshotNotFound = errors.New("snapshot not found")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrInvalidAssetType indicates a type outside bank, credit, crypto and stock.
	ErrInvalidAssetType = errors.New("invalid asset type")

	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrEmptyID indicates that a required ID parameter is empty or missing.
	ErrEmptyID = errors.New("ID cannot be empty")

	// ErrInvalidDate indicates a date that is neither YYYY-MM-DD nor RFC3339.
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidRequestBody indicates a request body that could not be decoded.
	ErrInvalidRequestBody = errors.New("invalid request body")
)

// Operation failure errors represent system-level failures when retrieving or processing data.
var (
	// ErrPriceSourceUnavailable indicates that no price source answered a refresh.
	ErrPriceSourceUnavailable = errors.New("price source unavailable")

	// ErrFailedToPersist indicates that the ledger snapshot could not be written.
	ErrFailedToPersist = errors.New("failed to persist ledger")

	// ErrFailedToRetrieveAssets indicates that the ledger could not be read.
	ErrFailedToRetrieveAssets = errors.New("failed to retrieve assets")

	// ErrFailedToRefreshPrices indicates that an on-demand price refresh failed.
	ErrFailedToRefreshPrices = errors.New("failed to refresh prices")
)

// Data integrity errors represent inconsistencies or corruption in the data.
var (
	// ErrCorruptSnapshot indicates a stored snapshot that could not be decoded or decrypted.
	ErrCorruptSnapshot = errors.New("corrupt snapshot")
)
