package billing

import (
	"fmt"
	"strings"

	"github.com/sharma-tailors/sharma-tailors-api/garments"
)

// ValidationError reports a rejected line-item field. It is local and
// recoverable: the caller surfaces it as a field-level message and no other
// state changes.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// MeasurementsIncompleteError carries the labels of every required measurement
// field that has no value, so the caller can re-prompt for exactly those fields.
type MeasurementsIncompleteError struct {
	ClothingType garments.GarmentType
	Missing      []string
}

func (e *MeasurementsIncompleteError) Error() string {
	return fmt.Sprintf("missing measurements for %s: %s", e.ClothingType, strings.Join(e.Missing, ", "))
}

// Persistence failure stages. The header insert is not safely retryable (it
// would duplicate the order); the items insert against an existing header is.
const (
	StageHeader = "header"
	StageItems  = "items"
)

// Persistence error codes surfaced to the API layer
const (
	CodePersistenceRejected    = "PERSISTENCE_REJECTED"
	CodeDuplicateInvoiceNumber = "DUPLICATE_INVOICE_NUMBER"
	CodePartialPersistence     = "PARTIAL_PERSISTENCE"
)

// PersistenceError wraps a failed order submission. Stage distinguishes a
// rejected header (nothing durable, order stays a draft) from a partial
// persistence (header durable, items missing); in the latter case OrderID
// carries the already-created header id so the caller can retry the items
// insert instead of re-creating a duplicate order.
type PersistenceError struct {
	Stage   string
	Code    string
	OrderID uint
	Err     error
}

func (e *PersistenceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("order %s insert failed: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("order %s insert failed", e.Stage)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Partial reports whether the order header is already durable and only the
// line items need to be retried.
func (e *PersistenceError) Partial() bool {
	return e.Stage == StageItems
}
