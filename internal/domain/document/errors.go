package document

import "errors"

var (
	// ErrSalesOrderNotFound indicates no sales order exists for the lookup key.
	ErrSalesOrderNotFound = errors.New("document: sales order not found")

	// ErrInvoiceNotFound indicates no sales invoice exists for the lookup key.
	ErrInvoiceNotFound = errors.New("document: sales invoice not found")

	// ErrNotDraft indicates a submit on a document that already left draft.
	ErrNotDraft = errors.New("document: document is not in draft state")

	// ErrNotSubmitted indicates a cancel on a document that is not submitted.
	ErrNotSubmitted = errors.New("document: document is not submitted")
)
