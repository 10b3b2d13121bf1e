package storefront

// ---------------------------------------------------------------------------
// FinancialStatus
// ---------------------------------------------------------------------------

// FinancialStatus is the payment state of a storefront order.
type FinancialStatus string

const (
	// FinancialStatusPending indicates payment has not been captured yet.
	FinancialStatusPending FinancialStatus = "pending"
	// FinancialStatusAuthorized indicates payment is authorized but not captured.
	FinancialStatusAuthorized FinancialStatus = "authorized"
	// FinancialStatusPaid indicates payment has been captured in full.
	FinancialStatusPaid FinancialStatus = "paid"
	// FinancialStatusPartiallyPaid indicates a partial capture.
	FinancialStatusPartiallyPaid FinancialStatus = "partially_paid"
	// FinancialStatusRefunded indicates the order was refunded in full.
	FinancialStatusRefunded FinancialStatus = "refunded"
	// FinancialStatusPartiallyRefunded indicates a partial refund.
	FinancialStatusPartiallyRefunded FinancialStatus = "partially_refunded"
	// FinancialStatusVoided indicates the authorization was voided.
	FinancialStatusVoided FinancialStatus = "voided"
)

// IsValid returns true if the status is one the platform is known to emit.
func (s FinancialStatus) IsValid() bool {
	switch s {
	case FinancialStatusPending, FinancialStatusAuthorized, FinancialStatusPaid,
		FinancialStatusPartiallyPaid, FinancialStatusRefunded,
		FinancialStatusPartiallyRefunded, FinancialStatusVoided:
		return true
	default:
		return false
	}
}

// String returns the string representation of FinancialStatus.
func (s FinancialStatus) String() string {
	return string(s)
}

// RequiresInvoice returns true if a sales invoice should be created for an
// order in this state.
func (s FinancialStatus) RequiresInvoice() bool {
	return s == FinancialStatusPaid
}

// ---------------------------------------------------------------------------
// LogStatus
// ---------------------------------------------------------------------------

// LogStatus is the outcome recorded on a sync log entry.
type LogStatus string

const (
	// LogStatusSuccess indicates the sync attempt completed.
	LogStatusSuccess LogStatus = "Success"
	// LogStatusError indicates the sync attempt failed and was rolled back.
	LogStatusError LogStatus = "Error"
	// LogStatusInvalid indicates the payload was skipped (duplicate order,
	// missing document) without being an error.
	LogStatusInvalid LogStatus = "Invalid"
	// LogStatusQueued indicates the payload was accepted but not yet processed.
	LogStatusQueued LogStatus = "Queued"
)

// IsValid returns true if the status is valid.
func (s LogStatus) IsValid() bool {
	switch s {
	case LogStatusSuccess, LogStatusError, LogStatusInvalid, LogStatusQueued:
		return true
	default:
		return false
	}
}

// String returns the string representation of LogStatus.
func (s LogStatus) String() string {
	return string(s)
}
