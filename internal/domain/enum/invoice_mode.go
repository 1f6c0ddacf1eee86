package enum

// InvoiceMode governs whether invoices are generated automatically when an
// order completes or only on explicit admin request.
type InvoiceMode string

const (
	InvoiceModeAutomatic InvoiceMode = "automatic"
	InvoiceModeManual    InvoiceMode = "manual"
)

// IsValid reports whether the value is one of the supported modes. The check
// is case-sensitive.
func (m InvoiceMode) IsValid() bool {
	return m == InvoiceModeAutomatic || m == InvoiceModeManual
}

func (m InvoiceMode) String() string {
	return string(m)
}
