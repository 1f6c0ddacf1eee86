package b2brouter

// Invoice is the payload sent to the invoicing API when creating an invoice.
// Field names follow the B2Brouter REST conventions.
type Invoice struct {
	Number       string        `json:"number"`
	Date         string        `json:"date"`
	DueDate      string        `json:"due_date"`
	Currency     string        `json:"currency"`
	Language     string        `json:"language"`
	Contact      Contact       `json:"contact"`
	InvoiceLines []InvoiceLine `json:"invoice_lines_attributes"`
	ExtraInfo    string        `json:"extra_info,omitempty"`
}

// Contact identifies the invoice recipient.
type Contact struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Country    string `json:"country"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalcode"`
	TinValue   string `json:"tin_value,omitempty"`
}

// InvoiceLine is a single billable line on an invoice.
type InvoiceLine struct {
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	Taxes       []Tax   `json:"taxes_attributes,omitempty"`
}

// Tax describes one tax applied to a line.
type Tax struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Percent  float64 `json:"percent"`
}

// InvoiceRecord is the remote representation returned after creation.
type InvoiceRecord struct {
	ID     int64  `json:"id"`
	Number string `json:"number"`
	State  string `json:"state,omitempty"`
}

// Account is a tenant account on the invoicing service.
type Account struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
