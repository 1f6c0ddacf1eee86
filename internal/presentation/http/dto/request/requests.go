package request

// LoginRequest is the admin login payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateSettingsRequest carries a partial settings update
type UpdateSettingsRequest struct {
	APIKey      *string `json:"api_key"`
	InvoiceMode *string `json:"invoice_mode"`
	Environment *string `json:"environment"`
	Locale      *string `json:"locale"`
}

// ValidateKeyRequest asks for an API key check
type ValidateKeyRequest struct {
	APIKey string `json:"api_key"`
}

// OrderItemPayload is one line item in an order webhook
type OrderItemPayload struct {
	Name     string  `json:"name" binding:"required"`
	Quantity int     `json:"quantity" binding:"required"`
	Subtotal float64 `json:"subtotal"`
	Total    float64 `json:"total"`
	TaxTotal float64 `json:"tax_total"`
}

// OrderWebhookRequest is the order payload pushed by the store platform
type OrderWebhookRequest struct {
	Number           int64              `json:"number" binding:"required"`
	Status           string             `json:"status" binding:"required"`
	Currency         string             `json:"currency" binding:"required"`
	BillingFirstName string             `json:"billing_first_name"`
	BillingLastName  string             `json:"billing_last_name"`
	BillingCompany   string             `json:"billing_company"`
	BillingEmail     string             `json:"billing_email"`
	BillingCountry   string             `json:"billing_country"`
	BillingAddress1  string             `json:"billing_address_1"`
	BillingAddress2  string             `json:"billing_address_2"`
	BillingCity      string             `json:"billing_city"`
	BillingPostcode  string             `json:"billing_postcode"`
	BillingVATNumber string             `json:"billing_vat_number"`
	ShippingTotal    float64            `json:"shipping_total"`
	ShippingTax      float64            `json:"shipping_tax"`
	Items            []OrderItemPayload `json:"items"`
}

// BulkGenerateRequest lists the orders to invoice in one batch
type BulkGenerateRequest struct {
	OrderNumbers []int64 `json:"order_numbers" binding:"required,min=1"`
	RedirectTo   string  `json:"redirect_to"`
}
