package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/routerlabs/einvoice-bridge/internal/domain/enum"
	"gorm.io/gorm"
)

// StoreSettings holds the bridge-wide configuration. The table contains a
// single row which is created with defaults on first read.
type StoreSettings struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Invoicing API credentials
	APIKey    string `gorm:"size:255" json:"-"`
	AccountID string `gorm:"size:50" json:"account_id"`

	Environment enum.Environment `gorm:"size:20;default:'staging'" json:"environment"`
	InvoiceMode enum.InvoiceMode `gorm:"size:20;default:'manual'" json:"invoice_mode"`

	// Locale of the store, e.g. "en_US". The invoice language is derived
	// from its first two characters.
	Locale string `gorm:"size:10;default:'en_US'" json:"locale"`

	TransactionCount int64 `gorm:"default:0" json:"transaction_count"`
	ShowWelcome      bool  `gorm:"default:true" json:"show_welcome"`
}

// IsAPIKeyConfigured reports whether an API key has been stored.
func (s *StoreSettings) IsAPIKeyConfigured() bool {
	return s.APIKey != ""
}

// BeforeCreate generates a UUID before creating new settings
func (s *StoreSettings) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the StoreSettings model
func (StoreSettings) TableName() string {
	return "store_settings"
}
