package smsparser

import (
	"time"
)

// Type classifies the direction of a transactional SMS.
type Type string

const (
	TypeDebit    Type = "debit"
	TypeCredit   Type = "credit"
	TypeCashback Type = "cashback"
	TypeOther    Type = "other"
)

// Category is the canonical spend category, aligned with the backend budget
// taxonomy. The older capitalized taxonomy (Banking/UPI/Shopping/...) maps
// onto this set via CanonicalCategory.
type Category string

const (
	CategoryFood          Category = "food"
	CategoryTransport     Category = "transport"
	CategoryRecharge      Category = "recharge"
	CategoryEntertainment Category = "entertainment"
	CategoryMedical       Category = "medical"
	CategorySendHome      Category = "send_home"
	CategoryMiscellaneous Category = "miscellaneous"
)

// legacyCategories maps the retired capitalized taxonomy onto the canonical
// one. Unknown legacy names fall back to miscellaneous.
var legacyCategories = map[string]Category{
	"Banking":   CategoryMiscellaneous,
	"UPI":       CategoryMiscellaneous,
	"Shopping":  CategoryMiscellaneous,
	"Food":      CategoryFood,
	"Transport": CategoryTransport,
	"Other":     CategoryMiscellaneous,
}

// CanonicalCategory converts a legacy category name to the canonical
// taxonomy. Canonical names pass through unchanged.
func CanonicalCategory(name string) Category {
	if c, ok := legacyCategories[name]; ok {
		return c
	}
	switch Category(name) {
	case CategoryFood, CategoryTransport, CategoryRecharge, CategoryEntertainment,
		CategoryMedical, CategorySendHome, CategoryMiscellaneous:
		return Category(name)
	}
	return CategoryMiscellaneous
}

// Merchant is the resolved display name and category for a message.
type Merchant struct {
	Name     string
	Category Category
}

// ParsedTransaction is the record produced for one SMS. Every field is
// derived independently from the same message/sender pair; optional fields
// are nil when no pattern matched.
type ParsedTransaction struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Sender    string    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`

	IsOTP bool    `json:"isOtp"`
	OTP   *string `json:"otp"`

	Type    Type     `json:"type"`
	Amount  *float64 `json:"amount"`
	Balance *float64 `json:"balance"`
	Account *string  `json:"account"`
	// Discount is a percentage, e.g. 20 for "20% off".
	Discount *int `json:"discount"`

	Merchant string   `json:"merchant"`
	Category Category `json:"category"`
}
