package models

// Category is one of the seven mutually exclusive transaction classifications.
type Category string

const (
	CategoryMoneyTransfer   Category = "money_transfer"
	CategoryMerchantPayment Category = "merchant_payment"
	CategoryBundle          Category = "bundle"
	CategoryBankTransfer    Category = "bank_transfer"
	CategoryOther           Category = "other"
	CategoryAgent           Category = "agent_transaction"
	CategoryUtility         Category = "utility"
)

// Categories lists every category in reporting order.
var Categories = []Category{
	CategoryMoneyTransfer,
	CategoryBankTransfer,
	CategoryMerchantPayment,
	CategoryBundle,
	CategoryUtility,
	CategoryAgent,
	CategoryOther,
}

var categoryLabels = map[Category]string{
	CategoryMoneyTransfer:   "Money Transfers",
	CategoryBankTransfer:    "Bank Transfers",
	CategoryMerchantPayment: "Merchant Payments",
	CategoryBundle:          "Bundles",
	CategoryUtility:         "Utilities",
	CategoryAgent:           "Agents",
	CategoryOther:           "Others",
}

// Label returns the human readable name used in alerts and summaries.
func (c Category) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// Direction tells whether money left or entered the account.
type Direction string

const (
	DirectionSent     Direction = "sent"
	DirectionReceived Direction = "received"
)

// HasDirection reports whether the category's table stores a direction
// column. Only rows with DirectionSent count as spending in those tables.
func (c Category) HasDirection() bool {
	return c == CategoryMoneyTransfer || c == CategoryBankTransfer
}
