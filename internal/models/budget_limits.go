package models

// BudgetLimits holds the monthly spending limits of one account.
// A zero value disables the corresponding check.
type BudgetLimits struct {
	Phone           string `gorm:"size:20;primaryKey" json:"phone"`
	General         int64  `gorm:"type:bigint;not null;default:0" json:"general"`
	MoneyTransfer   int64  `gorm:"type:bigint;not null;default:0" json:"money_transfer"`
	BankTransfer    int64  `gorm:"type:bigint;not null;default:0" json:"bank_transfer"`
	MerchantPayment int64  `gorm:"type:bigint;not null;default:0" json:"merchant_payment"`
	Bundle          int64  `gorm:"type:bigint;not null;default:0" json:"bundle"`
	Utility         int64  `gorm:"type:bigint;not null;default:0" json:"utility"`
	Agent           int64  `gorm:"type:bigint;not null;default:0" json:"agent"`
	Other           int64  `gorm:"type:bigint;not null;default:0" json:"other"`
}

// For returns the limit configured for a category.
func (l BudgetLimits) For(c Category) int64 {
	switch c {
	case CategoryMoneyTransfer:
		return l.MoneyTransfer
	case CategoryBankTransfer:
		return l.BankTransfer
	case CategoryMerchantPayment:
		return l.MerchantPayment
	case CategoryBundle:
		return l.Bundle
	case CategoryUtility:
		return l.Utility
	case CategoryAgent:
		return l.Agent
	case CategoryOther:
		return l.Other
	}
	return 0
}
