package models

import "time"

// Transaction is implemented by the seven ingested transaction variants.
// Each variant is stored in its own table.
type Transaction interface {
	GetID() string
	GetPhone() string
	GetAmount() int64
	GetDate() time.Time
	GetReference() string
	Category() Category
	// GetDirection is DirectionSent for variants without a direction column.
	GetDirection() Direction
	Counterparty() string
}

// BundleType distinguishes mobile data from airtime purchases.
type BundleType string

const (
	BundleTypeData    BundleType = "DATA"
	BundleTypeAirtime BundleType = "AIRTIME"
)

// MoneyTransfer is a person-to-person transfer, in either direction.
type MoneyTransfer struct {
	Record
	Direction         Direction `gorm:"size:10;not null;index" json:"direction"`
	CounterpartyName  string    `json:"counterparty_name"`
	CounterpartyPhone string    `gorm:"size:20" json:"counterparty_phone"`
	Fee               int64     `gorm:"type:bigint;not null;default:0" json:"fee"`
}

func (MoneyTransfer) TableName() string          { return "money_transfers" }
func (*MoneyTransfer) Category() Category        { return CategoryMoneyTransfer }
func (t *MoneyTransfer) GetDirection() Direction { return t.Direction }
func (t *MoneyTransfer) Counterparty() string    { return t.CounterpartyName }

// MerchantPayment is a payment to a merchant code holder.
type MerchantPayment struct {
	Record
	MerchantName string `json:"merchant_name"`
	MerchantCode string `gorm:"size:20" json:"merchant_code"`
	Fee          int64  `gorm:"type:bigint;not null;default:0" json:"fee"`
}

func (MerchantPayment) TableName() string        { return "merchant_payments" }
func (*MerchantPayment) Category() Category      { return CategoryMerchantPayment }
func (*MerchantPayment) GetDirection() Direction { return DirectionSent }
func (t *MerchantPayment) Counterparty() string  { return t.MerchantName }

// Bundle is a data bundle or airtime purchase.
type Bundle struct {
	Record
	BundleType BundleType `gorm:"size:10;not null" json:"bundle_type"`
}

func (Bundle) TableName() string        { return "bundles" }
func (*Bundle) Category() Category      { return CategoryBundle }
func (*Bundle) GetDirection() Direction { return DirectionSent }
func (t *Bundle) Counterparty() string {
	if t.BundleType == BundleTypeAirtime {
		return "Airtime"
	}
	return "Data Bundle"
}

// BankTransfer moves money between the wallet and a bank account.
type BankTransfer struct {
	Record
	Direction  Direction `gorm:"size:10;not null;index" json:"direction"`
	BankName   string    `json:"bank_name"`
	AccountRef string    `gorm:"size:40" json:"account_ref,omitempty"`
}

func (BankTransfer) TableName() string          { return "bank_transfers" }
func (*BankTransfer) Category() Category        { return CategoryBankTransfer }
func (t *BankTransfer) GetDirection() Direction { return t.Direction }
func (t *BankTransfer) Counterparty() string    { return t.BankName }

// OtherTransaction holds messages no template recognised. The raw body is kept.
type OtherTransaction struct {
	Record
	Name string `json:"name"`
	Body string `gorm:"type:text" json:"body"`
}

func (OtherTransaction) TableName() string        { return "other_transactions" }
func (*OtherTransaction) Category() Category      { return CategoryOther }
func (*OtherTransaction) GetDirection() Direction { return DirectionSent }
func (t *OtherTransaction) Counterparty() string  { return t.Name }

// AgentTransaction is a cash withdrawal at an agent.
type AgentTransaction struct {
	Record
	AgentName  string `json:"agent_name"`
	AgentPhone string `gorm:"size:20" json:"agent_phone"`
	Fee        int64  `gorm:"type:bigint;not null;default:0" json:"fee"`
}

func (AgentTransaction) TableName() string        { return "agent_transactions" }
func (*AgentTransaction) Category() Category      { return CategoryAgent }
func (*AgentTransaction) GetDirection() Direction { return DirectionSent }
func (t *AgentTransaction) Counterparty() string  { return t.AgentName }

// Utility is a bill payment such as electricity or water.
type Utility struct {
	Record
	Provider string `json:"provider"`
	Token    string `gorm:"size:64" json:"token,omitempty"`
}

func (Utility) TableName() string        { return "utilities" }
func (*Utility) Category() Category      { return CategoryUtility }
func (*Utility) GetDirection() Direction { return DirectionSent }
func (t *Utility) Counterparty() string  { return t.Provider }

// TransactionModels returns one zero value per variant, for migrations and
// per-table queries.
func TransactionModels() []Transaction {
	return []Transaction{
		&MoneyTransfer{},
		&BankTransfer{},
		&MerchantPayment{},
		&Bundle{},
		&Utility{},
		&AgentTransaction{},
		&OtherTransaction{},
	}
}

// Entry is the flattened view of any variant used by listings.
type Entry struct {
	ID           string    `json:"id"`
	Category     Category  `json:"category"`
	Label        string    `json:"label"`
	Direction    Direction `json:"direction"`
	Counterparty string    `json:"counterparty"`
	Reference    string    `json:"reference,omitempty"`
	Amount       int64     `json:"amount"`
	Date         time.Time `json:"date"`
}

// NewEntry flattens a transaction.
func NewEntry(t Transaction) Entry {
	return Entry{
		ID:           t.GetID(),
		Category:     t.Category(),
		Label:        t.Category().Label(),
		Direction:    t.GetDirection(),
		Counterparty: t.Counterparty(),
		Reference:    t.GetReference(),
		Amount:       t.GetAmount(),
		Date:         t.GetDate(),
	}
}
