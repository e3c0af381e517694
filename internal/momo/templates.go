package momo

import (
	"regexp"

	"momopress/internal/models"
)

// template is one recognised notification layout. Templates are tried in
// slice order and the first pattern that matches decides the category, so
// more specific layouts must come before the ones they overlap with.
//
// Named capture groups feed Match fields: amount, name, phone, code, token.
// The utility provider must be the whole payee, so merchants whose names
// start with a provider word fall through to merchant_payment.
type template struct {
	name       string
	pattern    *regexp.Regexp
	category   models.Category
	direction  models.Direction
	bundleType models.BundleType
	// defaultName is used when the pattern has no name group or it is empty.
	defaultName string
}

var templates = []template{
	{
		name:      "agent_withdrawal",
		category:  models.CategoryAgent,
		direction: models.DirectionSent,
		pattern:   regexp.MustCompile(`(?i)via agent:?\s*(?P<name>[^(]+?)\s*\((?P<phone>[\d*]+)\),?\s*withdrawn\s+(?P<amount>[\d,]+)\s*RWF`),
	},
	{
		name:        "bank_deposit",
		category:    models.CategoryBankTransfer,
		direction:   models.DirectionReceived,
		defaultName: "Bank",
		pattern:     regexp.MustCompile(`(?i)bank deposit of\s+(?P<amount>[\d,]+)\s*RWF(?:.*?deposit from\s+(?P<name>[A-Za-z][A-Za-z ]*?)\s*\.)?`),
	},
	{
		name:      "bank_transfer",
		category:  models.CategoryBankTransfer,
		direction: models.DirectionSent,
		pattern:   regexp.MustCompile(`(?i)transferred\s+(?P<amount>[\d,]+)\s*RWF\s+to\s+(?P<name>[A-Za-z ]*?bank[A-Za-z ]*?)(?:\s+account\s+(?P<code>[\d-]+))?\s+(?:at|on)\s`),
	},
	{
		name:       "data_bundle",
		category:   models.CategoryBundle,
		direction:  models.DirectionSent,
		bundleType: models.BundleTypeData,
		pattern:    regexp.MustCompile(`(?i)payment of\s+(?P<amount>[\d,]+)\s*RWF\s+to\s+(?:Bundles and Packs|Data Bundle|Internet Bundle)`),
	},
	{
		name:       "data_bundle_debit",
		category:   models.CategoryBundle,
		direction:  models.DirectionSent,
		bundleType: models.BundleTypeData,
		pattern:    regexp.MustCompile(`(?i)transaction of\s+(?P<amount>[\d,]+)\s*RWF\s+by\s+(?:Bundles and Packs|Data Bundle|Internet Bundle)`),
	},
	{
		name:       "airtime",
		category:   models.CategoryBundle,
		direction:  models.DirectionSent,
		bundleType: models.BundleTypeAirtime,
		pattern:    regexp.MustCompile(`(?i)payment of\s+(?P<amount>[\d,]+)\s*RWF\s+to\s+Airtime`),
	},
	{
		name:      "utility",
		category:  models.CategoryUtility,
		direction: models.DirectionSent,
		pattern:   regexp.MustCompile(`(?i)payment of\s+(?P<amount>[\d,]+)\s*RWF\s+to\s+(?P<name>MTN Cash Power|Cash Power|WASAC|REG|Canal\+|StarTimes|DStv|RRA)(?:\s+with token\s*(?P<token>[\d-]*))?(?:\s+has been completed|\s*[.,]|\s*$)`),
	},
	{
		name:      "merchant_payment",
		category:  models.CategoryMerchantPayment,
		direction: models.DirectionSent,
		pattern:   regexp.MustCompile(`(?i)payment of\s+(?P<amount>[\d,]+)\s*RWF\s+to\s+(?P<name>[^\d]+?)\s+(?P<code>\d{3,10})\s+has been completed`),
	},
	{
		name:      "transfer_received",
		category:  models.CategoryMoneyTransfer,
		direction: models.DirectionReceived,
		pattern:   regexp.MustCompile(`(?i)received\s+(?P<amount>[\d,]+)\s*RWF\s+from\s+(?P<name>[^(]+?)\s*\((?P<phone>[\d*]+)\)`),
	},
	{
		name:      "transfer_sent",
		category:  models.CategoryMoneyTransfer,
		direction: models.DirectionSent,
		pattern:   regexp.MustCompile(`(?i)(?P<amount>[\d,]+)\s*RWF\s+transferred\s+to\s+(?P<name>[^(]+?)\s*\((?P<phone>[\d*]+)\)`),
	},
	{
		name:      "third_party_payment",
		category:  models.CategoryOther,
		direction: models.DirectionSent,
		pattern:   regexp.MustCompile(`(?i)transaction of\s+(?P<amount>[\d,]+)\s*RWF\s+by\s+(?P<name>.+?)\s+on your`),
	},
}

var (
	feePattern       = regexp.MustCompile(`(?i)Fee\s+(?:was|paid)\s*:?\s*([\d,]+)\s*RWF`)
	referencePattern = regexp.MustCompile(`(?i)(?:Financial Transaction Id|TxId)\s*:?\s*(\d+)`)
)

// groups returns the named captures of the first match of t in body, or nil.
func (t template) groups(body string) map[string]string {
	sub := t.pattern.FindStringSubmatch(body)
	if sub == nil {
		return nil
	}
	out := make(map[string]string, len(sub))
	for i, name := range t.pattern.SubexpNames() {
		if name != "" && i < len(sub) {
			out[name] = sub[i]
		}
	}
	return out
}
