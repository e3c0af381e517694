package momo

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"momopress/internal/models"
)

const (
	bodyReceived       = "You have received 2,000 RWF from Jane Smith (*********013) on your mobile money account at 2024-05-10 16:30:51. Message from sender: . Your new balance:2,000 RWF. Financial Transaction Id: 76662021700."
	bodyMerchant       = "TxId: 73214484437. Your payment of 1,000 RWF to Jane Smith 12845 has been completed at 2024-05-10 21:32:32. Your new balance: 1,000 RWF. Fee was 0 RWF.Kindly use *182*16# to get your receipt."
	bodySent           = "*165*S*10,000 RWF transferred to Samuel Carter (250791666666) from 36521838 at 2024-05-11 20:34:47 . Fee was: 100 RWF. New balance: 28,300 RWF. Kindly dial *182*3*1# for help."
	bodyBankDeposit    = "*113*R*A bank deposit of 40,000 RWF has been added to your mobile money account at 2024-05-11 18:43:49. Your NEW BALANCE :40,400 RWF. Cash Deposit::CASH DEPOSIT FROM BANK OF KIGALI. Thank you for using MTN MobileMoney.*EN#"
	bodyBankTransfer   = "*164*S*Y'ello, You have transferred 50,000 RWF to Bank of Kigali account 00040-0695624-07 at 2024-05-14 10:12:30. Fee was 500 RWF. Your new balance: 12,000 RWF."
	bodyAirtime        = "*162*TxId:13913173274*S*Your payment of 2,000 RWF to Airtime with token  has been completed at 2024-05-12 11:41:28. Fee was 0 RWF. Your new balance: 25,280 RWF . Kindly dial *182*3*1#"
	bodyData           = "*162*TxId:13913173275*S*Your payment of 500 RWF to Bundles and Packs with token  has been completed at 2024-05-12 11:45:00. Fee was 0 RWF. Your new balance: 24,780 RWF ."
	bodyDataDebit      = "*164*S*Y'ello,A transaction of 600 RWF by Data Bundle MTN on your MOMO account was successfully completed at 2024-05-12 12:00:00. Message from debit receiver: . Your new balance:24,180 RWF. Fee was 0 RWF. Financial Transaction Id: 13913173276."
	bodyCashPower      = "*162*TxId:13913173277*S*Your payment of 3,000 RWF to MTN Cash Power with token 12345-67890-12345 has been completed at 2024-05-13 09:00:00. Fee was 0 RWF. Your new balance: 21,180 RWF ."
	bodyAgent          = "You Jane Doe (*********036) have via agent: Agent Sophia (250790777777), withdrawn 20,000 RWF from your mobile money account: 36521838 at 2024-05-26 02:10:27 and you can now collect your money in cash. Your new balance: 6,400 RWF. Fee paid: 350 RWF. Message from agent: 1. Financial Transaction Id: 14098463509."
	bodyThirdParty     = "*164*S*Y'ello,A transaction of 12,500 RWF by IREMBO LTD on your MOMO account was successfully completed at 2024-05-15 08:00:00. Your new balance:8,680 RWF. Fee was 0 RWF. Financial Transaction Id: 14098463600."
	bodyMerchantPrefix = "TxId: 73214484500. Your payment of 4,500 RWF to Regina Shop 77120 has been completed at 2024-05-16 13:00:00. Your new balance: 4,180 RWF. Fee was 0 RWF."
	bodyRegMerchant    = "TxId: 73214484501. Your payment of 5,000 RWF to REG Hardware 12845 has been completed at 2024-05-16 14:00:00. Your new balance: 9,180 RWF. Fee was 0 RWF."
	bodyDStvMerchant   = "TxId: 73214484502. Your payment of 7,000 RWF to DStv Kigali Shop 55501 has been completed at 2024-05-16 15:00:00. Your new balance: 2,180 RWF. Fee was 0 RWF."
	bodyRegNoToken     = "*162*TxId:13913173278*S*Your payment of 2,500 RWF to REG with token  has been completed at 2024-05-16 16:00:00. Fee was 0 RWF. Your new balance: 6,680 RWF ."
	bodyBalanceOnly    = "Y'ello. Your new balance: 100,000 RWF. Thank you for using MTN MobileMoney."
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		body string
		want Match
	}{
		{
			name: "transfer_received",
			body: bodyReceived,
			want: Match{
				Template: "transfer_received", Category: models.CategoryMoneyTransfer, Direction: models.DirectionReceived,
				Amount: 2000, Name: "Jane Smith", Phone: "*********013", Reference: "76662021700",
			},
		},
		{
			name: "merchant_payment",
			body: bodyMerchant,
			want: Match{
				Template: "merchant_payment", Category: models.CategoryMerchantPayment, Direction: models.DirectionSent,
				Amount: 1000, Name: "Jane Smith", Code: "12845", Reference: "73214484437",
			},
		},
		{
			name: "transfer_sent",
			body: bodySent,
			want: Match{
				Template: "transfer_sent", Category: models.CategoryMoneyTransfer, Direction: models.DirectionSent,
				Amount: 10000, Fee: 100, Name: "Samuel Carter", Phone: "250791666666",
			},
		},
		{
			name: "bank_deposit",
			body: bodyBankDeposit,
			want: Match{
				Template: "bank_deposit", Category: models.CategoryBankTransfer, Direction: models.DirectionReceived,
				Amount: 40000, Name: "BANK OF KIGALI",
			},
		},
		{
			name: "bank_transfer",
			body: bodyBankTransfer,
			want: Match{
				Template: "bank_transfer", Category: models.CategoryBankTransfer, Direction: models.DirectionSent,
				Amount: 50000, Fee: 500, Name: "Bank of Kigali", Code: "00040-0695624-07",
			},
		},
		{
			name: "airtime",
			body: bodyAirtime,
			want: Match{
				Template: "airtime", Category: models.CategoryBundle, Direction: models.DirectionSent,
				BundleType: models.BundleTypeAirtime, Amount: 2000, Reference: "13913173274",
			},
		},
		{
			name: "data_bundle",
			body: bodyData,
			want: Match{
				Template: "data_bundle", Category: models.CategoryBundle, Direction: models.DirectionSent,
				BundleType: models.BundleTypeData, Amount: 500, Reference: "13913173275",
			},
		},
		{
			name: "data_bundle_debit",
			body: bodyDataDebit,
			want: Match{
				Template: "data_bundle_debit", Category: models.CategoryBundle, Direction: models.DirectionSent,
				BundleType: models.BundleTypeData, Amount: 600, Reference: "13913173276",
			},
		},
		{
			name: "utility",
			body: bodyCashPower,
			want: Match{
				Template: "utility", Category: models.CategoryUtility, Direction: models.DirectionSent,
				Amount: 3000, Name: "MTN Cash Power", Token: "12345-67890-12345", Reference: "13913173277",
			},
		},
		{
			name: "agent_withdrawal",
			body: bodyAgent,
			want: Match{
				Template: "agent_withdrawal", Category: models.CategoryAgent, Direction: models.DirectionSent,
				Amount: 20000, Fee: 350, Name: "Agent Sophia", Phone: "250790777777", Reference: "14098463509",
			},
		},
		{
			name: "third_party_payment",
			body: bodyThirdParty,
			want: Match{
				Template: "third_party_payment", Category: models.CategoryOther, Direction: models.DirectionSent,
				Amount: 12500, Name: "IREMBO LTD", Reference: "14098463600",
			},
		},
		{
			name: "merchant_name_starting_like_utility",
			body: bodyMerchantPrefix,
			want: Match{
				Template: "merchant_payment", Category: models.CategoryMerchantPayment, Direction: models.DirectionSent,
				Amount: 4500, Name: "Regina Shop", Code: "77120", Reference: "73214484500",
			},
		},
		{
			name: "merchant_name_starting_with_utility_provider",
			body: bodyRegMerchant,
			want: Match{
				Template: "merchant_payment", Category: models.CategoryMerchantPayment, Direction: models.DirectionSent,
				Amount: 5000, Name: "REG Hardware", Code: "12845", Reference: "73214484501",
			},
		},
		{
			name: "merchant_name_starting_with_tv_provider",
			body: bodyDStvMerchant,
			want: Match{
				Template: "merchant_payment", Category: models.CategoryMerchantPayment, Direction: models.DirectionSent,
				Amount: 7000, Name: "DStv Kigali Shop", Code: "55501", Reference: "73214484502",
			},
		},
		{
			name: "utility_with_empty_token",
			body: bodyRegNoToken,
			want: Match{
				Template: "utility", Category: models.CategoryUtility, Direction: models.DirectionSent,
				Amount: 2500, Name: "REG", Reference: "13913173278",
			},
		},
		{
			name: "balance_only_is_other",
			body: bodyBalanceOnly,
			want: Match{Category: models.CategoryOther, Direction: models.DirectionSent},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.body)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassify_UnrecognisedText(t *testing.T) {
	inputs := []string{
		"",
		"hello world",
		"RWF RWF RWF",
		"payment of RWF to",
		"You have received -500 RWF from (",
		strings.Repeat("9", 400) + " RWF transferred to X (1)",
		"\x00\xff\xfe invalid utf8",
	}

	for _, in := range inputs {
		require.NotPanics(t, func() {
			m := Classify(in)
			assert.True(t, m.Category.Valid())
		})
	}

	m := Classify("hello world")
	assert.Equal(t, models.CategoryOther, m.Category)
	assert.False(t, m.Recognized())
}

func TestClassify_OverflowAmountIsAbsent(t *testing.T) {
	body := strings.Repeat("9", 30) + " RWF transferred to Samuel Carter (250791666666)"
	m := Classify(body)
	assert.Equal(t, models.CategoryMoneyTransfer, m.Category)
	assert.Zero(t, m.Amount)
}

func TestParse(t *testing.T) {
	at := time.Date(2024, 5, 10, 21, 32, 32, 123456789, time.FixedZone("CAT", 2*3600))
	owner := "0781234567"

	t.Run("builds_typed_record", func(t *testing.T) {
		tx := Parse(models.RawMessage{Sender: "M-Money", Body: bodyMerchant, Timestamp: at}, owner)

		mp, ok := tx.(*models.MerchantPayment)
		require.True(t, ok, "expected *models.MerchantPayment, got %T", tx)
		assert.Equal(t, owner, mp.Phone)
		assert.Equal(t, int64(1000), mp.Amount)
		assert.Equal(t, "12845", mp.MerchantCode)
		assert.Equal(t, "73214484437", mp.Reference)
		assert.Equal(t, time.UTC, mp.Date.Location())
		assert.Equal(t, at.UnixMilli(), mp.Date.UnixMilli())
		assert.Zero(t, mp.Date.Nanosecond()%int(time.Millisecond))
	})

	t.Run("same_message_same_id", func(t *testing.T) {
		msg := models.RawMessage{Sender: "M-Money", Body: bodySent, Timestamp: at}
		assert.Equal(t, Parse(msg, owner).GetID(), Parse(msg, owner).GetID())
	})

	t.Run("different_owner_different_id", func(t *testing.T) {
		msg := models.RawMessage{Sender: "M-Money", Body: bodySent, Timestamp: at}
		assert.NotEqual(t, Parse(msg, "0781111111").GetID(), Parse(msg, "0782222222").GetID())
	})

	t.Run("different_timestamp_different_id", func(t *testing.T) {
		a := Parse(models.RawMessage{Sender: "M-Money", Body: bodySent, Timestamp: at}, owner)
		b := Parse(models.RawMessage{Sender: "M-Money", Body: bodySent, Timestamp: at.Add(time.Second)}, owner)
		assert.NotEqual(t, a.GetID(), b.GetID())
	})

	t.Run("other_keeps_raw_body", func(t *testing.T) {
		tx := Parse(models.RawMessage{Sender: "M-Money", Body: "unknown layout", Timestamp: at}, owner)
		other, ok := tx.(*models.OtherTransaction)
		require.True(t, ok)
		assert.Equal(t, "unknown layout", other.Body)
		assert.Equal(t, models.CategoryOther, other.Category())
	})

	t.Run("every_category_maps_to_its_variant", func(t *testing.T) {
		cases := map[string]models.Category{
			bodyReceived:     models.CategoryMoneyTransfer,
			bodyMerchant:     models.CategoryMerchantPayment,
			bodyData:         models.CategoryBundle,
			bodyBankTransfer: models.CategoryBankTransfer,
			bodyThirdParty:   models.CategoryOther,
			bodyAgent:        models.CategoryAgent,
			bodyCashPower:    models.CategoryUtility,
		}
		for body, want := range cases {
			tx := Parse(models.RawMessage{Sender: "M-Money", Body: body, Timestamp: at}, owner)
			assert.Equal(t, want, tx.Category(), body)
		}
	})

	t.Run("direction_carried_on_transfers", func(t *testing.T) {
		tx := Parse(models.RawMessage{Sender: "M-Money", Body: bodyReceived, Timestamp: at}, owner)
		assert.Equal(t, models.DirectionReceived, tx.GetDirection())

		tx = Parse(models.RawMessage{Sender: "M-Money", Body: bodyBankDeposit, Timestamp: at}, owner)
		assert.Equal(t, models.DirectionReceived, tx.GetDirection())
	})
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in     string
		want   int64
		wantOK bool
	}{
		{"21,705", 21705, true},
		{"1 000", 1000, true},
		{"0", 0, true},
		{"", 0, false},
		{",,,", 0, false},
		{"-500", 0, false},
		{"12a", 0, false},
		{"99999999999999999999", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := parseAmount(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
