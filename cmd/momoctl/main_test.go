package main

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"momopress/internal/models"
)

const backup = `<?xml version='1.0' encoding='UTF-8' standalone='yes' ?>
<smses count="3">
  <sms address="M-Money" date="1715376752000" type="1" body="TxId: 73214484437. Your payment of 5,000 RWF to Kigali Shop 12845 has been completed at 2024-05-10 21:32:32. Your new balance: 120,000 RWF. Fee was 0 RWF." />
  <sms address="M-Money" date="1715459687000" type="1" body="*165*S*20,000 RWF transferred to Samuel Carter (250791666666) from 36521838 at 2024-05-11 20:34:47 . Fee was: 100 RWF. New balance: 100,000 RWF." />
  <sms address="MTN" date="1715459700000" type="1" body="Buy a bundle today!" />
</smses>`

func writeBackup(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sms.xml")
	require.NoError(t, os.WriteFile(path, []byte(backup), 0o600))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestParseCmd(t *testing.T) {
	path := writeBackup(t)

	t.Run("csv", func(t *testing.T) {
		out, err := execute(t, "parse", path, "--phone", "0781234567")
		require.NoError(t, err)

		rows, err := csv.NewReader(bytes.NewBufferString(out)).ReadAll()
		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.Equal(t, "date", rows[0][0])
		// newest first
		assert.Equal(t, string(models.CategoryMoneyTransfer), rows[1][1])
		assert.Equal(t, "20000", rows[1][4])
		assert.Equal(t, string(models.CategoryMerchantPayment), rows[2][1])
	})

	t.Run("json", func(t *testing.T) {
		out, err := execute(t, "parse", path, "-f", "json")
		require.NoError(t, err)

		var entries []models.Entry
		require.NoError(t, json.Unmarshal([]byte(out), &entries))
		require.Len(t, entries, 2)
		assert.Equal(t, int64(5000), entries[1].Amount)
	})

	t.Run("unknown_format", func(t *testing.T) {
		_, err := execute(t, "parse", path, "-f", "xml")
		assert.Error(t, err)
	})

	t.Run("missing_file", func(t *testing.T) {
		_, err := execute(t, "parse", filepath.Join(t.TempDir(), "nope.xml"))
		assert.Error(t, err)
	})
}

func TestBalanceCmd(t *testing.T) {
	out, err := execute(t, "balance", writeBackup(t))
	require.NoError(t, err)
	assert.Contains(t, out, "100000 RWF")
}

func TestSyncCmd_RejectsBadInput(t *testing.T) {
	t.Run("invalid_phone", func(t *testing.T) {
		_, err := execute(t, "sync", "--phone", "12345")
		assert.ErrorContains(t, err, "invalid phone")
	})

	t.Run("exclusive_sources", func(t *testing.T) {
		_, err := execute(t, "sync", "--phone", "0781234567", "--dump", "a.xml", "--android", "b.db")
		assert.Error(t, err)
	})

	t.Run("phone_required", func(t *testing.T) {
		_, err := execute(t, "alerts")
		assert.Error(t, err)
	})
}
