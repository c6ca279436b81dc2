package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidDate(t *testing.T) {
	assert.True(t, ValidDate("2024-01-01"))
	assert.True(t, ValidDate("2024-02-29"))
	assert.False(t, ValidDate("2023-02-29"))
	assert.False(t, ValidDate("2024-1-1"))
	assert.False(t, ValidDate("2024-01-01 10:00:00"))
	assert.False(t, ValidDate(""))
}

func TestIncome_DisplayDonor(t *testing.T) {
	assert.Equal(t, AnonymousDonor, Income{}.DisplayDonor())
	assert.Equal(t, "Alice", Income{DonorName: "Alice"}.DisplayDonor())
}

func TestStats_JSONShape(t *testing.T) {
	s := Stats{
		TotalIncome:  decimal.NewFromInt(500),
		TotalExpense: decimal.NewFromInt(200),
		Balance:      decimal.NewFromInt(300),
		Projects: []ProjectStats{
			{ID: 1, Name: "Flood Relief", Income: decimal.NewFromInt(500), Expense: decimal.NewFromInt(200)},
		},
	}
	b, err := json.Marshal(s)
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &out))
	// 金额为 JSON 数字而不是字符串
	assert.Equal(t, float64(500), out["totalIncome"])
	assert.Equal(t, float64(200), out["totalExpense"])
	assert.Equal(t, float64(300), out["balance"])
	projects := out["projects"].([]interface{})
	require.Len(t, projects, 1)
	p := projects[0].(map[string]interface{})
	assert.Equal(t, "Flood Relief", p["name"])
	assert.Equal(t, float64(500), p["income"])
}

func TestProjectStats_Net(t *testing.T) {
	p := ProjectStats{Income: decimal.RequireFromString("10.50"), Expense: decimal.RequireFromString("12.25")}
	assert.True(t, p.Net().Equal(decimal.RequireFromString("-1.75")))
}

func TestAdmin_PasswordNotSerialized(t *testing.T) {
	b, err := json.Marshal(Admin{ID: 1, Username: "admin", Password: "hash"})
	require.NoError(t, err)
	assert.NotContains(t, string(b), "hash")
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "$1,234.50", FormatMoney(decimal.RequireFromString("1234.5"), "USD"))
	assert.Equal(t, "$0.00", FormatMoney(decimal.Zero, "USD"))
	assert.Equal(t, "-$300.00", FormatMoney(decimal.NewFromInt(-300), "USD"))
	// 未知币种
	assert.Equal(t, "12.30 XYZ", FormatMoney(decimal.RequireFromString("12.3"), "XYZ"))
}
