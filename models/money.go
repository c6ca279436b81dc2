package models

import (
	"time"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DateLayout 日期格式，按字符串排序即按日期排序
const DateLayout = "2006-01-02"

func init() {
	// 金额以 JSON 数字输出，与前端约定保持一致
	decimal.MarshalJSONWithoutQuotes = true
}

// MaxAmount 金额上限，对应 decimal(12,2) 列
var MaxAmount = decimal.New(1, 10)

// ValidDate 检查是否为合法的 YYYY-MM-DD 日期
func ValidDate(s string) bool {
	if len(s) != len(DateLayout) {
		return false
	}
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// FormatMoney 按币种格式化金额，如 USD 1234.5 -> $1,234.50；未知币种保留两位小数
func FormatMoney(amount decimal.Decimal, currency string) string {
	cur := money.GetCurrency(currency)
	if cur == nil {
		return amount.StringFixed(2) + " " + currency
	}
	minor := amount.Shift(int32(cur.Fraction)).Round(0)
	return money.New(minor.IntPart(), cur.Code).Display()
}
