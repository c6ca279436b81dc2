package service

import (
	"testing"

	"donation/config"
	"donation/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func newTestEmailService(cfg *config.EmailConfig) *EmailService {
	return NewEmailService(cfg, "Donation Transparency")
}

func TestGenerateIncomeNoticeBody(t *testing.T) {
	s := newTestEmailService(&config.EmailConfig{})
	in := &models.Income{
		ReceiptNumber: "R-001",
		Amount:        decimal.NewFromInt(500),
		ProjectName:   "Flood Relief",
		Date:          "2024-01-01",
		Notes:         "<b>thanks</b>",
	}

	body := s.generateIncomeNoticeBody(in)
	assert.Contains(t, body, "R-001")
	assert.Contains(t, body, "500.00")
	assert.Contains(t, body, "Flood Relief")
	assert.Contains(t, body, models.AnonymousDonor)
	assert.Contains(t, body, "2024-01-01")
	// 用户输入需转义
	assert.Contains(t, body, "&lt;b&gt;thanks&lt;/b&gt;")
	assert.NotContains(t, body, "%!")
}

func TestNotifyIncome_Disabled(t *testing.T) {
	// 未启用
	s := newTestEmailService(&config.EmailConfig{Enabled: false, NotifyTo: []string{"ops@example.com"}})
	assert.False(t, s.Enabled())
	assert.NoError(t, s.NotifyIncome(&models.Income{ReceiptNumber: "R-1"}))

	// 启用但没有收件人
	s = newTestEmailService(&config.EmailConfig{Enabled: true})
	assert.False(t, s.Enabled())
	assert.NoError(t, s.NotifyIncome(&models.Income{ReceiptNumber: "R-1"}))

	assert.False(t, NewEmailService(nil, "x").Enabled())
}
