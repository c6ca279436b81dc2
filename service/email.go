package service

import (
	"fmt"
	"html"

	"donation/config"
	"donation/models"

	"gopkg.in/gomail.v2"
)

// EmailService 邮件通知服务
type EmailService struct {
	cfg        *config.EmailConfig
	ledgerName string
}

// NewEmailService 创建邮件服务
func NewEmailService(cfg *config.EmailConfig, ledgerName string) *EmailService {
	return &EmailService{cfg: cfg, ledgerName: ledgerName}
}

// Enabled 是否需要发送通知
func (s *EmailService) Enabled() bool {
	return s.cfg != nil && s.cfg.Enabled && len(s.cfg.NotifyTo) > 0
}

// NotifyIncome 新增捐赠后通知配置的收件人，未启用时直接返回
func (s *EmailService) NotifyIncome(in *models.Income) error {
	if !s.Enabled() {
		return nil
	}
	subject := fmt.Sprintf("【%s】新增捐赠 %s", s.ledgerName, in.ReceiptNumber)
	return s.sendEmail(s.cfg.NotifyTo, subject, s.generateIncomeNoticeBody(in))
}

// generateIncomeNoticeBody 生成捐赠通知邮件内容
func (s *EmailService) generateIncomeNoticeBody(in *models.Income) string {
	notes := in.Notes
	if notes == "" {
		notes = "-"
	}
	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: 'Microsoft YaHei', Arial, sans-serif; background: #f5f5f5; margin: 0; padding: 20px; }
        .container { max-width: 600px; margin: 0 auto; background: #fff; border-radius: 12px; overflow: hidden; box-shadow: 0 4px 20px rgba(0,0,0,0.1); }
        .header { background: linear-gradient(135deg, #10b981, #059669); color: white; padding: 24px; text-align: center; }
        .header h1 { margin: 0; font-size: 22px; }
        .content { padding: 30px; }
        table { width: 100%%; border-collapse: collapse; }
        td { padding: 10px; border-bottom: 1px solid #eee; color: #333; }
        td.label { color: #6c757d; width: 35%%; }
        .amount { font-size: 20px; font-weight: bold; color: #059669; }
        .footer { background: #f8f9fa; padding: 16px 30px; text-align: center; color: #6c757d; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>%s</h1>
        </div>
        <div class="content">
            <table>
                <tr><td class="label">收据编号</td><td>%s</td></tr>
                <tr><td class="label">金额</td><td class="amount">%s</td></tr>
                <tr><td class="label">项目</td><td>%s</td></tr>
                <tr><td class="label">捐赠人</td><td>%s</td></tr>
                <tr><td class="label">日期</td><td>%s</td></tr>
                <tr><td class="label">备注</td><td>%s</td></tr>
            </table>
        </div>
        <div class="footer">
            <p>此邮件由系统自动发送，请勿回复</p>
        </div>
    </div>
</body>
</html>
`,
		html.EscapeString(s.ledgerName),
		html.EscapeString(in.ReceiptNumber),
		in.Amount.StringFixed(2),
		html.EscapeString(in.ProjectName),
		html.EscapeString(in.DisplayDonor()),
		html.EscapeString(in.Date),
		html.EscapeString(notes),
	)
}

// sendEmail 发送邮件
func (s *EmailService) sendEmail(to []string, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.cfg.Username, s.cfg.From))
	m.SetHeader("To", to...)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("发送邮件失败: %w", err)
	}

	return nil
}
