package service

import (
	"fmt"

	"relieffund/config"

	"gopkg.in/gomail.v2"
)

// EmailService 邮件服务
type EmailService struct {
	cfg *config.EmailConfig
}

// NewEmailService 创建邮件服务
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

// sendEmail 发送邮件
func (s *EmailService) sendEmail(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.cfg.Username, s.cfg.From))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("发送邮件失败: %w", err)
	}

	return nil
}

// SendBeneficiaryApprovedEmail 发送受助人审批通过通知
func (s *EmailService) SendBeneficiaryApprovedEmail(toEmail, fullName, campaignName, orgName string) error {
	if !s.cfg.Enabled {
		return fmt.Errorf("邮件服务未启用，请配置 EMAIL_ENABLED=true")
	}

	subject := "【救助金管理系统】援助申请已批准"
	body := s.generateApprovedEmailBody(fullName, campaignName, orgName)

	return s.sendEmail(toEmail, subject, body)
}

// generateApprovedEmailBody 生成审批通过邮件内容
func (s *EmailService) generateApprovedEmailBody(fullName, campaignName, orgName string) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: 'Microsoft YaHei', Arial, sans-serif; background: #f5f5f5; margin: 0; padding: 20px; }
        .container { max-width: 600px; margin: 0 auto; background: #fff; border-radius: 12px; overflow: hidden; box-shadow: 0 4px 20px rgba(0,0,0,0.1); }
        .header { background: linear-gradient(135deg, #10b981, #059669); color: white; padding: 30px; text-align: center; }
        .header h1 { margin: 0; font-size: 24px; }
        .content { padding: 40px 30px; }
        .content p { color: #333; line-height: 1.8; margin: 0 0 20px; }
        .highlight { background: #f0fdf4; border-left: 4px solid #10b981; padding: 15px; margin: 20px 0; border-radius: 4px; }
        .footer { background: #f8f9fa; padding: 20px 30px; text-align: center; color: #6c757d; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>🤝 救助金管理系统</h1>
        </div>
        <div class="content">
            <p>尊敬的 <strong>%s</strong>，您好！</p>
            <p>您在援助项目 <strong>%s</strong> 中的受助申请已由 <strong>%s</strong> 审核通过。</p>
            <div class="highlight">
                <p>现在您可以登录 App 查看各类别可用额度，并在已授权商户处消费。</p>
            </div>
        </div>
        <div class="footer">
            <p>此邮件由系统自动发送，请勿回复</p>
            <p>© 救助金管理系统</p>
        </div>
    </div>
</body>
</html>
`, fullName, campaignName, orgName)
}

// SendDonationReceiptEmail 发送捐赠回执
func (s *EmailService) SendDonationReceiptEmail(toEmail, username, campaignName string, amount float64) error {
	if !s.cfg.Enabled {
		return fmt.Errorf("邮件服务未启用，请配置 EMAIL_ENABLED=true")
	}

	subject := "【救助金管理系统】感谢您的捐赠"
	body := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: 'Microsoft YaHei', Arial, sans-serif; padding: 20px;">
    <h2>💝 感谢您的捐赠</h2>
    <p>尊敬的 <strong>%s</strong>，您好！</p>
    <p>我们已收到您向援助项目 <strong>%s</strong> 的捐赠 <strong>%.2f</strong> 元。</p>
    <p>每一份善意都会被妥善使用。</p>
    <p style="color: #666;">—— 救助金管理系统</p>
</body>
</html>
`, username, campaignName, amount)

	return s.sendEmail(toEmail, subject, body)
}

// SendPasswordResetEmail 发送密码重置邮件
func (s *EmailService) SendPasswordResetEmail(toEmail, username, resetLink string) error {
	if !s.cfg.Enabled {
		return fmt.Errorf("邮件服务未启用，请配置 EMAIL_ENABLED=true")
	}

	subject := "【救助金管理系统】密码重置"
	body := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: 'Microsoft YaHei', Arial, sans-serif; padding: 20px;">
    <h2>🔑 密码重置</h2>
    <p>尊敬的 <strong>%s</strong>，您好！</p>
    <p>我们收到了您的密码重置请求，请点击以下链接重置密码：</p>
    <p><a href="%s">%s</a></p>
    <p>⚠️ 此链接有效期为 30 分钟。如果您没有请求重置密码，请忽略此邮件。</p>
    <p style="color: #666;">—— 救助金管理系统</p>
</body>
</html>
`, username, resetLink, resetLink)

	return s.sendEmail(toEmail, subject, body)
}

// SendTestEmail 发送测试邮件
func (s *EmailService) SendTestEmail(toEmail string) error {
	if !s.cfg.Enabled {
		return fmt.Errorf("邮件服务未启用")
	}

	subject := "【救助金管理系统】邮件配置测试"
	body := `
<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; padding: 20px;">
    <h2>✅ 邮件配置成功</h2>
    <p>如果您收到这封邮件，说明邮件服务配置正确。</p>
    <p style="color: #666;">—— 救助金管理系统</p>
</body>
</html>
`
	return s.sendEmail(toEmail, subject, body)
}
