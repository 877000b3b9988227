package services

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"gxas-memberhub/internal/config"
)

// NotificationService sends email notifications. Delivery is always
// best-effort: callers fire and forget, failures are logged and never
// propagate into the request that triggered them.
type NotificationService struct {
	cfg     config.SMTPConfig
	devMode bool
	enabled bool
}

// NewNotificationService creates a new notification service. Without an
// SMTP host every send becomes a no-op.
func NewNotificationService(cfg *config.Config) *NotificationService {
	return &NotificationService{
		cfg:     cfg.SMTP,
		devMode: cfg.IsDev(),
		enabled: cfg.SMTP.Host != "",
	}
}

// IsEnabled checks if notification is enabled
func (s *NotificationService) IsEnabled() bool {
	return s.enabled
}

// sendMail delivers a single HTML mail
func (s *NotificationService) sendMail(to, subject, htmlBody string) error {
	if !s.enabled {
		return nil
	}

	// Dev mode logs instead of dialing out, so a missing mail server never
	// blocks local work.
	if s.devMode {
		log.Printf("📧 [dev] mail to=%s subject=%q body=%.80s...", to, subject, htmlBody)
		return nil
	}

	msg := strings.Join([]string{
		"From: " + s.cfg.From,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=UTF-8",
		"",
		htmlBody,
	}, "\r\n")

	addr := s.cfg.Host + ":" + s.cfg.Port
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)

	return smtp.SendMail(addr, auth, s.cfg.From, []string{to}, []byte(msg))
}

// notify runs a send in the background and logs the outcome
func (s *NotificationService) notify(to, subject, htmlBody string) {
	if !s.enabled {
		return
	}
	go func() {
		if err := s.sendMail(to, subject, htmlBody); err != nil {
			log.Printf("⚠️ Failed to send mail to %s: %v", to, err)
			return
		}
		log.Printf("📧 Mail sent to %s: %s", to, subject)
	}()
}

// NotifyApplicationReceived confirms a membership application was received
func (s *NotificationService) NotifyApplicationReceived(toEmail, applicantName string) {
	body := fmt.Sprintf(`
		<h2>尊敬的%s：</h2>
		<p>感谢您申请加入广西自动化学会。我们已经收到您的申请，并将尽快进行审核。</p>
		<p>审核结果将通过邮件通知您，请保持邮箱畅通。如有疑问，请联系学会秘书处。</p>
		<p>广西自动化学会</p>`, applicantName)

	s.notify(toEmail, "广西自动化学会 - 入会申请已收到", body)
}

// NotifyApplicationResult reports a review decision to the applicant
func (s *NotificationService) NotifyApplicationResult(toEmail, applicantName string, approved bool, reviewNotes string) {
	subject := "广西自动化学会 - 入会申请未通过"
	verdict := "很遗憾，您的申请未通过审核。"
	followUp := "<p>感谢您对广西自动化学会的关注，希望未来有机会再次收到您的申请。</p>"
	if approved {
		subject = "广西自动化学会 - 入会申请已通过"
		verdict = "恭喜！您的申请已通过审核。"
		followUp = "<p>接下来，请完成会员注册和会费缴纳手续。如有疑问，请联系学会秘书处。</p>"
	}

	notes := ""
	if reviewNotes != "" {
		notes = fmt.Sprintf("<p>审核意见：%s</p>", reviewNotes)
	}

	body := fmt.Sprintf(`
		<h2>尊敬的%s：</h2>
		<p>您的广西自动化学会入会申请已完成审核，结果如下：</p>
		<p><strong>%s</strong></p>
		%s%s
		<p>广西自动化学会</p>`, applicantName, verdict, notes, followUp)

	s.notify(toEmail, subject, body)
}

// NotifyFeeReminder reminds a member to renew an expired or expiring fee
func (s *NotificationService) NotifyFeeReminder(toEmail, memberName string) {
	body := fmt.Sprintf(`
		<h2>尊敬的%s：</h2>
		<p>您的会员资格已到期或即将到期，请及时缴纳会费以保持会员资格的有效性。</p>
		<p>感谢您对广西自动化学会的支持！</p>
		<p>广西自动化学会</p>`, memberName)

	s.notify(toEmail, "广西自动化学会 - 会费缴纳提醒", body)
}

// NotifyMemberMessage mirrors an in-app message to the member's mailbox
func (s *NotificationService) NotifyMemberMessage(toEmail, memberName, subject, content string) {
	body := fmt.Sprintf(`
		<h2>尊敬的%s：</h2>
		<div style="margin: 20px 0; padding: 15px; background-color: #f9f9f9; border-left: 4px solid #4CAF50;">
		%s
		</div>
		<p>此邮件为系统自动发送，请不要直接回复。</p>
		<p>广西自动化学会</p>`, memberName, content)

	s.notify(toEmail, "广西自动化学会 - "+subject, body)
}
