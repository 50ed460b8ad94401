package services

import (
	"fmt"
	"log"

	"guaravita-backend/models"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// NotificationService emails the admin when something needs their
// attention. Best-effort: callers fire it in a goroutine and no failure
// propagates back into the ledger.
type NotificationService struct {
	apiKey     string
	fromEmail  string
	adminEmail string
	appName    string
}

func NewNotificationService(apiKey, fromEmail, adminEmail, appName string) *NotificationService {
	return &NotificationService{
		apiKey:     apiKey,
		fromEmail:  fromEmail,
		adminEmail: adminEmail,
		appName:    appName,
	}
}

// NotifyRequestCreated tells the admin a debtor claims to have paid.
func (ns *NotificationService) NotifyRequestCreated(request models.PaymentRequest) {
	subject := fmt.Sprintf("%s diz que pagou uma Guaravita", request.DebtorName)
	htmlBody := fmt.Sprintf(
		"<p><strong>%s</strong> pediu baixa de uma dívida.</p><p>Entre no painel admin para aprovar ou rejeitar.</p>",
		request.DebtorName,
	)
	ns.sendEmail(subject, htmlBody)
}

func (ns *NotificationService) sendEmail(subject, htmlBody string) {
	if ns.apiKey == "" || ns.adminEmail == "" {
		log.Printf("⚠️  SendGrid not configured, skipping email %q", subject)
		return
	}

	from := mail.NewEmail(ns.appName, ns.fromEmail)
	to := mail.NewEmail("Admin", ns.adminEmail)
	message := mail.NewSingleEmail(from, subject, to, "", htmlBody)

	client := sendgrid.NewSendClient(ns.apiKey)
	resp, err := client.Send(message)
	if err != nil {
		log.Printf("❌ Email send error: %v", err)
		return
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		log.Printf("✅ Email sent to %s", ns.adminEmail)
	} else {
		log.Printf("⚠️  SendGrid returned status: %d", resp.StatusCode)
	}
}
