package services

import (
	"fmt"
	"sync"

	"github.com/MonkyMars/gecho"
	"github.com/resend/resend-go/v3"

	"kubwa_closet_server/structs"
	"kubwa_closet_server/structs/tables"
)

var (
	emailClient     *resend.Client
	emailClientOnce = sync.Once{}
)

type EmailService struct {
	logger *gecho.Logger
	cfg    *structs.Config
	client *resend.Client
}

func NewEmailService(logger *gecho.Logger, cfg *structs.Config) *EmailService {
	return &EmailService{
		logger: logger,
		cfg:    cfg,
		client: getEmailClient(cfg.Email.ApiKey),
	}
}

func getEmailClient(apiKey string) *resend.Client {
	emailClientOnce.Do(func() {
		emailClient = resend.NewClient(apiKey)
	})
	return emailClient
}

func (es *EmailService) SendEmail(to []string, subject string, body string) error {
	params := &resend.SendEmailRequest{
		From:    es.cfg.Email.From,
		To:      to,
		Html:    body,
		Subject: subject,
	}

	_, err := es.client.Emails.Send(params)
	if err != nil {
		es.logger.Error("Failed to send email", gecho.Field("error", err), gecho.Field("to", to))
		return err
	}

	return nil
}

// SendLowStockAlert notifies the shop owner that a sale has dropped a
// product to remaining units. Callers fire this in a goroutine; a
// delivery failure must never fail the sale itself.
func (es *EmailService) SendLowStockAlert(product *tables.Product, remaining int) {
	owner := es.cfg.Email.OwnerAddress
	if owner == "" || es.cfg.Email.ApiKey == "" {
		es.logger.Debug("Low stock alert skipped, email not configured",
			gecho.Field("product_id", product.ID),
		)
		return
	}

	subject := fmt.Sprintf("Low stock: %s (%d left)", product.Name, remaining)
	body := fmt.Sprintf(`
		<p>Stock for <strong>%s</strong> (%s) has dropped to <strong>%d</strong>.</p>
		<p>Brand: %s, Color: %s, Size: %s</p>
		<p>Restock it from the admin dashboard when new supply arrives.</p>`,
		product.Name, product.Category, remaining,
		product.Brand, product.Color, product.Size,
	)

	if err := es.SendEmail([]string{owner}, subject, body); err != nil {
		es.logger.Warn("Failed to send low stock alert",
			gecho.Field("error", err),
			gecho.Field("product_id", product.ID),
		)
		return
	}

	es.logger.Info("Low stock alert sent",
		gecho.Field("product_id", product.ID),
		gecho.Field("remaining", remaining),
	)
}
