package mailer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/gomail.v2"

	"github.com/edison-energies/catalogue/internal/models"
)

// Mailer sends the purchase-request notification over SMTP. It satisfies the
// service.Notifier interface; delivery failures are the caller's warning to
// report, not to retry.
type Mailer struct {
	dialer    *gomail.Dialer
	from      string
	to        []string
	uploadDir string
}

func New(host string, port int, user, password, from string, to []string, uploadDir string) *Mailer {
	return &Mailer{
		dialer:    gomail.NewDialer(host, port, user, password),
		from:      from,
		to:        to,
		uploadDir: uploadDir,
	}
}

func (m *Mailer) NotifyDA(_ context.Context, req *models.PurchaseRequest) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", m.to...)
	msg.SetHeader("Subject", fmt.Sprintf("Demande d'achat %s - %s", req.DANumber, req.Site))
	msg.SetBody("text/plain", summary(req))

	if req.AttachmentFilename != "" {
		path := filepath.Join(m.uploadDir, req.AttachmentFilename)
		if _, err := os.Stat(path); err == nil {
			msg.Attach(path)
		}
	}

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("sending notification mail: %w", err)
	}
	return nil
}

func summary(req *models.PurchaseRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Demande d'achat %s\n", req.DANumber)
	fmt.Fprintf(&b, "Demandeur: %s <%s>\n", req.UserName, req.UserEmail)
	fmt.Fprintf(&b, "Site: %s\n\n", req.Site)

	var total float64
	for _, a := range req.Articles {
		line := float64(a.Quantity) * a.Price
		total += line
		fmt.Fprintf(&b, "- %s  %s  x%d %s  %.2f€\n", a.Reference, a.Designation, a.Quantity, a.Unit, line)
	}
	fmt.Fprintf(&b, "\nTotal estimé: %.2f€\n", total)

	if req.Comments != "" {
		fmt.Fprintf(&b, "\nCommentaires: %s\n", req.Comments)
	}
	return b.String()
}
