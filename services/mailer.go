package services

import (
	"fmt"
	"html"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/yeremiapane/helpdesk-app/models"
	"github.com/yeremiapane/helpdesk-app/utils"
	"gopkg.in/gomail.v2"
)

// Mailer sends the ticket-creation email to the helpdesk inbox.
// Delivery is fire and forget: the HTTP response never waits on SMTP
// and failures are only logged.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
	to     string
}

// NewMailerFromEnv returns nil when SMTP_HOST is unset, which disables
// outbound mail entirely.
func NewMailerFromEnv() *Mailer {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		return nil
	}
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		port = 587
	}
	user := os.Getenv("SMTP_USER")
	pass := os.Getenv("SMTP_PASSWORD")

	from := os.Getenv("HELPDESK_MAIL_FROM")
	if from == "" {
		from = user
	}
	to := os.Getenv("HELPDESK_MAIL_TO")
	if to == "" {
		to = from
	}

	return &Mailer{
		dialer: gomail.NewDialer(host, port, user, pass),
		from:   from,
		to:     to,
	}
}

// SendTicketCreated emails the new ticket summary with the customer's
// details and the uploaded files attached.
func (m *Mailer) SendTicketCreated(ticket *models.Ticket, user *models.User, groupName string, attachments []models.Attachment) {
	if m == nil {
		return
	}

	location := "-"
	if user.Location != nil && *user.Location != "" {
		location = *user.Location
	}
	if groupName == "" {
		groupName = "-"
	}

	formattedDescription := strings.ReplaceAll(html.EscapeString(ticket.Description), "\n", "<br>")
	body := fmt.Sprintf(`<h2>New Ticket Created</h2>
<p>%s</p>
<p><strong>Priority:</strong> %s</p>
<p><strong>Category:</strong> %s</p>
<p><strong>Tags:</strong> %s</p>
<hr />
<h3>Customer Information</h3>
<p><strong>Name:</strong> %s</p>
<p><strong>Email:</strong> %s</p>
<p><strong>Role:</strong> %s</p>
<p><strong>Location:</strong> %s</p>
<p><strong>Group Name:</strong> %s</p>`,
		formattedDescription,
		ticket.Priority,
		ticket.Category,
		html.EscapeString(strings.Join(ticket.TagList(), ", ")),
		html.EscapeString(user.FullName()),
		user.Email,
		user.Role,
		html.EscapeString(location),
		html.EscapeString(groupName),
	)

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", m.to)
	msg.SetHeader("Subject", fmt.Sprintf("%s (%s)", ticket.Title, ticket.TicketNumber))
	msg.SetBody("text/html", body)

	for _, att := range attachments {
		data := att.FileData
		msg.Attach(att.OriginalName, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(data)
			return err
		}))
	}

	go func() {
		if err := m.dialer.DialAndSend(msg); err != nil {
			utils.ErrorLogger.Printf("Error sending ticket creation email: %v", err)
			return
		}
		utils.InfoLogger.Printf("Ticket creation email sent for %s", ticket.TicketNumber)
	}()
}
