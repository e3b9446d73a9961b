package services

import (
	"database/sql"
	"fmt"
	"net/smtp"
	"os"
	"strings"

	"backend/models"

	"golang.org/x/net/html"
)

// EmailService sends supplier notifications over SMTP. Templates live in
// the email_templates table; a built-in default is used when no row of
// the requested type exists.
type EmailService struct {
	db *sql.DB
}

func NewEmailService(db *sql.DB) *EmailService {
	return &EmailService{db: db}
}

const (
	templateQuoteReceived = "quote_received"
	templateQuoteStatus   = "quote_status"
)

var defaultTemplates = map[string][2]string{
	templateQuoteReceived: {
		"Quote {{quote_number}} received",
		"<p>Hi {{recipient_name}},</p><p>Your quote <b>{{quote_number}}</b> for <b>{{asset_name}}</b> ({{project_name}}) was received. Quoted amount: {{quote_cost}}.</p>",
	},
	templateQuoteStatus: {
		"Quote {{quote_number}} {{quote_status}}",
		"<p>Hi {{recipient_name}},</p><p>Your quote <b>{{quote_number}}</b> for <b>{{asset_name}}</b> ({{project_name}}) is now <b>{{quote_status}}</b>.</p>",
	},
}

// SendQuoteReceived notifies the supplier that their submission landed.
func (es *EmailService) SendQuoteReceived(data models.EmailData) error {
	return es.sendTemplated(templateQuoteReceived, data)
}

// SendQuoteStatusChanged notifies the supplier of an accept/reject.
func (es *EmailService) SendQuoteStatusChanged(data models.EmailData) error {
	return es.sendTemplated(templateQuoteStatus, data)
}

func (es *EmailService) sendTemplated(templateType string, data models.EmailData) error {
	subject, body, err := es.loadTemplate(templateType)
	if err != nil {
		return fmt.Errorf("failed to load template %s: %v", templateType, err)
	}

	subject = substitute(subject, data)
	body = substitute(body, data)

	return es.send(data.RecipientEmail, subject, body)
}

// loadTemplate prefers a DB-managed template and falls back to the
// built-in default.
func (es *EmailService) loadTemplate(templateType string) (string, string, error) {
	if es.db != nil {
		var subject, body string
		err := es.db.QueryRow(`
			SELECT subject, body FROM email_templates
			WHERE template_type = $1 AND is_default = true
		`, templateType).Scan(&subject, &body)
		if err == nil {
			return subject, body, nil
		}
		if err != sql.ErrNoRows {
			return "", "", err
		}
	}

	def, ok := defaultTemplates[templateType]
	if !ok {
		return "", "", fmt.Errorf("unknown template type %s", templateType)
	}
	return def[0], def[1], nil
}

func substitute(template string, data models.EmailData) string {
	replacer := strings.NewReplacer(
		"{{recipient_name}}", data.RecipientName,
		"{{supplier_name}}", data.SupplierName,
		"{{asset_name}}", data.AssetName,
		"{{project_name}}", data.ProjectName,
		"{{quote_number}}", data.QuoteNumber,
		"{{quote_cost}}", fmt.Sprintf("%.2f", data.QuoteCost),
		"{{quote_status}}", data.QuoteStatus,
	)
	return replacer.Replace(template)
}

func (es *EmailService) send(to, subject, htmlBody string) error {
	host := os.Getenv("SMTP_HOST")
	port := os.Getenv("SMTP_PORT")
	from := os.Getenv("SMTP_FROM")
	password := os.Getenv("SMTP_PASSWORD")
	if host == "" || from == "" {
		return fmt.Errorf("SMTP is not configured")
	}
	if port == "" {
		port = "587"
	}

	textBody := convertHTMLToText(htmlBody)

	msg := strings.Builder{}
	msg.WriteString(fmt.Sprintf("From: %s\r\n", from))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", to))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: multipart/alternative; boundary=qb\r\n\r\n")
	msg.WriteString("--qb\r\nContent-Type: text/plain; charset=UTF-8\r\n\r\n")
	msg.WriteString(textBody + "\r\n")
	msg.WriteString("--qb\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n")
	msg.WriteString(htmlBody + "\r\n")
	msg.WriteString("--qb--\r\n")

	auth := smtp.PlainAuth("", from, password, host)
	return smtp.SendMail(host+":"+port, auth, from, []string{to}, []byte(msg.String()))
}

// convertHTMLToText strips markup for the plain-text alternative part.
func convertHTMLToText(htmlContent string) string {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return htmlContent
	}

	var text strings.Builder
	var extractText func(*html.Node)
	extractText = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			text.WriteString(n.Data)
		case html.ElementNode:
			switch n.Data {
			case "p", "div", "br", "h1", "h2", "h3":
				text.WriteString("\n")
			case "li":
				text.WriteString("- ")
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			extractText(child)
		}
	}
	extractText(doc)

	result := text.String()
	result = strings.ReplaceAll(result, "\n\n\n", "\n\n")
	return strings.TrimSpace(result)
}
