package email

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	sestypes "github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"github.com/vampconnoisseur/fabels/models"
)

// SESv2SendEmailAPI allows sending transactional emails.
type SESv2SendEmailAPI interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// Sender renders and sends the storefront's transactional emails.
type Sender struct {
	api  SESv2SendEmailAPI
	from string
}

func NewSender(api SESv2SendEmailAPI, from string) *Sender {
	return &Sender{api: api, from: from}
}

func (s *Sender) send(ctx context.Context, to, subject, htmlBody string) error {
	_, err := s.api.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(s.from),
		Destination: &sestypes.Destination{
			ToAddresses: []string{to},
		},
		Content: &sestypes.EmailContent{
			Simple: &sestypes.Message{
				Subject: &sestypes.Content{Data: aws.String(subject)},
				Body: &sestypes.Body{
					Html: &sestypes.Content{Data: aws.String(htmlBody)},
				},
			},
		},
	})
	return err
}

// SendLoginLink emails a magic sign-in link.
func (s *Sender) SendLoginLink(ctx context.Context, to, url string) error {
	var b strings.Builder
	b.WriteString("<h2>Sign in to Fabels</h2>")
	fmt.Fprintf(&b, "<p>Hello %s,</p>", to)
	fmt.Fprintf(&b, `<p><a href="%s">Click here to sign in</a>. This link expires in 15 minutes.</p>`, url)
	b.WriteString("<p>If you did not request this email, you can safely ignore it.</p>")

	return s.send(ctx, to, "Your Fabels Login Link", b.String())
}

// SendOrderConfirmation emails the receipt for a paid transaction.
func (s *Sender) SendOrderConfirmation(ctx context.Context, to string, items []models.TransactionItem, total float64) error {
	var b strings.Builder
	b.WriteString("<h2>Thank you for your order!</h2>")
	fmt.Fprintf(&b, "<p>Hello %s, your books are now available in your library.</p>", to)
	b.WriteString("<ul>")
	for _, item := range items {
		fmt.Fprintf(&b, "<li>%s &mdash; $%.2f</li>", item.BookTitle, item.BookPrice)
	}
	b.WriteString("</ul>")
	fmt.Fprintf(&b, "<p><strong>Total: $%.2f</strong></p>", total)

	return s.send(ctx, to, "Your Fabels Order Confirmation", b.String())
}
