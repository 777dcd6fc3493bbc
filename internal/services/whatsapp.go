package services

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/example/cashwave/internal/models"
)

// WhatsAppService renders outbound order messages and builds wa.me deep
// links. Rendering is pure: the same order snapshot always produces the
// same text. Delivery is entirely out of band: the link is handed to
// the client to open, nothing is read back, and no part of the order
// pipeline depends on the message being seen.
type WhatsAppService struct {
	storeName       string
	supportContact  string
	paymentAccounts []string
}

// NewWhatsAppService constructs the message renderer.
func NewWhatsAppService(storeName, supportContact string, paymentAccounts []string) *WhatsAppService {
	return &WhatsAppService{
		storeName:       storeName,
		supportContact:  supportContact,
		paymentAccounts: paymentAccounts,
	}
}

// OrderMessage renders the itemized order summary sent to the buyer
// after checkout, including payment instructions.
func (s *WhatsAppService) OrderMessage(order *models.Order) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Hello %s,\n\n", firstName(order.UserName))
	fmt.Fprintf(&b, "Thank you for your order at %s!\n", s.storeName)
	fmt.Fprintf(&b, "Order ID: %s\n", order.ID)
	fmt.Fprintf(&b, "Date: %s\n\n", order.CreatedAt.Format("02 Jan 2006"))
	b.WriteString("Items Ordered:\n")

	for i, item := range order.Items {
		fmt.Fprintf(&b, "%d. %s - $%.2f x %d = $%.2f\n",
			i+1, item.Title, item.UnitPrice, item.Quantity, item.LineTotal)
	}

	fmt.Fprintf(&b, "\nTotal: $%.2f\n\n", order.Total)
	b.WriteString("Payment Method: WhatsApp Confirmation\n\n")

	if len(s.paymentAccounts) > 0 {
		b.WriteString("Please send payment to one of these:\n")
		for _, account := range s.paymentAccounts {
			fmt.Fprintf(&b, "- %s\n", account)
		}
		b.WriteString("\n")
	}

	b.WriteString("After payment, please send:\n")
	b.WriteString("1. Transaction ID\n")
	b.WriteString("2. Payment Method\n")
	b.WriteString("3. Sender Phone Number\n\n")
	b.WriteString("Once verified, products will be added to your account automatically!\n\n")
	fmt.Fprintf(&b, "Thank you,\n%s Team", s.storeName)

	return b.String()
}

// ConfirmationMessage renders the note sent to the buyer after an admin
// confirms payment and the items land in their account.
func (s *WhatsAppService) ConfirmationMessage(order *models.Order) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Hello %s,\n\n", firstName(order.UserName))
	fmt.Fprintf(&b, "Your order #%s has been confirmed!\n\n", order.ID)
	b.WriteString("All products have been added to your account.\n")
	b.WriteString("You can now download them from the \"My Purchases\" section.\n\n")
	fmt.Fprintf(&b, "Thank you for shopping with %s!\n", s.storeName)
	b.WriteString("For any issues, contact us on WhatsApp.\n\n")
	fmt.Fprintf(&b, "Best regards,\n%s Team", s.storeName)

	return b.String()
}

// DeepLink builds a wa.me URL pre-filled with the given text.
func (s *WhatsAppService) DeepLink(contact, text string) string {
	return fmt.Sprintf("https://wa.me/%s?text=%s", contact, url.QueryEscape(text))
}

// SupportLink builds a deep link to the store's support contact, or ""
// when no support contact is configured.
func (s *WhatsAppService) SupportLink() string {
	if s.supportContact == "" {
		return ""
	}
	return s.DeepLink(s.supportContact, fmt.Sprintf("Hello %s Support, I need help with:", s.storeName))
}

func firstName(fullName string) string {
	if i := strings.IndexByte(fullName, ' '); i > 0 {
		return fullName[:i]
	}
	return fullName
}
