package catering

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/vasiliy-maslov/catering-service/internal/money"
	"github.com/vasiliy-maslov/catering-service/internal/square"
)

var additionalNotes = []string{
	"This is a draft invoice for your catering event",
	"Final pricing for quote-required services will be provided separately",
	"Please review all details and contact us with any questions",
	"Payment is due 30 days from invoice date",
}

// SelectionSummary renders the plain-text invoice description. Line items are
// grouped by their names: base package, beverages, quote-required services
// and everything else priced as entrées.
func SelectionSummary(items []square.LineItem, guestCount int, c ContactInfo) string {
	var b strings.Builder

	b.WriteString("CATERING EVENT DETAILS\n")
	b.WriteString("================================\n\n")

	section(&b, "EVENT INFORMATION")
	fmt.Fprintf(&b, "Date: %s\n", LongDate(c.EventDate))
	fmt.Fprintf(&b, "Time: %s\n", orDefault(c.Time, "TBD"))
	fmt.Fprintf(&b, "Location: %s\n", orDefault(c.Location, "TBD"))
	fmt.Fprintf(&b, "Guest Count: %d guests\n", guestCount)
	fmt.Fprintf(&b, "Delivery Method: %s\n\n", capitalize(orDefault(c.DeliveryMethod, "TBD")))

	var base, entrees, beverages, quotes []string
	for _, it := range items {
		amount := unitCents(it)
		switch {
		case strings.Contains(it.Name, "Base Package"):
			base = append(base, fmt.Sprintf("%s - %s/guest", it.Name, money.Format(amount)))
		case strings.Contains(it.Name, "Quote Required"):
			quotes = append(quotes, strings.TrimSuffix(it.Name, quoteRequiredSuffix)+" - Quote required")
		case strings.Contains(it.Name, "Beverage"):
			beverages = append(beverages, fmt.Sprintf("%s - %s/guest", it.Name, money.Format(amount)))
		case amount > 0:
			entrees = append(entrees, fmt.Sprintf("%s - %s%s", it.Name, money.Format(amount), unitSuffix(it)))
		}
	}
	if len(base) == 0 {
		base = append(base, "Package details - "+money.Format(0)+"/guest")
	}

	section(&b, "SELECTED SERVICES")
	bullets(&b, "BASE PACKAGE:", base)
	bullets(&b, "ENTRÉES:", entrees)
	bullets(&b, "BEVERAGES:", beverages)
	bullets(&b, "QUOTE REQUIRED:", quotes)

	section(&b, "CONTACT INFORMATION")
	fmt.Fprintf(&b, "Name: %s\n", orDefault(c.FullName(), "Guest"))
	if c.CompanyName != "" {
		fmt.Fprintf(&b, "Company: %s\n", c.CompanyName)
	}
	fmt.Fprintf(&b, "Email: %s\n", orDefault(c.Email, "Not provided"))
	fmt.Fprintf(&b, "Phone: %s\n\n", orDefault(c.Phone, "Not provided"))

	if s := strings.TrimSpace(c.SpecialInstructions); s != "" {
		section(&b, "SPECIAL INSTRUCTIONS")
		b.WriteString(s)
		b.WriteString("\n\n")
	}

	section(&b, "ADDITIONAL NOTES")
	for i, n := range additionalNotes {
		b.WriteString("• " + n)
		if i < len(additionalNotes)-1 {
			b.WriteString("\n")
		}
	}

	return b.String()
}

func section(b *strings.Builder, title string) {
	b.WriteString(title + "\n")
	b.WriteString(strings.Repeat("-", utf8.RuneCountInString(title)) + "\n")
}

func bullets(b *strings.Builder, heading string, lines []string) {
	if len(lines) == 0 {
		return
	}
	b.WriteString(heading + "\n")
	for _, l := range lines {
		b.WriteString("• " + l + "\n")
	}
	b.WriteString("\n")
}

func unitCents(it square.LineItem) int64 {
	if it.BasePriceMoney == nil {
		return 0
	}
	return it.BasePriceMoney.Amount
}

func unitSuffix(it square.LineItem) string {
	if it.Quantity == "1" {
		return ""
	}
	return "/guest"
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
