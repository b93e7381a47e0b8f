package square

import (
	sdk "github.com/square/square-go-sdk"
)

const orderNoteKey = "note"

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func value[T ~string](p *T) string {
	if p == nil {
		return ""
	}
	return string(*p)
}

func toMoney(m *Money) *sdk.Money {
	if m == nil {
		return nil
	}
	return &sdk.Money{
		Amount:   sdk.Int64(m.Amount),
		Currency: sdk.Currency(m.Currency).Ptr(),
	}
}

func fromMoney(m *sdk.Money) *Money {
	if m == nil {
		return nil
	}
	out := &Money{Currency: value(m.Currency)}
	if m.Amount != nil {
		out.Amount = *m.Amount
	}
	return out
}

func fromCustomer(c *sdk.Customer) Customer {
	out := Customer{
		ID:           value(c.ID),
		GivenName:    value(c.GivenName),
		FamilyName:   value(c.FamilyName),
		CompanyName:  value(c.CompanyName),
		EmailAddress: value(c.EmailAddress),
		PhoneNumber:  value(c.PhoneNumber),
		ReferenceID:  value(c.ReferenceID),
		Note:         value(c.Note),
		CreatedAt:    value(c.CreatedAt),
		UpdatedAt:    value(c.UpdatedAt),
	}
	if c.Version != nil {
		out.Version = *c.Version
	}
	return out
}

func toLineItems(items []LineItem) []*sdk.OrderLineItem {
	if items == nil {
		return nil
	}
	out := make([]*sdk.OrderLineItem, 0, len(items))
	for _, it := range items {
		out = append(out, &sdk.OrderLineItem{
			UID:            optional(it.UID),
			Name:           optional(it.Name),
			Quantity:       it.Quantity,
			Note:           optional(it.Note),
			BasePriceMoney: toMoney(it.BasePriceMoney),
		})
	}
	return out
}

func toOrder(o Order) *sdk.Order {
	out := &sdk.Order{
		LocationID:  o.LocationID,
		ReferenceID: optional(o.ReferenceID),
		CustomerID:  optional(o.CustomerID),
		LineItems:   toLineItems(o.LineItems),
	}
	if o.Note != "" {
		out.Metadata = map[string]*string{orderNoteKey: optional(o.Note)}
	}
	if o.Version != 0 {
		out.Version = sdk.Int(int(o.Version))
	}
	return out
}

func fromOrder(o *sdk.Order) *Order {
	out := &Order{
		ID:          value(o.ID),
		LocationID:  o.LocationID,
		ReferenceID: value(o.ReferenceID),
		CustomerID:  value(o.CustomerID),
		State:       value(o.State),
		TotalMoney:  fromMoney(o.TotalMoney),
		CreatedAt:   value(o.CreatedAt),
		UpdatedAt:   value(o.UpdatedAt),
	}
	if note, ok := o.Metadata[orderNoteKey]; ok {
		out.Note = value(note)
	}
	if o.Version != nil {
		out.Version = int64(*o.Version)
	}
	for _, it := range o.LineItems {
		if it == nil {
			continue
		}
		out.LineItems = append(out.LineItems, LineItem{
			UID:            value(it.UID),
			Name:           value(it.Name),
			Quantity:       it.Quantity,
			Note:           value(it.Note),
			BasePriceMoney: fromMoney(it.BasePriceMoney),
			TotalMoney:     fromMoney(it.TotalMoney),
		})
	}
	return out
}

func toInvoice(inv Invoice) *sdk.Invoice {
	out := &sdk.Invoice{
		LocationID:        optional(inv.LocationID),
		OrderID:           optional(inv.OrderID),
		Title:             optional(inv.Title),
		Description:       optional(inv.Description),
		SaleOrServiceDate: optional(inv.SaleOrServiceDate),
	}
	if inv.DeliveryMethod != "" {
		out.DeliveryMethod = sdk.InvoiceDeliveryMethod(inv.DeliveryMethod).Ptr()
	}
	if r := inv.PrimaryRecipient; r != nil {
		out.PrimaryRecipient = &sdk.InvoiceRecipient{
			CustomerID:   optional(r.CustomerID),
			GivenName:    optional(r.GivenName),
			FamilyName:   optional(r.FamilyName),
			EmailAddress: optional(r.EmailAddress),
			CompanyName:  optional(r.CompanyName),
			PhoneNumber:  optional(r.PhoneNumber),
		}
	}
	for _, pr := range inv.PaymentRequests {
		req := &sdk.InvoicePaymentRequest{
			UID:     optional(pr.UID),
			DueDate: optional(pr.DueDate),
		}
		if pr.RequestType != "" {
			req.RequestType = sdk.InvoiceRequestType(pr.RequestType).Ptr()
		}
		for _, rem := range pr.Reminders {
			req.Reminders = append(req.Reminders, &sdk.InvoicePaymentReminder{
				RelativeScheduledDays: sdk.Int(rem.RelativeScheduledDays),
				Message:               optional(rem.Message),
			})
		}
		out.PaymentRequests = append(out.PaymentRequests, req)
	}
	if m := inv.AcceptedPaymentMethods; m != nil {
		out.AcceptedPaymentMethods = &sdk.InvoiceAcceptedPaymentMethods{
			Card:           sdk.Bool(m.Card),
			SquareGiftCard: sdk.Bool(m.SquareGiftCard),
			BankAccount:    sdk.Bool(m.BankAccount),
			BuyNowPayLater: sdk.Bool(m.BuyNowPayLater),
		}
	}
	return out
}

func fromInvoice(inv *sdk.Invoice) *Invoice {
	out := &Invoice{
		ID:                value(inv.ID),
		LocationID:        value(inv.LocationID),
		OrderID:           value(inv.OrderID),
		Status:            value(inv.Status),
		Title:             value(inv.Title),
		Description:       value(inv.Description),
		DeliveryMethod:    value(inv.DeliveryMethod),
		SaleOrServiceDate: value(inv.SaleOrServiceDate),
		PublicURL:         value(inv.PublicURL),
		CreatedAt:         value(inv.CreatedAt),
		UpdatedAt:         value(inv.UpdatedAt),
	}
	if inv.Version != nil {
		out.Version = int64(*inv.Version)
	}
	if r := inv.PrimaryRecipient; r != nil {
		out.PrimaryRecipient = &InvoiceRecipient{
			CustomerID:   value(r.CustomerID),
			GivenName:    value(r.GivenName),
			FamilyName:   value(r.FamilyName),
			EmailAddress: value(r.EmailAddress),
			CompanyName:  value(r.CompanyName),
			PhoneNumber:  value(r.PhoneNumber),
		}
	}
	for _, pr := range inv.PaymentRequests {
		if pr == nil {
			continue
		}
		req := InvoicePaymentRequest{
			UID:                 value(pr.UID),
			RequestType:         value(pr.RequestType),
			DueDate:             value(pr.DueDate),
			ComputedAmountMoney: fromMoney(pr.ComputedAmountMoney),
		}
		for _, rem := range pr.Reminders {
			if rem == nil {
				continue
			}
			r := InvoicePaymentReminder{Message: value(rem.Message)}
			if rem.RelativeScheduledDays != nil {
				r.RelativeScheduledDays = *rem.RelativeScheduledDays
			}
			req.Reminders = append(req.Reminders, r)
		}
		out.PaymentRequests = append(out.PaymentRequests, req)
	}
	if m := inv.AcceptedPaymentMethods; m != nil {
		out.AcceptedPaymentMethods = &AcceptedPaymentMethods{
			Card:           m.Card != nil && *m.Card,
			SquareGiftCard: m.SquareGiftCard != nil && *m.SquareGiftCard,
			BankAccount:    m.BankAccount != nil && *m.BankAccount,
			BuyNowPayLater: m.BuyNowPayLater != nil && *m.BuyNowPayLater,
		}
	}
	return out
}

func fromLocation(l *sdk.Location) Location {
	out := Location{
		ID:     value(l.ID),
		Name:   value(l.Name),
		Status: value(l.Status),
		Type:   value(l.Type),
	}
	if a := l.Address; a != nil {
		out.Address = &Address{
			AddressLine1:                 value(a.AddressLine1),
			Locality:                     value(a.Locality),
			AdministrativeDistrictLevel1: value(a.AdministrativeDistrictLevel1),
			PostalCode:                   value(a.PostalCode),
			Country:                      value(a.Country),
		}
	}
	return out
}
