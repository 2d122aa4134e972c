package usecase

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/jhavlik/venceflor/internal/domain"
	"github.com/jhavlik/venceflor/internal/money"
)

var emailRe = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

// CheckoutContact is what the shopper fills in at checkout. Payment happens
// off-platform, so contact details are all the florist needs to follow up.
type CheckoutContact struct {
	Email  string
	Name   string
	Phone  string
	Note   string
	Locale domain.Locale
}

// OrderUC captures checkouts and serves the florist's order admin.
type OrderUC struct {
	Orders    domain.OrderRepo
	Customers domain.CustomerRepo
}

// Capture persists the cart as a received order, freezing each line's
// customization snapshot and unit price verbatim. The customer record is
// found or created by email.
func (uc *OrderUC) Capture(ctx context.Context, contact CheckoutContact, lines []CartLine) (*domain.Order, error) {
	email := strings.ToLower(strings.TrimSpace(contact.Email))
	if !emailRe.MatchString(email) {
		return nil, errors.New("invalid email")
	}
	if strings.TrimSpace(contact.Name) == "" {
		return nil, errors.New("name is required")
	}
	if len(lines) == 0 {
		return nil, errors.New("empty cart")
	}
	if contact.Locale == "" {
		contact.Locale = domain.LocaleCS
	}

	customerID, err := uc.ensureCustomer(ctx, email, contact)
	if err != nil {
		return nil, err
	}

	order := &domain.Order{
		ID:         uuid.New(),
		Status:     domain.OrderStatusReceived,
		Email:      email,
		Name:       strings.TrimSpace(contact.Name),
		Phone:      strings.TrimSpace(contact.Phone),
		Note:       strings.TrimSpace(contact.Note),
		Locale:     contact.Locale,
		CustomerID: customerID,
	}
	for _, l := range lines {
		if l.Qty <= 0 {
			continue
		}
		productID := l.ProductID
		item := domain.OrderItem{
			ID:             uuid.New(),
			OrderID:        order.ID,
			Slug:           l.Slug,
			Title:          l.Title,
			Qty:            l.Qty,
			UnitPrice:      l.UnitPrice,
			Customizations: l.Customizations,
		}
		if productID != uuid.Nil {
			item.ProductID = &productID
		}
		order.Items = append(order.Items, item)
		order.Total += l.UnitPrice * money.Money(l.Qty)
	}
	if len(order.Items) == 0 {
		return nil, errors.New("empty cart")
	}

	if err := uc.Orders.Save(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (uc *OrderUC) ensureCustomer(ctx context.Context, email string, contact CheckoutContact) (*uuid.UUID, error) {
	if uc.Customers == nil {
		return nil, nil
	}
	c, err := uc.Customers.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return &c.ID, nil
	case errors.Is(err, domain.ErrNotFound):
		c = &domain.Customer{
			ID:     uuid.New(),
			Email:  email,
			Name:   strings.TrimSpace(contact.Name),
			Phone:  strings.TrimSpace(contact.Phone),
			Locale: contact.Locale,
		}
		if err := uc.Customers.Save(ctx, c); err != nil {
			return nil, err
		}
		return &c.ID, nil
	default:
		return nil, err
	}
}

func (uc *OrderUC) Get(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	if id == uuid.Nil {
		return nil, errors.New("order id")
	}
	return uc.Orders.FindByID(ctx, id)
}

func (uc *OrderUC) List(ctx context.Context, f domain.OrderFilter) ([]domain.Order, int64, error) {
	if f.PageSize == 0 {
		f.PageSize = 20
	}
	return uc.Orders.List(ctx, f)
}

// ErrBadTransition marks a status change the order lifecycle does not allow.
var ErrBadTransition = errors.New("invalid status transition")

var validTransitions = map[domain.OrderStatus][]domain.OrderStatus{
	domain.OrderStatusReceived:   {domain.OrderStatusConfirmed, domain.OrderStatusCancelled},
	domain.OrderStatusConfirmed:  {domain.OrderStatusDispatched, domain.OrderStatusCancelled},
	domain.OrderStatusDispatched: {},
	domain.OrderStatusCancelled:  {},
}

// UpdateStatus advances an order through received -> confirmed -> dispatched,
// with cancellation allowed until dispatch.
func (uc *OrderUC) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) (*domain.Order, error) {
	if _, ok := validTransitions[status]; !ok {
		return nil, fmt.Errorf("%w: unknown status %q", ErrBadTransition, status)
	}
	order, err := uc.Orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	allowed := false
	for _, s := range validTransitions[order.Status] {
		if s == status {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, fmt.Errorf("%w: cannot move order from %s to %s", ErrBadTransition, order.Status, status)
	}
	order.Status = status
	if err := uc.Orders.Save(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}
