package order

import (
	"errors"
	"math"
	"strings"

	"cafeteria/internal/core/domain/model/kernel"
	"cafeteria/internal/pkg/errs"
)

// LineItem is one product entry of an order. Name and unit price are snapshots taken
// when the order was placed so later catalog edits never change historical bills.
type LineItem struct {
	productID kernel.UUID
	name      string
	unitPrice kernel.Money
	quantity  int
}

func NewLineItem(productID kernel.UUID, name string, unitPrice kernel.Money, quantity int) (LineItem, error) {
	item := LineItem{}
	if err := errors.Join(
		item.setProductID(productID),
		item.setName(name),
		item.setQuantity(quantity),
	); err != nil {
		return LineItem{}, err
	}
	item.unitPrice = unitPrice
	return item, nil
}

func (l LineItem) ProductID() kernel.UUID {
	return l.productID
}

func (l LineItem) Name() string {
	return l.name
}

func (l LineItem) UnitPrice() kernel.Money {
	return l.unitPrice
}

func (l LineItem) Quantity() int {
	return l.quantity
}

// Subtotal is unit price times quantity.
func (l LineItem) Subtotal() (kernel.Money, error) {
	return l.unitPrice.Multiply(l.quantity)
}

func (l *LineItem) setProductID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("product", err)
	}
	l.productID = id
	return nil
}

func (l *LineItem) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	l.name = name
	return nil
}

func (l *LineItem) setQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, math.MaxInt32)
	}
	l.quantity = quantity
	return nil
}

// totalOf sums the subtotals of items.
func totalOf(items []LineItem) (kernel.Money, error) {
	total := kernel.Zero
	for _, item := range items {
		subtotal, err := item.Subtotal()
		if err != nil {
			return kernel.Money{}, err
		}
		if total, err = total.Add(subtotal); err != nil {
			return kernel.Money{}, err
		}
	}
	return total, nil
}
