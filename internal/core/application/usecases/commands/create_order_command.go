package commands

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"subcontract/internal/core/domain/model/kernel"
	"subcontract/internal/pkg/errs"
	"subcontract/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// IssuedItem is one product line requested on a new order.
type IssuedItem struct {
	ProductID kernel.UUID
	IssuedQty int
}

// CreateOrderCommand registers a DRAFT subcontract order with its initial items.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(CreateOrderParams{
//	    OrderID:           kernel.NewUUID(),
//	    Number:            "SC-001",
//	    SubcontractorID:   dyerID,
//	    SubcontractorName: "Acme Dyeing",
//	    Operation:         "dyeing",
//	    IssuedDate:        time.Now(),
//	    Items:             []IssuedItem{{ProductID: fabricID, IssuedQty: 100}},
//	})
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	params CreateOrderParams

	guard guard.ConstructorGuard
}

// CreateOrderParams are the raw inputs of CreateOrderCommand.
type CreateOrderParams struct {
	OrderID            kernel.UUID
	Number             string
	SubcontractorID    kernel.UUID
	SubcontractorName  string
	Operation          string
	IssuedDate         time.Time
	ExpectedReturnDate *time.Time
	EstimatedCost      *decimal.Decimal
	Items              []IssuedItem
}

// NewCreateOrderCommand requires both ids, the names and at least one item.
func NewCreateOrderCommand(params CreateOrderParams) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		params.OrderID.Validate(),
		params.SubcontractorID.Validate(),
		required("number", params.Number),
		required("subcontractorName", params.SubcontractorName),
		required("operation", params.Operation),
		cmd.setIssuedDate(params.IssuedDate),
		cmd.setItems(params.Items),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	params.Items = append([]IssuedItem(nil), params.Items...)
	cmd.params = params
	return cmd, nil
}

// Validate ensures the command was built by NewCreateOrderCommand.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID is the id the new order is stored under.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.params.OrderID
}

// Number is the human readable order number; it must be unique.
func (c CreateOrderCommand) Number() string {
	return strings.TrimSpace(c.params.Number)
}

// SubcontractorID identifies the contractor doing the work.
func (c CreateOrderCommand) SubcontractorID() kernel.UUID {
	return c.params.SubcontractorID
}

// SubcontractorName is copied onto the order.
func (c CreateOrderCommand) SubcontractorName() string {
	return strings.TrimSpace(c.params.SubcontractorName)
}

// Operation names the work, for example dyeing.
func (c CreateOrderCommand) Operation() string {
	return strings.TrimSpace(c.params.Operation)
}

// IssuedDate is the day the goods were handed over.
func (c CreateOrderCommand) IssuedDate() time.Time {
	return c.params.IssuedDate
}

// ExpectedReturnDate is nil when no return date was planned.
func (c CreateOrderCommand) ExpectedReturnDate() *time.Time {
	return c.params.ExpectedReturnDate
}

// EstimatedCost is nil when no estimate was given.
func (c CreateOrderCommand) EstimatedCost() *decimal.Decimal {
	return c.params.EstimatedCost
}

// Items returns a copy of the requested lines.
func (c CreateOrderCommand) Items() []IssuedItem {
	return append([]IssuedItem(nil), c.params.Items...)
}

func (c *CreateOrderCommand) setIssuedDate(date time.Time) error {
	if date.IsZero() {
		return errs.NewValueIsRequiredError("issuedDate")
	}
	return nil
}

func (c *CreateOrderCommand) setItems(items []IssuedItem) error {
	seen := make(map[kernel.UUID]struct{}, len(items))
	for i, item := range items {
		if err := item.ProductID.Validate(); err != nil {
			return err
		}
		if item.IssuedQty <= 0 {
			return errs.NewValueIsInvalidErrorWithCause(
				fmt.Sprintf("items[%d].issuedQty", i), fmt.Errorf("%d is not positive", item.IssuedQty))
		}
		if _, ok := seen[item.ProductID]; ok {
			return errs.NewValueIsInvalidErrorWithCause(
				fmt.Sprintf("items[%d].productID", i), fmt.Errorf("product %s is listed twice", item.ProductID))
		}
		seen[item.ProductID] = struct{}{}
	}
	return nil
}

func required(param, value string) error {
	if strings.TrimSpace(value) == "" {
		return errs.NewValueIsRequiredError(param)
	}
	return nil
}
