package commands

import (
	"errors"
	"fmt"

	"subcontract/internal/core/domain/model/kernel"
	"subcontract/internal/pkg/errs"
	"subcontract/internal/pkg/guard"
)

var ErrAddOrderItemCommandIsNotConstructed = errors.New(
	"AddOrderItemCommand must be created via NewAddOrderItemCommand constructor",
)

// AddOrderItemCommand adds a product line to a DRAFT order.
type AddOrderItemCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	productID kernel.UUID
	issuedQty int

	guard guard.ConstructorGuard
}

// NewAddOrderItemCommand requires both ids and a positive issued quantity.
func NewAddOrderItemCommand(orderID, productID kernel.UUID, issuedQty int) (AddOrderItemCommand, error) {
	cmd := AddOrderItemCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setProductID(productID),
		cmd.setIssuedQty(issuedQty),
	); err != nil {
		return AddOrderItemCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was built by NewAddOrderItemCommand.
func (c AddOrderItemCommand) Validate() error {
	return c.guard.Validate(ErrAddOrderItemCommandIsNotConstructed)
}

// OrderID is the draft order receiving the line.
func (c AddOrderItemCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ProductID is looked up in the product directory by the handler.
func (c AddOrderItemCommand) ProductID() kernel.UUID {
	return c.productID
}

// IssuedQty is the quantity handed to the contractor.
func (c AddOrderItemCommand) IssuedQty() int {
	return c.issuedQty
}

func (c *AddOrderItemCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *AddOrderItemCommand) setProductID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.productID = id
	return nil
}

func (c *AddOrderItemCommand) setIssuedQty(qty int) error {
	if qty <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("issuedQty", fmt.Errorf("%d is not positive", qty))
	}
	c.issuedQty = qty
	return nil
}
