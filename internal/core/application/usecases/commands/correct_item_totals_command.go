package commands

import (
	"errors"
	"time"

	"subcontract/internal/core/domain/model/kernel"
	"subcontract/internal/core/domain/model/order"
	"subcontract/internal/pkg/errs"
	"subcontract/internal/pkg/guard"
)

var ErrCorrectItemTotalsCommandIsNotConstructed = errors.New(
	"CorrectItemTotalsCommand must be created via NewCorrectItemTotalsCommand constructor",
)

// CorrectItemTotalsCommand overwrites the received totals of one item with
// absolute values. The note is mandatory when any total goes down.
type CorrectItemTotalsCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	productID   kernel.UUID
	totals      order.Receipt
	note        string
	correctedAt time.Time

	guard guard.ConstructorGuard
}

// NewCorrectItemTotalsCommand validates the absolute target totals and the correction time.
func NewCorrectItemTotalsCommand(
	orderID, productID kernel.UUID,
	returned, defect, wastage int,
	note string,
	correctedAt time.Time,
) (CorrectItemTotalsCommand, error) {
	cmd := CorrectItemTotalsCommand{
		note:  note,
		guard: guard.NewConstructorGuard(),
	}

	totals, err := order.NewReceipt(returned, defect, wastage)
	if err = errors.Join(
		err,
		orderID.Validate(),
		productID.Validate(),
		cmd.setCorrectedAt(correctedAt),
	); err != nil {
		return CorrectItemTotalsCommand{}, err
	}

	cmd.orderID = orderID
	cmd.productID = productID
	cmd.totals = totals
	return cmd, nil
}

// Validate ensures the command was built by NewCorrectItemTotalsCommand.
func (c CorrectItemTotalsCommand) Validate() error {
	return c.guard.Validate(ErrCorrectItemTotalsCommandIsNotConstructed)
}

// OrderID is the order holding the item.
func (c CorrectItemTotalsCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ProductID selects the item to correct.
func (c CorrectItemTotalsCommand) ProductID() kernel.UUID {
	return c.productID
}

// Totals are the absolute returned, defect and wastage values to set.
func (c CorrectItemTotalsCommand) Totals() order.Receipt {
	return c.totals
}

// Note is the audit note; it is required when any total goes down.
func (c CorrectItemTotalsCommand) Note() string {
	return c.note
}

// CorrectedAt is stamped on the audit entry.
func (c CorrectItemTotalsCommand) CorrectedAt() time.Time {
	return c.correctedAt
}

func (c *CorrectItemTotalsCommand) setCorrectedAt(at time.Time) error {
	if at.IsZero() {
		return errs.NewValueIsRequiredError("correctedAt")
	}
	c.correctedAt = at
	return nil
}
