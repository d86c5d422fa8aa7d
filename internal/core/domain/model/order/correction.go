package order

import (
	"strings"
	"time"

	"subcontract/internal/core/domain/model/kernel"
)

// ItemCorrection records a direct edit of an item's receipt made outside a
// shipment. Previous and Corrected are absolute totals.
type ItemCorrection struct {
	id          kernel.UUID
	productID   kernel.UUID
	previous    Receipt
	corrected   Receipt
	note        string
	correctedAt time.Time
}

// RestoreItemCorrection rebuilds a persisted audit entry.
func RestoreItemCorrection(
	id, productID kernel.UUID,
	previous, corrected Receipt,
	note string,
	correctedAt time.Time,
) (ItemCorrection, error) {
	if err := id.Validate(); err != nil {
		return ItemCorrection{}, err
	}
	if err := productID.Validate(); err != nil {
		return ItemCorrection{}, err
	}
	return ItemCorrection{
		id:          id,
		productID:   productID,
		previous:    previous,
		corrected:   corrected,
		note:        strings.TrimSpace(note),
		correctedAt: correctedAt,
	}, nil
}

func (c ItemCorrection) ID() kernel.UUID {
	return c.id
}

func (c ItemCorrection) ProductID() kernel.UUID {
	return c.productID
}

func (c ItemCorrection) Previous() Receipt {
	return c.previous
}

func (c ItemCorrection) Corrected() Receipt {
	return c.corrected
}

func (c ItemCorrection) Note() string {
	return c.note
}

func (c ItemCorrection) CorrectedAt() time.Time {
	return c.correctedAt
}

// IsRegression reports whether the correction lowered any total.
func (c ItemCorrection) IsRegression() bool {
	return c.corrected.IsBelow(c.previous)
}
