package order

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"subcontract/internal/core/domain/model/kernel"
	"subcontract/internal/pkg/errs"
)

var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem or RestoreItem")

// Receipt is what came back from the contractor for one product: usable goods,
// defective goods and goods lost in processing.
type Receipt struct {
	Returned int
	Defect   int
	Wastage  int
}

// NewReceipt validates that every quantity is non-negative.
func NewReceipt(returned, defect, wastage int) (Receipt, error) {
	r := Receipt{Returned: returned, Defect: defect, Wastage: wastage}
	if err := r.Validate(); err != nil {
		return Receipt{}, err
	}
	return r, nil
}

// Validate rejects negative quantities.
func (r Receipt) Validate() error {
	return errors.Join(
		nonNegative("returnedQty", r.Returned),
		nonNegative("defectQty", r.Defect),
		nonNegative("wastageQty", r.Wastage),
	)
}

// Total is returned + defect + wastage, clamped at math.MaxInt.
func (r Receipt) Total() int {
	return saturatingSum(r.Returned, r.Defect, r.Wastage)
}

// Add returns the element-wise sum; each component is clamped at math.MaxInt.
func (r Receipt) Add(other Receipt) Receipt {
	return Receipt{
		Returned: saturatingSum(r.Returned, other.Returned),
		Defect:   saturatingSum(r.Defect, other.Defect),
		Wastage:  saturatingSum(r.Wastage, other.Wastage),
	}
}

// fitsWithin reports whether receipt r plus extra stays at or below limit.
func (r Receipt) fitsWithin(limit int, extra Receipt) bool {
	return sumsWithin(limit, r.Returned, r.Defect, r.Wastage, extra.Returned, extra.Defect, extra.Wastage)
}

// IsBelow reports whether any component of r is lower than the same component of other.
func (r Receipt) IsBelow(other Receipt) bool {
	return r.Returned < other.Returned || r.Defect < other.Defect || r.Wastage < other.Wastage
}

// Item is one product line of a subcontract order. Its issued quantity never
// changes; its receipt only changes through ItemReconciler.
type Item struct {
	id          kernel.UUID
	productID   kernel.UUID
	productName string
	productCode string
	issuedQty   int
	received    Receipt

	isConstructed bool
}

// NewItem creates a line with nothing received yet.
func NewItem(id, productID kernel.UUID, productName, productCode string, issuedQty int) (*Item, error) {
	item := &Item{isConstructed: true}

	if err := errors.Join(
		item.setID(id),
		item.setProduct(productID, productName, productCode),
		item.setIssuedQty(issuedQty),
	); err != nil {
		return nil, err
	}

	return item, nil
}

// RestoreItem rebuilds a persisted line. The stored receipt must satisfy the
// conservation rule, otherwise the row is reported as invalid.
func RestoreItem(
	id, productID kernel.UUID,
	productName, productCode string,
	issuedQty int,
	received Receipt,
) (*Item, error) {
	item, err := NewItem(id, productID, productName, productCode, issuedQty)
	if err != nil {
		return nil, err
	}
	if err = received.Validate(); err != nil {
		return nil, err
	}
	if !received.fitsWithin(issuedQty, Receipt{}) {
		return nil, &ExceedsIssuedError{
			ProductID: productID,
			Direction: Inbound,
			Issued:    issuedQty,
			Attempted: received.Total(),
		}
	}
	item.received = received
	return item, nil
}

// Validate ensures the item was created through NewItem or RestoreItem.
func (i *Item) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

// ID identifies the line.
func (i *Item) ID() kernel.UUID {
	return i.id
}

// ProductID is the product issued on this line.
func (i *Item) ProductID() kernel.UUID {
	return i.productID
}

// ProductName is the product name captured when the line was added.
func (i *Item) ProductName() string {
	return i.productName
}

// ProductCode is the product code captured when the line was added.
func (i *Item) ProductCode() string {
	return i.productCode
}

// IssuedQty is the quantity handed to the contractor.
func (i *Item) IssuedQty() int {
	return i.issuedQty
}

// ReturnedQty is the usable quantity received back so far.
func (i *Item) ReturnedQty() int {
	return i.received.Returned
}

// DefectQty is the defective quantity received back so far.
func (i *Item) DefectQty() int {
	return i.received.Defect
}

// WastageQty is the quantity reported lost in processing.
func (i *Item) WastageQty() int {
	return i.received.Wastage
}

// Received returns the accumulated receipt.
func (i *Item) Received() Receipt {
	return i.received
}

// RemainingQty is issued - returned - defect - wastage; it is never negative.
func (i *Item) RemainingQty() int {
	return i.issuedQty - i.received.Total()
}

func (i *Item) clone() *Item {
	c := *i
	return &c
}

func (i *Item) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *Item) setProduct(productID kernel.UUID, name, code string) error {
	if err := productID.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(name) == "" {
		return errs.NewValueIsRequiredError("productName")
	}
	i.productID = productID
	i.productName = name
	i.productCode = code
	return nil
}

func (i *Item) setIssuedQty(qty int) error {
	if qty <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("issuedQty", fmt.Errorf("%d is not greater than 0", qty))
	}
	i.issuedQty = qty
	return nil
}

// sumsWithin reports whether the non-negative parts add up to at most limit.
// Each part is compared with the headroom left, so the sum never overflows.
func sumsWithin(limit int, parts ...int) bool {
	sum := 0
	for _, p := range parts {
		if p < 0 || p > limit-sum {
			return false
		}
		sum += p
	}
	return true
}

// saturatingSum adds non-negative parts and stops at math.MaxInt.
func saturatingSum(parts ...int) int {
	sum := 0
	for _, p := range parts {
		if p > math.MaxInt-sum {
			return math.MaxInt
		}
		sum += p
	}
	return sum
}

func nonNegative(param string, v int) error {
	if v < 0 {
		return errs.NewValueIsInvalidErrorWithCause(param, fmt.Errorf("%d is negative", v))
	}
	return nil
}
