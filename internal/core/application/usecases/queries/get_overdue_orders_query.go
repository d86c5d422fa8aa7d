package queries

import (
	"errors"
	"time"

	"subcontract/internal/core/domain/model/kernel"
	"subcontract/internal/core/domain/model/order"
	"subcontract/internal/pkg/errs"
	"subcontract/internal/pkg/guard"
)

var ErrGetOverdueOrdersQueryIsNotConstructed = errors.New(
	"GetOverdueOrdersQuery must be created via NewGetOverdueOrdersQuery constructor",
)

// GetOverdueOrdersQuery lists open orders whose expected return date lies
// before asOf while goods are still at the subcontractor.
type GetOverdueOrdersQuery struct {
	asOf time.Time

	guard guard.ConstructorGuard
}

func NewGetOverdueOrdersQuery(asOf time.Time) (GetOverdueOrdersQuery, error) {
	if asOf.IsZero() {
		return GetOverdueOrdersQuery{}, errs.NewValueIsRequiredError("asOf")
	}
	return GetOverdueOrdersQuery{asOf: asOf, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOverdueOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOverdueOrdersQueryIsNotConstructed)
}

func (q GetOverdueOrdersQuery) AsOf() time.Time {
	return q.asOf
}

type GetOverdueOrdersQueryResponse struct {
	ID                 kernel.UUID
	Number             string
	SubcontractorName  string
	Status             order.Status
	ExpectedReturnDate time.Time
	RemainingQty       int
}

// DaysOverdue counts whole days between the expected return date and asOf.
func (r GetOverdueOrdersQueryResponse) DaysOverdue(asOf time.Time) int {
	return int(asOf.Sub(r.ExpectedReturnDate).Hours() / 24)
}
