package order

import (
	"fmt"
	"strings"

	"subcontract/internal/pkg/errs"
)

// Direction tells whether a shipment carries goods to the contractor (Outbound)
// or back from it (Inbound).
type Direction int

const (
	UnknownDirection Direction = iota
	Outbound
	Inbound
)

func getDirectionStrings() map[Direction]string {
	//nolint:exhaustive // UnknownDirection is not a valid direction
	return map[Direction]string{
		Outbound: "OUTBOUND",
		Inbound:  "INBOUND",
	}
}

// ParseDirection accepts "OUTBOUND" and "INBOUND", case insensitive.
func ParseDirection(s string) (Direction, error) {
	needle := strings.ToUpper(strings.TrimSpace(s))
	for d, name := range getDirectionStrings() {
		if name == needle {
			return d, nil
		}
	}
	return UnknownDirection, errs.NewValueIsInvalidErrorWithCause(
		"direction", fmt.Errorf("%q is not a valid shipment direction", s),
	)
}

// Validate rejects UnknownDirection and values outside the enum.
func (d Direction) Validate() error {
	if _, ok := getDirectionStrings()[d]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("direction", fmt.Errorf("%d is not a valid shipment direction", d))
	}
	return nil
}

func (d Direction) String() string {
	if s, ok := getDirectionStrings()[d]; ok {
		return s
	}
	return "UNKNOWN"
}
