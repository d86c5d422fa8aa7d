package http

import (
	"fmt"
	"time"

	"subcontract/internal/core/application/usecases/commands"
	"subcontract/internal/core/domain/model/kernel"
	"subcontract/internal/core/domain/model/order"
	"subcontract/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// requestValidator plugs go-playground/validator into echo's Context.Validate.
type requestValidator struct {
	validate *validator.Validate
}

func newRequestValidator() *requestValidator {
	return &requestValidator{validate: validator.New()}
}

func (v *requestValidator) Validate(i any) error {
	return v.validate.Struct(i)
}

type CreateOrderRequest struct {
	ID                 string              `json:"id" validate:"omitempty,uuid"`
	Number             string              `json:"number" validate:"required,max=64"`
	SubcontractorID    string              `json:"subcontractorId" validate:"required,uuid"`
	SubcontractorName  string              `json:"subcontractorName" validate:"required,max=255"`
	Operation          string              `json:"operation" validate:"required,max=128"`
	IssuedDate         string              `json:"issuedDate" validate:"required,datetime=2006-01-02"`
	ExpectedReturnDate string              `json:"expectedReturnDate" validate:"omitempty,datetime=2006-01-02"`
	EstimatedCost      *decimal.Decimal    `json:"estimatedCost"`
	Items              []IssuedItemRequest `json:"items" validate:"required,min=1,dive"`
}

type IssuedItemRequest struct {
	ProductID string `json:"productId" validate:"required,uuid"`
	IssuedQty int    `json:"issuedQty" validate:"required,gt=0"`
}

func (r CreateOrderRequest) toCommand() (commands.CreateOrderCommand, error) {
	orderID := kernel.NewUUID()
	if r.ID != "" {
		id, err := parseID("id", r.ID)
		if err != nil {
			return commands.CreateOrderCommand{}, err
		}
		orderID = id
	}

	subcontractorID, err := parseID("subcontractorId", r.SubcontractorID)
	if err != nil {
		return commands.CreateOrderCommand{}, err
	}
	issuedDate, err := parseDate("issuedDate", r.IssuedDate)
	if err != nil {
		return commands.CreateOrderCommand{}, err
	}

	var expectedReturn *time.Time
	if r.ExpectedReturnDate != "" {
		d, dateErr := parseDate("expectedReturnDate", r.ExpectedReturnDate)
		if dateErr != nil {
			return commands.CreateOrderCommand{}, dateErr
		}
		expectedReturn = &d
	}

	items := make([]commands.IssuedItem, 0, len(r.Items))
	for i, item := range r.Items {
		productID, idErr := parseID(fmt.Sprintf("items[%d].productId", i), item.ProductID)
		if idErr != nil {
			return commands.CreateOrderCommand{}, idErr
		}
		items = append(items, commands.IssuedItem{ProductID: productID, IssuedQty: item.IssuedQty})
	}

	return commands.NewCreateOrderCommand(commands.CreateOrderParams{
		OrderID:            orderID,
		Number:             r.Number,
		SubcontractorID:    subcontractorID,
		SubcontractorName:  r.SubcontractorName,
		Operation:          r.Operation,
		IssuedDate:         issuedDate,
		ExpectedReturnDate: expectedReturn,
		EstimatedCost:      r.EstimatedCost,
		Items:              items,
	})
}

type AddOrderItemRequest struct {
	ProductID string `json:"productId" validate:"required,uuid"`
	IssuedQty int    `json:"issuedQty" validate:"required,gt=0"`
}

type ChangeOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=DRAFT ISSUED IN_PROGRESS COMPLETED CANCELLED"`
}

type RecordShipmentRequest struct {
	ID                 string                `json:"id" validate:"omitempty,uuid"`
	Direction          string                `json:"direction" validate:"required,oneof=OUTBOUND INBOUND"`
	Date               string                `json:"date" validate:"required,datetime=2006-01-02"`
	WarehouseID        string                `json:"warehouseId" validate:"required,uuid"`
	DeliveryNoteNumber string                `json:"deliveryNoteNumber" validate:"max=64"`
	Lines              []ShipmentLineRequest `json:"lines" validate:"dive"`
}

type ShipmentLineRequest struct {
	ProductID string `json:"productId" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"gte=0"`
	Defect    int    `json:"defect" validate:"gte=0"`
	Wastage   int    `json:"wastage" validate:"gte=0"`
}

func (r RecordShipmentRequest) toCommand(orderID kernel.UUID) (commands.RecordShipmentCommand, error) {
	shipmentID := kernel.NewUUID()
	if r.ID != "" {
		id, err := parseID("id", r.ID)
		if err != nil {
			return commands.RecordShipmentCommand{}, err
		}
		shipmentID = id
	}

	direction, err := order.ParseDirection(r.Direction)
	if err != nil {
		return commands.RecordShipmentCommand{}, err
	}
	date, err := parseDate("date", r.Date)
	if err != nil {
		return commands.RecordShipmentCommand{}, err
	}
	warehouseID, err := parseID("warehouseId", r.WarehouseID)
	if err != nil {
		return commands.RecordShipmentCommand{}, err
	}

	lines := make([]commands.ShipmentLineInput, 0, len(r.Lines))
	for i, line := range r.Lines {
		productID, idErr := parseID(fmt.Sprintf("lines[%d].productId", i), line.ProductID)
		if idErr != nil {
			return commands.RecordShipmentCommand{}, idErr
		}
		lines = append(lines, commands.ShipmentLineInput{
			ProductID: productID,
			Quantity:  line.Quantity,
			Defect:    line.Defect,
			Wastage:   line.Wastage,
		})
	}

	return commands.NewRecordShipmentCommand(
		orderID, shipmentID, direction, date, warehouseID, r.DeliveryNoteNumber, lines,
	)
}

type CorrectItemTotalsRequest struct {
	Returned int    `json:"returned" validate:"gte=0"`
	Defect   int    `json:"defect" validate:"gte=0"`
	Wastage  int    `json:"wastage" validate:"gte=0"`
	Note     string `json:"note" validate:"max=1000"`
}

func parseDate(param, value string) (time.Time, error) {
	d, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}, errs.NewValueIsInvalidErrorWithCause(param, err)
	}
	return d, nil
}

func parseID(param, value string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(value)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(param, err)
	}
	return id, nil
}
