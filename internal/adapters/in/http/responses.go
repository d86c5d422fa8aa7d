package http

import (
	"time"

	"subcontract/internal/core/application/usecases/queries"
	"subcontract/internal/core/domain/model/kernel"
	"subcontract/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

type OrderStateResponse struct {
	ID      kernel.UUID `json:"id"`
	Number  string      `json:"number"`
	Status  string      `json:"status"`
	Version int64       `json:"version"`
}

func newOrderStateResponse(o *order.Order) OrderStateResponse {
	return OrderStateResponse{
		ID:      o.ID(),
		Number:  o.Number(),
		Status:  o.Status().String(),
		Version: o.Version(),
	}
}

type OrderResponse struct {
	ID                 kernel.UUID      `json:"id"`
	Number             string           `json:"number"`
	SubcontractorID    kernel.UUID      `json:"subcontractorId"`
	SubcontractorName  string           `json:"subcontractorName"`
	Operation          string           `json:"operation"`
	IssuedDate         string           `json:"issuedDate"`
	ExpectedReturnDate *string          `json:"expectedReturnDate,omitempty"`
	EstimatedCost      *decimal.Decimal `json:"estimatedCost,omitempty"`
	Status             string           `json:"status"`
	StatusLabel        string           `json:"statusLabel"`
	StatusBadge        string           `json:"statusBadge"`
	NextStatuses       []string         `json:"nextStatuses"`
	ShipmentCount      int              `json:"shipmentCount"`
	RemainingQty       int              `json:"remainingQty"`
	Version            int64            `json:"version"`
	Items              []ItemResponse   `json:"items"`
}

func newOrderResponse(r queries.GetOrderQueryResponse) OrderResponse {
	resp := OrderResponse{
		ID:                 r.ID,
		Number:             r.Number,
		SubcontractorID:    r.SubcontractorID,
		SubcontractorName:  r.SubcontractorName,
		Operation:          r.Operation,
		IssuedDate:         r.IssuedDate.Format(time.DateOnly),
		ExpectedReturnDate: formatDate(r.ExpectedReturnDate),
		EstimatedCost:      r.EstimatedCost,
		Status:             r.Status.String(),
		StatusLabel:        r.StatusLabel,
		StatusBadge:        r.StatusBadge,
		NextStatuses:       make([]string, 0, len(r.NextStatuses)),
		ShipmentCount:      r.ShipmentCount,
		RemainingQty:       r.RemainingQty(),
		Version:            r.Version,
		Items:              make([]ItemResponse, 0, len(r.Items)),
	}
	for _, s := range r.NextStatuses {
		resp.NextStatuses = append(resp.NextStatuses, s.String())
	}
	for _, item := range r.Items {
		resp.Items = append(resp.Items, ItemResponse{
			ID:           item.ID,
			ProductID:    item.ProductID,
			ProductName:  item.ProductName,
			ProductCode:  item.ProductCode,
			IssuedQty:    item.IssuedQty,
			ReturnedQty:  item.ReturnedQty,
			DefectQty:    item.DefectQty,
			WastageQty:   item.WastageQty,
			RemainingQty: item.RemainingQty,
		})
	}
	return resp
}

type ItemResponse struct {
	ID           kernel.UUID `json:"id"`
	ProductID    kernel.UUID `json:"productId"`
	ProductName  string      `json:"productName"`
	ProductCode  string      `json:"productCode"`
	IssuedQty    int         `json:"issuedQty"`
	ReturnedQty  int         `json:"returnedQty"`
	DefectQty    int         `json:"defectQty"`
	WastageQty   int         `json:"wastageQty"`
	RemainingQty int         `json:"remainingQty"`
}

func newItemResponse(item *order.Item) ItemResponse {
	return ItemResponse{
		ID:           item.ID(),
		ProductID:    item.ProductID(),
		ProductName:  item.ProductName(),
		ProductCode:  item.ProductCode(),
		IssuedQty:    item.IssuedQty(),
		ReturnedQty:  item.ReturnedQty(),
		DefectQty:    item.DefectQty(),
		WastageQty:   item.WastageQty(),
		RemainingQty: item.RemainingQty(),
	}
}

type ShipmentResponse struct {
	ID                 kernel.UUID            `json:"id"`
	Direction          string                 `json:"direction"`
	Date               string                 `json:"date"`
	WarehouseID        kernel.UUID            `json:"warehouseId"`
	DeliveryNoteNumber string                 `json:"deliveryNoteNumber,omitempty"`
	Lines              []ShipmentLineResponse `json:"lines"`
}

type ShipmentLineResponse struct {
	ProductID kernel.UUID `json:"productId"`
	Quantity  int         `json:"quantity"`
	Defect    int         `json:"defect"`
	Wastage   int         `json:"wastage"`
}

func newShipmentResponse(s order.Shipment) ShipmentResponse {
	resp := ShipmentResponse{
		ID:                 s.ID(),
		Direction:          s.Direction().String(),
		Date:               s.Date().Format(time.DateOnly),
		WarehouseID:        s.WarehouseID(),
		DeliveryNoteNumber: s.DeliveryNoteNumber(),
		Lines:              make([]ShipmentLineResponse, 0, len(s.Lines())),
	}
	for _, line := range s.Lines() {
		resp.Lines = append(resp.Lines, ShipmentLineResponse{
			ProductID: line.ProductID(),
			Quantity:  line.Quantity(),
			Defect:    line.DefectQty(),
			Wastage:   line.WastageQty(),
		})
	}
	return resp
}

type ShipmentTotalResponse struct {
	ProductID kernel.UUID `json:"productId"`
	Quantity  int         `json:"quantity"`
	Defect    int         `json:"defect"`
	Wastage   int         `json:"wastage"`
}

type OverdueOrderResponse struct {
	ID                 kernel.UUID `json:"id"`
	Number             string      `json:"number"`
	SubcontractorName  string      `json:"subcontractorName"`
	Status             string      `json:"status"`
	ExpectedReturnDate string      `json:"expectedReturnDate"`
	DaysOverdue        int         `json:"daysOverdue"`
	RemainingQty       int         `json:"remainingQty"`
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.DateOnly)
	return &s
}
