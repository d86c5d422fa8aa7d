// Package orderrepo persists the subcontract order aggregate with GORM. The
// header, item lines, shipment ledger and correction audit trail live in their
// own tables and are always loaded together.
package orderrepo

import (
	"time"

	"subcontract/internal/core/domain/model/kernel"
	"subcontract/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is the subcontract_orders row. Version is the compare-and-set token.
type OrderDTO struct {
	ID                 uuid.UUID           `gorm:"type:uuid;primaryKey"`
	Number             string              `gorm:"size:64;not null;uniqueIndex"`
	SubcontractorID    uuid.UUID           `gorm:"type:uuid;not null;index"`
	SubcontractorName  string              `gorm:"size:255;not null"`
	Operation          string              `gorm:"size:128;not null"`
	IssuedDate         time.Time           `gorm:"type:date;not null"`
	ExpectedReturnDate *time.Time          `gorm:"type:date;index"`
	EstimatedCost      decimal.NullDecimal `gorm:"type:numeric(18,2)"`
	Status             int                 `gorm:"not null;index"`
	Version            int64               `gorm:"not null"`

	Items       []ItemDTO       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Shipments   []ShipmentDTO   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Corrections []CorrectionDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "subcontract_orders"
}

// ItemDTO is one subcontract_order_items row. Position keeps insertion order.
type ItemDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_subcontract_item_product"`
	ProductID   uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_subcontract_item_product"`
	ProductName string     `gorm:"size:255;not null"`
	ProductCode string     `gorm:"size:64"`
	IssuedQty   int        `gorm:"not null"`
	Received    ReceiptDTO `gorm:"embedded"`
	Position    int        `gorm:"not null"`
}

func (ItemDTO) TableName() string {
	return "subcontract_order_items"
}

// ReceiptDTO is embedded wherever returned/defect/wastage totals are stored.
type ReceiptDTO struct {
	ReturnedQty int `gorm:"not null;default:0"`
	DefectQty   int `gorm:"not null;default:0"`
	WastageQty  int `gorm:"not null;default:0"`
}

// ShipmentDTO is one subcontract_shipments row; rows are only ever inserted.
type ShipmentDTO struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID            uuid.UUID `gorm:"type:uuid;not null;index"`
	Direction          int       `gorm:"not null"`
	Date               time.Time `gorm:"type:date;not null"`
	WarehouseID        uuid.UUID `gorm:"type:uuid;not null"`
	DeliveryNoteNumber string    `gorm:"size:64"`
	Position           int       `gorm:"not null"`

	Lines []ShipmentLineDTO `gorm:"foreignKey:ShipmentID;constraint:OnDelete:CASCADE"`
}

func (ShipmentDTO) TableName() string {
	return "subcontract_shipments"
}

type ShipmentLineDTO struct {
	ShipmentID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Position   int       `gorm:"primaryKey;autoIncrement:false"`
	ProductID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Quantity   int       `gorm:"not null"`
	DefectQty  int       `gorm:"not null;default:0"`
	WastageQty int       `gorm:"not null;default:0"`
}

func (ShipmentLineDTO) TableName() string {
	return "subcontract_shipment_lines"
}

// CorrectionDTO is one subcontract_item_corrections audit row.
type CorrectionDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID  `gorm:"type:uuid;not null"`
	Previous    ReceiptDTO `gorm:"embedded;embeddedPrefix:previous_"`
	Corrected   ReceiptDTO `gorm:"embedded;embeddedPrefix:corrected_"`
	Note        string     `gorm:"type:text"`
	CorrectedAt time.Time  `gorm:"not null"`
	Position    int        `gorm:"not null"`
}

func (CorrectionDTO) TableName() string {
	return "subcontract_item_corrections"
}

// Models lists every table of the aggregate, for migrations.
func Models() []any {
	return []any{&OrderDTO{}, &ItemDTO{}, &ShipmentDTO{}, &ShipmentLineDTO{}, &CorrectionDTO{}}
}

func receiptFromDomain(r order.Receipt) ReceiptDTO {
	return ReceiptDTO{ReturnedQty: r.Returned, DefectQty: r.Defect, WastageQty: r.Wastage}
}

func (r ReceiptDTO) toDomain() order.Receipt {
	return order.Receipt{Returned: r.ReturnedQty, Defect: r.DefectQty, Wastage: r.WastageQty}
}

// fromDomain maps the full aggregate, children included.
func fromDomain(o *order.Order) OrderDTO {
	s := o.Snapshot()
	orderID := s.ID.Bytes()

	dto := OrderDTO{
		ID:                 orderID,
		Number:             s.Number,
		SubcontractorID:    s.Subcontractor.ID.Bytes(),
		SubcontractorName:  s.Subcontractor.Name,
		Operation:          s.Operation,
		IssuedDate:         s.IssuedDate,
		ExpectedReturnDate: s.ExpectedReturnDate,
		Status:             int(s.Status),
		Version:            s.Version,
		Items:              make([]ItemDTO, 0, len(s.Items)),
		Shipments:          make([]ShipmentDTO, 0, len(s.Shipments)),
		Corrections:        make([]CorrectionDTO, 0, len(s.Corrections)),
	}
	if s.EstimatedCost != nil {
		dto.EstimatedCost = decimal.NewNullDecimal(*s.EstimatedCost)
	}

	for i, item := range s.Items {
		dto.Items = append(dto.Items, ItemDTO{
			ID:          item.ID().Bytes(),
			OrderID:     orderID,
			ProductID:   item.ProductID().Bytes(),
			ProductName: item.ProductName(),
			ProductCode: item.ProductCode(),
			IssuedQty:   item.IssuedQty(),
			Received:    receiptFromDomain(item.Received()),
			Position:    i,
		})
	}

	for i, shipment := range s.Shipments {
		lines := make([]ShipmentLineDTO, 0, len(shipment.Lines()))
		for j, line := range shipment.Lines() {
			lines = append(lines, ShipmentLineDTO{
				ShipmentID: shipment.ID().Bytes(),
				Position:   j,
				ProductID:  line.ProductID().Bytes(),
				Quantity:   line.Quantity(),
				DefectQty:  line.DefectQty(),
				WastageQty: line.WastageQty(),
			})
		}
		dto.Shipments = append(dto.Shipments, ShipmentDTO{
			ID:                 shipment.ID().Bytes(),
			OrderID:            orderID,
			Direction:          int(shipment.Direction()),
			Date:               shipment.Date(),
			WarehouseID:        shipment.WarehouseID().Bytes(),
			DeliveryNoteNumber: shipment.DeliveryNoteNumber(),
			Position:           i,
			Lines:              lines,
		})
	}

	for i, c := range s.Corrections {
		dto.Corrections = append(dto.Corrections, CorrectionDTO{
			ID:          c.ID().Bytes(),
			OrderID:     orderID,
			ProductID:   c.ProductID().Bytes(),
			Previous:    receiptFromDomain(c.Previous()),
			Corrected:   receiptFromDomain(c.Corrected()),
			Note:        c.Note(),
			CorrectedAt: c.CorrectedAt(),
			Position:    i,
		})
	}

	return dto
}

// toDomain rebuilds the aggregate through order.RestoreOrder. Children must be
// loaded in position order.
func toDomain(dto OrderDTO) (*order.Order, error) {
	snapshot := order.Snapshot{
		Number:             dto.Number,
		Subcontractor:      order.Subcontractor{Name: dto.SubcontractorName},
		Operation:          dto.Operation,
		IssuedDate:         dto.IssuedDate,
		ExpectedReturnDate: dto.ExpectedReturnDate,
		Status:             order.Status(dto.Status),
		Version:            dto.Version,
	}
	if dto.EstimatedCost.Valid {
		cost := dto.EstimatedCost.Decimal
		snapshot.EstimatedCost = &cost
	}

	var err error
	if snapshot.ID, err = uuidFrom(dto.ID); err != nil {
		return nil, err
	}
	if snapshot.Subcontractor.ID, err = uuidFrom(dto.SubcontractorID); err != nil {
		return nil, err
	}

	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		snapshot.Items = append(snapshot.Items, item)
	}

	for _, shipmentDTO := range dto.Shipments {
		shipment, shipmentErr := shipmentToDomain(shipmentDTO)
		if shipmentErr != nil {
			return nil, shipmentErr
		}
		snapshot.Shipments = append(snapshot.Shipments, shipment)
	}

	for _, correctionDTO := range dto.Corrections {
		correction, correctionErr := correctionToDomain(correctionDTO)
		if correctionErr != nil {
			return nil, correctionErr
		}
		snapshot.Corrections = append(snapshot.Corrections, correction)
	}

	return order.RestoreOrder(snapshot)
}

func itemToDomain(dto ItemDTO) (*order.Item, error) {
	id, err := uuidFrom(dto.ID)
	if err != nil {
		return nil, err
	}
	productID, err := uuidFrom(dto.ProductID)
	if err != nil {
		return nil, err
	}
	return order.RestoreItem(id, productID, dto.ProductName, dto.ProductCode, dto.IssuedQty, dto.Received.toDomain())
}

func shipmentToDomain(dto ShipmentDTO) (order.Shipment, error) {
	id, err := uuidFrom(dto.ID)
	if err != nil {
		return order.Shipment{}, err
	}
	warehouseID, err := uuidFrom(dto.WarehouseID)
	if err != nil {
		return order.Shipment{}, err
	}

	lines := make([]order.ShipmentLine, 0, len(dto.Lines))
	for _, lineDTO := range dto.Lines {
		productID, lineErr := uuidFrom(lineDTO.ProductID)
		if lineErr != nil {
			return order.Shipment{}, lineErr
		}
		line, lineErr := order.NewShipmentLine(productID, lineDTO.Quantity, lineDTO.DefectQty, lineDTO.WastageQty)
		if lineErr != nil {
			return order.Shipment{}, lineErr
		}
		lines = append(lines, line)
	}

	return order.RestoreShipment(id, order.Direction(dto.Direction), dto.Date, warehouseID, dto.DeliveryNoteNumber, lines)
}

func correctionToDomain(dto CorrectionDTO) (order.ItemCorrection, error) {
	id, err := uuidFrom(dto.ID)
	if err != nil {
		return order.ItemCorrection{}, err
	}
	productID, err := uuidFrom(dto.ProductID)
	if err != nil {
		return order.ItemCorrection{}, err
	}
	return order.RestoreItemCorrection(
		id, productID, dto.Previous.toDomain(), dto.Corrected.toDomain(), dto.Note, dto.CorrectedAt)
}

func uuidFrom(id uuid.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromBytes(id[:])
}
