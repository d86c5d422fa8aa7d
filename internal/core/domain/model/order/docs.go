// Package order implements the subcontract order aggregate: goods issued to an
// external contractor for an operation (dyeing, cut-make-trim, ...) and the
// shipments that carry them out and back.
//
// The package includes:
//   - Status: the lifecycle state machine, kept as a single transition table
//   - ShipmentLedger: the append-only log of outbound and inbound shipments
//   - ItemReconciler: the only code that changes returned/defect/wastage totals
//   - Order: the aggregate root every mutation goes through
//
// Key business rules:
//   - DRAFT -> ISSUED -> IN_PROGRESS -> COMPLETED, and any open status may be CANCELLED
//   - items can only be added while the order is a DRAFT
//   - returned + defect + wastage never exceeds the issued quantity of an item
//   - cumulative outbound quantity never exceeds the issued quantity of an item
//   - a shipment is validated in full before any of its lines is applied
//   - nothing can be recorded against a COMPLETED or CANCELLED order
package order
