// Package kernel holds the primitives shared by every aggregate of the
// subcontract service. Today that is the UUID value object used for order,
// item, shipment, product and warehouse identifiers.
package kernel
