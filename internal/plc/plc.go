// Package plc declares the contract a fieldbus-connected controller must
// satisfy to drive template generation and delivery in production. No
// concrete implementation lives in this module: the production consumer
// speaks a plant-specific Modbus/fieldbus register map that has no
// reference implementation to ground one on here.
package plc

import "github.com/Obstacleee/OptiPallet/internal/model"

// DimensionSource reads the pallet and box dimensions currently staged on
// the controller, for example from holding registers written by an
// operator panel.
type DimensionSource interface {
	ReadPallet() (model.Pallet, error)
	ReadBox() (model.BoxDims, error)
}

// TemplateSink delivers a generated template's placement data back to the
// controller driving the palletizing robot, and reports how many templates
// are available for the operator to page through.
type TemplateSink interface {
	WriteTemplateCount(count int) error
	SendTemplate(template model.Template) error
}
