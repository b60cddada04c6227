package entity

import "github.com/shopspring/decimal"

// CargoConfiguration describe unidades físicas de transporte de la cotización.
// Es independiente de LineItem: misma carga, vista para planeación de transporte.
type CargoConfiguration struct {
	ID                      string
	QuoteID                 string
	TransportMode           string // ocean | air | road | rail
	CargoType               string // FCL | LCL | Breakbulk | RoRo
	ContainerType           *string
	ContainerSize           *string
	ContainerTypeID         *string
	ContainerSizeID         *string
	Quantity                int
	UnitWeightKg            decimal.NullDecimal
	UnitVolumeCbm           decimal.NullDecimal
	LengthCm                decimal.NullDecimal
	WidthCm                 decimal.NullDecimal
	HeightCm                decimal.NullDecimal
	IsHazardous             bool
	HazardousClass          *string
	UNNumber                *string
	IsTemperatureControlled bool
	TemperatureMin          decimal.NullDecimal
	TemperatureMax          decimal.NullDecimal
	TemperatureUnit         string // C | F
	PackageCategoryID       *string
	PackageSizeID           *string
	Remarks                 *string
}
