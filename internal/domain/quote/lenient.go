package quote

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Los campos numéricos del formulario llegan como número o como texto de un input.
// Un valor vacío o inválido no rechaza el formulario: los decimales obligatorios valen 0,
// los opcionales quedan en null y los enteros en 0.

type lenientDecimal decimal.Decimal

func (d *lenientDecimal) UnmarshalJSON(b []byte) error {
	*d = lenientDecimal(numeric(jsonScalar(b)))
	return nil
}

func (d lenientDecimal) value() decimal.Decimal { return decimal.Decimal(d) }

type lenientNullDecimal decimal.NullDecimal

func (d *lenientNullDecimal) UnmarshalJSON(b []byte) error {
	v, err := decimal.NewFromString(strings.TrimSpace(jsonScalar(b)))
	*d = lenientNullDecimal{Decimal: v, Valid: err == nil}
	return nil
}

func (d lenientNullDecimal) value() decimal.NullDecimal { return decimal.NullDecimal(d) }

type lenientInt int

func (n *lenientInt) UnmarshalJSON(b []byte) error {
	*n = lenientInt(numeric(jsonScalar(b)).IntPart())
	return nil
}

// jsonScalar devuelve el texto de un string JSON o el literal crudo (número, null, bool).
func jsonScalar(b []byte) string {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		return s
	}
	return string(b)
}

func (it *ItemForm) UnmarshalJSON(b []byte) error {
	type plain ItemForm
	aux := struct {
		*plain
		Quantity        lenientDecimal `json:"quantity"`
		UnitPrice       lenientDecimal `json:"unit_price"`
		DiscountPercent lenientDecimal `json:"discount_percent"`
	}{plain: (*plain)(it)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	it.Quantity = aux.Quantity.value()
	it.UnitPrice = aux.UnitPrice.value()
	it.DiscountPercent = aux.DiscountPercent.value()
	return nil
}

func (a *ItemAttributesForm) UnmarshalJSON(b []byte) error {
	type plain ItemAttributesForm
	aux := struct {
		*plain
		Weight lenientDecimal `json:"weight"`
		Volume lenientDecimal `json:"volume"`
		Length lenientDecimal `json:"length"`
		Width  lenientDecimal `json:"width"`
		Height lenientDecimal `json:"height"`
	}{plain: (*plain)(a)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	a.Weight = aux.Weight.value()
	a.Volume = aux.Volume.value()
	a.Length = aux.Length.value()
	a.Width = aux.Width.value()
	a.Height = aux.Height.value()
	return nil
}

func (c *CargoForm) UnmarshalJSON(b []byte) error {
	type plain CargoForm
	aux := struct {
		*plain
		Quantity       lenientInt         `json:"quantity"`
		UnitWeightKg   lenientNullDecimal `json:"unit_weight_kg"`
		UnitVolumeCbm  lenientNullDecimal `json:"unit_volume_cbm"`
		LengthCm       lenientNullDecimal `json:"length_cm"`
		WidthCm        lenientNullDecimal `json:"width_cm"`
		HeightCm       lenientNullDecimal `json:"height_cm"`
		TemperatureMin lenientNullDecimal `json:"temperature_min"`
		TemperatureMax lenientNullDecimal `json:"temperature_max"`
	}{plain: (*plain)(c)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	c.Quantity = int(aux.Quantity)
	c.UnitWeightKg = aux.UnitWeightKg.value()
	c.UnitVolumeCbm = aux.UnitVolumeCbm.value()
	c.LengthCm = aux.LengthCm.value()
	c.WidthCm = aux.WidthCm.value()
	c.HeightCm = aux.HeightCm.value()
	c.TemperatureMin = aux.TemperatureMin.value()
	c.TemperatureMax = aux.TemperatureMax.value()
	return nil
}

func (o *OptionForm) UnmarshalJSON(b []byte) error {
	type plain OptionForm
	aux := struct {
		*plain
		TotalAmount     lenientDecimal `json:"total_amount"`
		TransitTimeDays lenientInt     `json:"transit_time_days"`
	}{plain: (*plain)(o)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	o.TotalAmount = aux.TotalAmount.value()
	o.TransitTimeDays = int(aux.TransitTimeDays)
	return nil
}

func (l *LegForm) UnmarshalJSON(b []byte) error {
	type plain LegForm
	aux := struct {
		*plain
		SequenceNumber  lenientInt `json:"sequence_number"`
		TransitTimeDays lenientInt `json:"transit_time_days"`
	}{plain: (*plain)(l)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	l.SequenceNumber = int(aux.SequenceNumber)
	l.TransitTimeDays = int(aux.TransitTimeDays)
	return nil
}

func (c *ChargeForm) UnmarshalJSON(b []byte) error {
	type plain ChargeForm
	aux := struct {
		*plain
		Amount    lenientDecimal `json:"amount"`
		UnitPrice lenientDecimal `json:"unit_price"`
		Quantity  lenientDecimal `json:"quantity"`
	}{plain: (*plain)(c)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	c.Amount = aux.Amount.value()
	c.UnitPrice = aux.UnitPrice.value()
	c.Quantity = aux.Quantity.value()
	return nil
}
