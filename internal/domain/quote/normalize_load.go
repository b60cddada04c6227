package quote

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
	"github.com/jhoicas/Cotizador-api/internal/domain/identity"
)

const (
	dateLayout      = "2006-01-02"
	defaultCurrency = "USD"
	hoursPerDay     = 24
)

// ToForm convierte el agregado persistido en valores de formulario.
// version puede ser nil (aún no llegó o no existe): las opciones quedan vacías.
// Es una función pura: mismas entradas, mismo formulario.
func ToForm(core *entity.CoreAggregate, version *entity.QuotationVersion, cat Catalogs) QuoteForm {
	q := core.Quote
	f := QuoteForm{
		Title:             q.Title,
		Description:       str(q.Description),
		Status:            q.Status,
		ServiceTypeID:     str(q.ServiceTypeID),
		ServiceID:         str(q.ServiceID),
		Incoterms:         str(q.Incoterms),
		TradeDirection:    str(q.TradeDirection),
		CarrierID:         str(q.CarrierID),
		ConsigneeID:       str(q.ConsigneeID),
		OriginPortID:      str(q.OriginPortID),
		DestinationPortID: str(q.DestinationPortID),
		AccountID:         str(q.AccountID),
		ContactID:         str(q.ContactID),
		OpportunityID:     str(q.OpportunityID),
		ValidUntil:        day(q.ValidUntil),
		PickupDate:        day(q.PickupDate),
		DeliveryDeadline:  day(q.DeliveryDeadline),
		VehicleType:       str(q.VehicleType),
		SpecialHandling:   str(q.SpecialHandling),
		TaxPercent:        decText(q.TaxPercent),
		ShippingAmount:    decText(q.ShippingAmount),
		TermsConditions:   str(q.TermsConditions),
		Notes:             str(q.Notes),
		Items:             make([]ItemForm, 0, len(core.Items)),
		Cargo:             make([]CargoForm, 0, len(core.Cargo)),
		Options:           OptionsToForm(version),
	}

	if len(core.Items) > 0 {
		first := core.Items[0]
		f.Commodity = str(first.Description)
		if f.Commodity == "" {
			f.Commodity = first.ProductName
		}
		f.HTSCode = first.Attributes.HSCode
		var weight, volume decimal.Decimal
		for _, it := range core.Items {
			weight = weight.Add(itemWeight(it))
			volume = volume.Add(itemVolume(it))
		}
		f.TotalWeight = weight.String()
		f.TotalVolume = volume.String()
	}

	for _, it := range core.Items {
		f.Items = append(f.Items, itemToForm(it))
	}
	for _, c := range core.Cargo {
		f.Cargo = append(f.Cargo, cargoToForm(c))
	}

	if f.ServiceTypeID == "" {
		f.ServiceTypeID = InferServiceTypeID(version, cat.ServiceTypes)
	}
	return f
}

// OptionsToForm proyecta las opciones de la versión; nil produce una lista vacía.
func OptionsToForm(version *entity.QuotationVersion) []OptionForm {
	if version == nil {
		return []OptionForm{}
	}
	out := make([]OptionForm, 0, len(version.Options))
	for _, o := range version.Options {
		out = append(out, optionToForm(o))
	}
	return out
}

func optionToForm(o entity.VersionOption) OptionForm {
	legs := make([]entity.OptionLeg, len(o.Legs))
	copy(legs, o.Legs)
	sort.SliceStable(legs, func(i, j int) bool { return legs[i].SortOrder < legs[j].SortOrder })

	of := OptionForm{
		ID:         identity.Parse(o.ID),
		OptionName: str(o.OptionName),
		IsPrimary:  o.IsSelected,
		Currency:   str(o.Currency),
		Legs:       make([]LegForm, 0, len(legs)),
	}
	if of.Currency == "" {
		of.Currency = defaultCurrency
	}

	totalHours, hasHours := 0, false
	sellTotal := decimal.Zero
	for _, l := range legs {
		of.Legs = append(of.Legs, legToForm(l))
		if l.TransitTimeHours != nil {
			totalHours += *l.TransitTimeHours
			hasHours = true
		}
		for _, c := range l.Charges {
			if IsSellSide(str(c.SideCode)) {
				sellTotal = sellTotal.Add(chargeAmount(c))
			}
		}
	}

	switch {
	case o.TransitTimeDays != nil:
		of.TransitTimeDays = *o.TransitTimeDays
	case hasHours:
		of.TransitTimeDays = ceilDays(totalHours)
	}

	if o.TotalAmount.Valid && o.TotalAmount.Decimal.IsPositive() {
		of.TotalAmount = o.TotalAmount.Decimal
	} else {
		of.TotalAmount = sellTotal
	}
	return of
}

func legToForm(l entity.OptionLeg) LegForm {
	lf := LegForm{
		ID:                      identity.Parse(l.ID),
		SequenceNumber:          l.SortOrder,
		TransportMode:           l.TransportMode,
		LegType:                 str(l.LegType),
		ServiceOnlyCategory:     str(l.ServiceOnlyCategory),
		CarrierID:               str(l.CarrierID),
		CarrierName:             str(l.CarrierName),
		OriginLocationID:        str(l.OriginLocationID),
		DestinationLocationID:   str(l.DestinationLocationID),
		OriginLocationName:      str(l.OriginLocationName),
		DestinationLocationName: str(l.DestinationLocationName),
		VoyageNumber:            str(l.VoyageNumber),
		FlightNumber:            str(l.FlightNumber),
		DepartureDate:           day(l.DepartureDate),
		ArrivalDate:             day(l.ArrivalDate),
		Charges:                 make([]ChargeForm, 0, len(l.Charges)),
	}
	if lf.LegType == "" {
		lf.LegType = entity.LegTypeTransport
	}
	if l.TransitTimeHours != nil {
		lf.TransitTimeDays = ceilDays(*l.TransitTimeHours)
	}
	for _, c := range l.Charges {
		lf.Charges = append(lf.Charges, ChargeForm{
			ID:           identity.Parse(c.ID),
			CategoryID:   str(c.CategoryID),
			ChargeSideID: str(c.ChargeSideID),
			Side:         str(c.SideCode),
			Amount:       chargeAmount(c),
			Currency:     str(c.Currency),
			Basis:        str(c.Basis),
			UnitPrice:    orZero(c.UnitPrice),
			Quantity:     orZero(c.Quantity),
			Note:         str(c.Note),
		})
	}
	return lf
}

func itemToForm(it entity.LineItem) ItemForm {
	a := it.Attributes
	return ItemForm{
		LineNumber:        it.LineNumber,
		Type:              it.Type,
		ContainerTypeID:   str(it.ContainerTypeID),
		ContainerSizeID:   str(it.ContainerSizeID),
		ProductName:       it.ProductName,
		CommodityID:       str(it.CommodityID),
		AESHTSID:          str(it.AESHTSID),
		Description:       str(it.Description),
		Quantity:          it.Quantity,
		UnitPrice:         it.UnitPrice,
		DiscountPercent:   it.DiscountPercent,
		PackageCategoryID: str(it.PackageCategoryID),
		PackageSizeID:     str(it.PackageSizeID),
		Attributes: ItemAttributesForm{
			Weight:    itemWeight(it),
			Volume:    itemVolume(it),
			Length:    deref(a.Length),
			Width:     deref(a.Width),
			Height:    deref(a.Height),
			HSCode:    a.HSCode,
			Hazmat:    a.Hazmat,
			Stackable: a.Stackable != nil && *a.Stackable,
		},
	}
}

func cargoToForm(c entity.CargoConfiguration) CargoForm {
	unit := c.TemperatureUnit
	if unit == "" {
		unit = "C"
	}
	return CargoForm{
		TransportMode:           c.TransportMode,
		CargoType:               c.CargoType,
		ContainerType:           str(c.ContainerType),
		ContainerSize:           str(c.ContainerSize),
		ContainerTypeID:         str(c.ContainerTypeID),
		ContainerSizeID:         str(c.ContainerSizeID),
		Quantity:                c.Quantity,
		UnitWeightKg:            c.UnitWeightKg,
		UnitVolumeCbm:           c.UnitVolumeCbm,
		LengthCm:                c.LengthCm,
		WidthCm:                 c.WidthCm,
		HeightCm:                c.HeightCm,
		IsHazardous:             c.IsHazardous,
		HazardousClass:          str(c.HazardousClass),
		UNNumber:                str(c.UNNumber),
		IsTemperatureControlled: c.IsTemperatureControlled,
		TemperatureMin:          c.TemperatureMin,
		TemperatureMax:          c.TemperatureMax,
		TemperatureUnit:         unit,
		PackageCategoryID:       str(c.PackageCategoryID),
		PackageSizeID:           str(c.PackageSizeID),
		Remarks:                 str(c.Remarks),
	}
}

// IsSellSide identifica cargos del lado venta por su código ("sell", "revenue", ...).
func IsSellSide(code string) bool {
	k := NormalizeKey(code)
	return strings.Contains(k, "sell") || strings.Contains(k, "revenue")
}

// chargeAmount monto del cargo; si no está guardado se descompone en cantidad × precio unitario.
func chargeAmount(c entity.LegCharge) decimal.Decimal {
	if c.Amount.Valid {
		return c.Amount.Decimal
	}
	if c.Quantity.Valid && c.UnitPrice.Valid {
		return c.Quantity.Decimal.Mul(c.UnitPrice.Decimal)
	}
	return decimal.Zero
}

func itemWeight(it entity.LineItem) decimal.Decimal {
	if it.WeightKg.Valid {
		return it.WeightKg.Decimal
	}
	return deref(it.Attributes.Weight)
}

func itemVolume(it entity.LineItem) decimal.Decimal {
	if it.VolumeCbm.Valid {
		return it.VolumeCbm.Decimal
	}
	return deref(it.Attributes.Volume)
}

// ceilDays convierte horas a días redondeando hacia arriba (25h → 2).
func ceilDays(hours int) int {
	if hours <= 0 {
		return 0
	}
	return (hours + hoursPerDay - 1) / hoursPerDay
}

func str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func day(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

func decText(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return d.Decimal.String()
}

func orZero(d decimal.NullDecimal) decimal.Decimal {
	if !d.Valid {
		return decimal.Zero
	}
	return d.Decimal
}

func deref(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}
