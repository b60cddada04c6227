package quote

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
	"github.com/jhoicas/Cotizador-api/internal/domain/identity"
)

var hundred = decimal.NewFromInt(100)

// BuildPayload arma el payload atómico a partir del formulario.
// quoteID vacío o no canónico produce una cotización nueva (sin clave id).
// Toda FK pasa por identity.Nullable: "" y valores temporales se convierten en null.
func BuildPayload(f QuoteForm, quoteID, tenantID string) AtomicPayload {
	status := f.Status
	if status == "" {
		status = entity.QuoteStatusDraft
	}
	p := AtomicPayload{
		Quote: QuotePayload{
			ID:                identity.Parse(quoteID).Ptr(),
			Title:             f.Title,
			Description:       textOrNil(f.Description),
			Status:            status,
			ServiceTypeID:     identity.Nullable(f.ServiceTypeID),
			ServiceID:         identity.Nullable(f.ServiceID),
			CarrierID:         identity.Nullable(f.CarrierID),
			ConsigneeID:       identity.Nullable(f.ConsigneeID),
			OriginPortID:      identity.Nullable(f.OriginPortID),
			DestinationPortID: identity.Nullable(f.DestinationPortID),
			AccountID:         identity.Nullable(f.AccountID),
			ContactID:         identity.Nullable(f.ContactID),
			OpportunityID:     identity.Nullable(f.OpportunityID),
			Incoterms:         textOrNil(f.Incoterms),
			ValidUntil:        dateOrNil(f.ValidUntil),
			PickupDate:        dateOrNil(f.PickupDate),
			DeliveryDeadline:  dateOrNil(f.DeliveryDeadline),
			VehicleType:       textOrNil(f.VehicleType),
			SpecialHandling:   textOrNil(f.SpecialHandling),
			TaxPercent:        numeric(f.TaxPercent),
			ShippingAmount:    numeric(f.ShippingAmount),
			TermsConditions:   textOrNil(f.TermsConditions),
			Notes:             textOrNil(f.Notes),
			TenantID:          identity.Nullable(tenantID),
			RegulatoryData:    RegulatoryData{TradeDirection: textOrNil(f.TradeDirection)},
		},
		Items:               make([]ItemPayload, 0, len(f.Items)),
		CargoConfigurations: make([]CargoPayload, 0, len(f.Cargo)),
		Options:             make([]OptionPayload, 0, len(f.Options)),
	}

	for i, it := range f.Items {
		p.Items = append(p.Items, itemPayload(i+1, it))
	}
	for _, c := range f.Cargo {
		p.CargoConfigurations = append(p.CargoConfigurations, cargoPayload(c))
	}
	for _, o := range f.Options {
		p.Options = append(p.Options, optionPayload(o))
	}
	return p
}

// LineAmounts descuento y total de una línea: bruto = cantidad × precio; descuento = bruto × %/100.
func LineAmounts(qty, price, discountPct decimal.Decimal) (discount, total decimal.Decimal) {
	gross := qty.Mul(price)
	discount = gross.Mul(discountPct).Div(hundred)
	return discount, gross.Sub(discount)
}

func itemPayload(lineNumber int, it ItemForm) ItemPayload {
	discount, total := LineAmounts(it.Quantity, it.UnitPrice, it.DiscountPercent)
	itemType := it.Type
	if itemType == "" {
		itemType = entity.ItemTypeLoose
	}
	return ItemPayload{
		LineNumber:        lineNumber,
		Type:              itemType,
		ProductName:       it.ProductName,
		CommodityID:       identity.Nullable(it.CommodityID),
		AESHTSID:          identity.Nullable(it.AESHTSID),
		Description:       textOrNil(it.Description),
		Quantity:          it.Quantity,
		UnitPrice:         it.UnitPrice,
		DiscountPercent:   it.DiscountPercent,
		DiscountAmount:    discount,
		LineTotal:         total,
		WeightKg:          it.Attributes.Weight,
		VolumeCbm:         it.Attributes.Volume,
		ContainerTypeID:   identity.Nullable(it.ContainerTypeID),
		ContainerSizeID:   identity.Nullable(it.ContainerSizeID),
		PackageCategoryID: identity.Nullable(it.PackageCategoryID),
		PackageSizeID:     identity.Nullable(it.PackageSizeID),
		Attributes:        itemAttributes(it.Attributes),
	}
}

func itemAttributes(a ItemAttributesForm) entity.ItemAttributes {
	out := entity.ItemAttributes{
		Weight: nonZero(a.Weight),
		Volume: nonZero(a.Volume),
		Length: nonZero(a.Length),
		Width:  nonZero(a.Width),
		Height: nonZero(a.Height),
		HSCode: strings.TrimSpace(a.HSCode),
		Hazmat: a.Hazmat,
	}
	if a.Stackable {
		v := true
		out.Stackable = &v
	}
	return out
}

func cargoPayload(c CargoForm) CargoPayload {
	unit := c.TemperatureUnit
	if unit == "" {
		unit = "C"
	}
	return CargoPayload{
		TransportMode:           c.TransportMode,
		CargoType:               c.CargoType,
		ContainerType:           textOrNil(c.ContainerType),
		ContainerSize:           textOrNil(c.ContainerSize),
		ContainerTypeID:         identity.Nullable(c.ContainerTypeID),
		ContainerSizeID:         identity.Nullable(c.ContainerSizeID),
		Quantity:                c.Quantity,
		UnitWeightKg:            c.UnitWeightKg,
		UnitVolumeCbm:           c.UnitVolumeCbm,
		LengthCm:                c.LengthCm,
		WidthCm:                 c.WidthCm,
		HeightCm:                c.HeightCm,
		IsHazardous:             c.IsHazardous,
		HazardousClass:          textOrNil(c.HazardousClass),
		UNNumber:                textOrNil(c.UNNumber),
		IsTemperatureControlled: c.IsTemperatureControlled,
		TemperatureMin:          c.TemperatureMin,
		TemperatureMax:          c.TemperatureMax,
		TemperatureUnit:         unit,
		PackageCategoryID:       identity.Nullable(c.PackageCategoryID),
		PackageSizeID:           identity.Nullable(c.PackageSizeID),
		Remarks:                 textOrNil(c.Remarks),
	}
}

func optionPayload(o OptionForm) OptionPayload {
	currency := strings.TrimSpace(o.Currency)
	if currency == "" {
		currency = defaultCurrency
	}
	op := OptionPayload{
		ID:         o.ID.Ptr(),
		OptionName: textOrNil(o.OptionName),
		IsSelected: o.IsPrimary,
		Currency:   &currency,
		Legs:       make([]LegPayload, 0, len(o.Legs)),
	}
	if o.TotalAmount.IsPositive() {
		total := o.TotalAmount
		op.TotalAmount = &total
	}
	if o.TransitTimeDays > 0 {
		days := o.TransitTimeDays
		op.TransitTimeDays = &days
	}
	for i, l := range o.Legs {
		op.Legs = append(op.Legs, legPayload(i+1, l))
	}
	return op
}

func legPayload(sortOrder int, l LegForm) LegPayload {
	legType := l.LegType
	if legType == "" {
		legType = entity.LegTypeTransport
	}
	lp := LegPayload{
		ID:                      l.ID.Ptr(),
		SortOrder:               sortOrder,
		CarrierID:               identity.Nullable(l.CarrierID),
		CarrierName:             textOrNil(l.CarrierName),
		TransportMode:           l.TransportMode,
		LegType:                 legType,
		ServiceOnlyCategory:     textOrNil(l.ServiceOnlyCategory),
		OriginLocationID:        identity.Nullable(l.OriginLocationID),
		DestinationLocationID:   identity.Nullable(l.DestinationLocationID),
		OriginLocationName:      l.OriginLocationName,
		DestinationLocationName: l.DestinationLocationName,
		DepartureDate:           dateOrNil(l.DepartureDate),
		ArrivalDate:             dateOrNil(l.ArrivalDate),
		VoyageNumber:            textOrNil(l.VoyageNumber),
		FlightNumber:            textOrNil(l.FlightNumber),
		Charges:                 make([]ChargePayload, 0, len(l.Charges)),
	}
	if l.TransitTimeDays > 0 {
		hours := l.TransitTimeDays * hoursPerDay
		lp.TransitTimeHours = &hours
	}
	for _, c := range l.Charges {
		lp.Charges = append(lp.Charges, ChargePayload{
			ID:           c.ID.Ptr(),
			CategoryID:   textOrNil(c.CategoryID),
			ChargeSideID: identity.Nullable(c.ChargeSideID),
			Amount:       c.Amount,
			Currency:     textOrNil(c.Currency),
			Basis:        textOrNil(c.Basis),
			UnitPrice:    c.UnitPrice,
			Quantity:     c.Quantity,
			Note:         textOrNil(c.Note),
		})
	}
	return lp
}

// numeric convierte texto a decimal; vacío o inválido es 0.
func numeric(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}

func textOrNil(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// dateOrNil acepta YYYY-MM-DD o RFC3339 y devuelve el día; cualquier otro valor es null.
func dateOrNil(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if _, err := time.Parse(dateLayout, s); err == nil {
		return &s
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		d := t.Format(dateLayout)
		return &d
	}
	return nil
}

func nonZero(d decimal.Decimal) *decimal.Decimal {
	if d.IsZero() {
		return nil
	}
	return &d
}
