package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Cotizador-api/internal/domain"
	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
	"github.com/jhoicas/Cotizador-api/internal/domain/repository"
)

var _ repository.QuoteRepository = (*QuoteRepo)(nil)

// QuoteRepo lectura del agregado de cotización y escritura del log de anomalías.
type QuoteRepo struct {
	q  Querier
	tx *TxRunner
}

// NewQuoteRepository construye el adaptador. Con tx != nil el core se lee en un snapshot de solo lectura.
func NewQuoteRepository(q Querier, tx *TxRunner) *QuoteRepo {
	return &QuoteRepo{q: q, tx: tx}
}

const selectQuoteSQL = `
	SELECT q.id::text, COALESCE(q.quote_number, ''), q.tenant_id::text, COALESCE(q.title, ''), q.description, COALESCE(q.status, 'draft'),
	       q.service_type_id::text, q.service_id::text, q.carrier_id::text, q.consignee_id::text,
	       q.origin_port_id::text, q.destination_port_id::text,
	       q.account_id::text, q.contact_id::text, q.opportunity_id::text,
	       q.incoterms, q.regulatory_data->>'trade_direction',
	       q.valid_until, q.pickup_date, q.delivery_deadline,
	       q.vehicle_type, q.special_handling, q.tax_percent, q.shipping_amount,
	       q.terms_conditions, q.notes,
	       a.name, NULLIF(TRIM(CONCAT_WS(' ', c.first_name, c.last_name)), ''), o.name,
	       q.created_at, q.updated_at
	FROM quotes q
	LEFT JOIN accounts a      ON a.id = q.account_id
	LEFT JOIN contacts c      ON c.id = q.contact_id
	LEFT JOIN opportunities o ON o.id = q.opportunity_id
	WHERE q.id = $1`

const selectItemsSQL = `
	SELECT id::text, quote_id::text, line_number, COALESCE(type, 'loose'), COALESCE(product_name, ''),
	       commodity_id::text, aes_hts_id::text, description,
	       COALESCE(quantity, 0), COALESCE(unit_price, 0), COALESCE(discount_percent, 0), weight_kg, volume_cbm,
	       container_type_id::text, container_size_id::text, package_category_id::text, package_size_id::text,
	       COALESCE(attributes, '{}'::jsonb)
	FROM quote_items
	WHERE quote_id = $1
	ORDER BY line_number, id`

const selectCargoSQL = `
	SELECT id::text, quote_id::text, COALESCE(transport_mode, ''), COALESCE(cargo_type, ''), container_type, container_size,
	       container_type_id::text, container_size_id::text, COALESCE(quantity, 1),
	       unit_weight_kg, unit_volume_cbm, length_cm, width_cm, height_cm,
	       COALESCE(is_hazardous, false), hazardous_class, un_number,
	       COALESCE(is_temperature_controlled, false), temperature_min, temperature_max,
	       COALESCE(temperature_unit, 'C'), package_category_id::text, package_size_id::text, remarks
	FROM cargo_details
	WHERE quote_id = $1
	ORDER BY created_at, id`

// LoadCore lee cabecera, ítems y carga dentro de un mismo snapshot.
func (r *QuoteRepo) LoadCore(ctx context.Context, quoteID string) (*entity.CoreAggregate, error) {
	var core *entity.CoreAggregate
	load := func(q Querier) error {
		var err error
		core, err = loadCore(ctx, q, quoteID)
		return err
	}
	if r.tx == nil {
		if err := load(r.q); err != nil {
			return nil, err
		}
		return core, nil
	}
	if err := r.tx.ReadOnly(ctx, load); err != nil {
		return nil, err
	}
	return core, nil
}

func loadCore(ctx context.Context, q Querier, quoteID string) (*entity.CoreAggregate, error) {
	var h entity.Quote
	err := q.QueryRow(ctx, selectQuoteSQL, quoteID).Scan(
		&h.ID, &h.QuoteNumber, &h.TenantID, &h.Title, &h.Description, &h.Status,
		&h.ServiceTypeID, &h.ServiceID, &h.CarrierID, &h.ConsigneeID,
		&h.OriginPortID, &h.DestinationPortID,
		&h.AccountID, &h.ContactID, &h.OpportunityID,
		&h.Incoterms, &h.TradeDirection,
		&h.ValidUntil, &h.PickupDate, &h.DeliveryDeadline,
		&h.VehicleType, &h.SpecialHandling, &h.TaxPercent, &h.ShippingAmount,
		&h.TermsConditions, &h.Notes,
		&h.AccountName, &h.ContactName, &h.OpportunityName,
		&h.CreatedAt, &h.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("select quote: %w", err)
	}
	core := &entity.CoreAggregate{Quote: h}

	rows, err := q.Query(ctx, selectItemsSQL, quoteID)
	if err != nil {
		return nil, fmt.Errorf("select quote items: %w", err)
	}
	for rows.Next() {
		var it entity.LineItem
		if err := rows.Scan(
			&it.ID, &it.QuoteID, &it.LineNumber, &it.Type, &it.ProductName,
			&it.CommodityID, &it.AESHTSID, &it.Description,
			&it.Quantity, &it.UnitPrice, &it.DiscountPercent, &it.WeightKg, &it.VolumeCbm,
			&it.ContainerTypeID, &it.ContainerSizeID, &it.PackageCategoryID, &it.PackageSizeID,
			&it.Attributes,
		); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan quote item: %w", err)
		}
		core.Items = append(core.Items, it)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate quote items: %w", err)
	}

	rows, err = q.Query(ctx, selectCargoSQL, quoteID)
	if err != nil {
		return nil, fmt.Errorf("select cargo: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var c entity.CargoConfiguration
		if err := rows.Scan(
			&c.ID, &c.QuoteID, &c.TransportMode, &c.CargoType, &c.ContainerType, &c.ContainerSize,
			&c.ContainerTypeID, &c.ContainerSizeID, &c.Quantity,
			&c.UnitWeightKg, &c.UnitVolumeCbm, &c.LengthCm, &c.WidthCm, &c.HeightCm,
			&c.IsHazardous, &c.HazardousClass, &c.UNNumber,
			&c.IsTemperatureControlled, &c.TemperatureMin, &c.TemperatureMax,
			&c.TemperatureUnit, &c.PackageCategoryID, &c.PackageSizeID, &c.Remarks,
		); err != nil {
			return nil, fmt.Errorf("scan cargo: %w", err)
		}
		core.Cargo = append(core.Cargo, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cargo: %w", err)
	}
	return core, nil
}

const selectLatestVersionSQL = `
	SELECT id::text, quote_id::text, tenant_id::text, version_number, created_at
	FROM quotation_versions
	WHERE quote_id = $1
	ORDER BY version_number DESC
	LIMIT 1`

const selectOptionsSQL = `
	SELECT id::text, quotation_version_id::text, option_name, COALESCE(is_selected, false),
	       total_amount, currency, transit_time_days
	FROM quotation_version_options
	WHERE quotation_version_id = $1
	ORDER BY created_at, id`

const selectLegsSQL = `
	SELECT l.id::text, l.quotation_version_option_id::text, COALESCE(l.sort_order, 0), COALESCE(l.mode, ''),
	       l.leg_type, l.service_only_category, l.carrier_id::text, COALESCE(l.carrier_name, ca.carrier_name),
	       l.origin_location_id::text, l.destination_location_id::text,
	       COALESCE(l.origin_location, po.location_name), COALESCE(l.destination_location, pd.location_name),
	       l.transit_time_hours, l.departure_date, l.arrival_date, l.voyage_number, l.flight_number
	FROM quotation_version_option_legs l
	LEFT JOIN carriers ca        ON ca.id = l.carrier_id
	LEFT JOIN ports_locations po ON po.id = l.origin_location_id
	LEFT JOIN ports_locations pd ON pd.id = l.destination_location_id
	WHERE l.quotation_version_option_id = ANY($1::uuid[])
	ORDER BY l.quotation_version_option_id, l.sort_order, l.id`

const selectChargesSQL = `
	SELECT c.id::text, c.leg_id::text, c.category_id::text, cc.code, c.charge_side_id::text, s.code,
	       c.basis_id::text, cb.code, c.currency_id::text, cur.code,
	       c.quantity, c.rate, c.amount, c.note
	FROM quote_charges c
	LEFT JOIN charge_categories cc ON cc.id = c.category_id
	LEFT JOIN charge_sides s       ON s.id = c.charge_side_id
	LEFT JOIN charge_bases cb      ON cb.id = c.basis_id
	LEFT JOIN currencies cur       ON cur.id = c.currency_id
	WHERE c.leg_id = ANY($1::uuid[])
	ORDER BY c.leg_id, c.created_at, c.id`

// LoadLatestVersion lee la última versión con su árbol completo; nil si la cotización no tiene versiones.
func (r *QuoteRepo) LoadLatestVersion(ctx context.Context, quoteID string) (*entity.QuotationVersion, error) {
	var v entity.QuotationVersion
	err := r.q.QueryRow(ctx, selectLatestVersionSQL, quoteID).Scan(&v.ID, &v.QuoteID, &v.TenantID, &v.VersionNumber, &v.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select latest version: %w", err)
	}

	rows, err := r.q.Query(ctx, selectOptionsSQL, v.ID)
	if err != nil {
		return nil, fmt.Errorf("select options: %w", err)
	}
	var optionIDs []string
	for rows.Next() {
		var o entity.VersionOption
		if err := rows.Scan(&o.ID, &o.VersionID, &o.OptionName, &o.IsSelected, &o.TotalAmount, &o.Currency, &o.TransitTimeDays); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan option: %w", err)
		}
		v.Options = append(v.Options, o)
		optionIDs = append(optionIDs, o.ID)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate options: %w", err)
	}
	if len(optionIDs) == 0 {
		return &v, nil
	}

	legs, err := r.loadLegs(ctx, optionIDs)
	if err != nil {
		return nil, err
	}
	legIDs := make([]string, 0, len(legs))
	for _, l := range legs {
		legIDs = append(legIDs, l.ID)
	}
	charges, err := r.loadCharges(ctx, legIDs)
	if err != nil {
		return nil, err
	}
	assembleVersion(&v, legs, charges)
	return &v, nil
}

func (r *QuoteRepo) loadLegs(ctx context.Context, optionIDs []string) ([]entity.OptionLeg, error) {
	rows, err := r.q.Query(ctx, selectLegsSQL, optionIDs)
	if err != nil {
		return nil, fmt.Errorf("select legs: %w", err)
	}
	defer rows.Close()
	var legs []entity.OptionLeg
	for rows.Next() {
		var l entity.OptionLeg
		if err := rows.Scan(
			&l.ID, &l.OptionID, &l.SortOrder, &l.TransportMode,
			&l.LegType, &l.ServiceOnlyCategory, &l.CarrierID, &l.CarrierName,
			&l.OriginLocationID, &l.DestinationLocationID,
			&l.OriginLocationName, &l.DestinationLocationName,
			&l.TransitTimeHours, &l.DepartureDate, &l.ArrivalDate, &l.VoyageNumber, &l.FlightNumber,
		); err != nil {
			return nil, fmt.Errorf("scan leg: %w", err)
		}
		legs = append(legs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate legs: %w", err)
	}
	return legs, nil
}

func (r *QuoteRepo) loadCharges(ctx context.Context, legIDs []string) ([]entity.LegCharge, error) {
	if len(legIDs) == 0 {
		return nil, nil
	}
	rows, err := r.q.Query(ctx, selectChargesSQL, legIDs)
	if err != nil {
		return nil, fmt.Errorf("select charges: %w", err)
	}
	defer rows.Close()
	var charges []entity.LegCharge
	for rows.Next() {
		var c entity.LegCharge
		if err := rows.Scan(
			&c.ID, &c.LegID, &c.CategoryID, &c.CategoryCode, &c.ChargeSideID, &c.SideCode,
			&c.BasisID, &c.Basis, &c.CurrencyID, &c.Currency,
			&c.Quantity, &c.UnitPrice, &c.Amount, &c.Note,
		); err != nil {
			return nil, fmt.Errorf("scan charge: %w", err)
		}
		charges = append(charges, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate charges: %w", err)
	}
	return charges, nil
}

// assembleVersion cuelga tramos de sus opciones y cargos de sus tramos, conservando el orden de lectura.
func assembleVersion(v *entity.QuotationVersion, legs []entity.OptionLeg, charges []entity.LegCharge) {
	chargesByLeg := make(map[string][]entity.LegCharge)
	for _, c := range charges {
		chargesByLeg[c.LegID] = append(chargesByLeg[c.LegID], c)
	}
	legsByOption := make(map[string][]entity.OptionLeg)
	for _, l := range legs {
		l.Charges = chargesByLeg[l.ID]
		legsByOption[l.OptionID] = append(legsByOption[l.OptionID], l)
	}
	for i := range v.Options {
		v.Options[i].Legs = legsByOption[v.Options[i].ID]
	}
}

const selectLatestVersionHeadSQL = `
	SELECT id::text, quote_id::text, tenant_id::text, version_number
	FROM quotation_versions
	WHERE quote_id = $1
	ORDER BY version_number DESC
	LIMIT 1`

const selectProjectionSQL = `
	SELECT o.id::text, l.id::text, c.id::text
	FROM quotation_version_options o
	LEFT JOIN quotation_version_option_legs l ON l.quotation_version_option_id = o.id
	LEFT JOIN quote_charges c                 ON c.leg_id = l.id
	WHERE o.quotation_version_id = $1
	ORDER BY o.created_at, o.id, l.sort_order, l.id, c.id`

// projectionRow una fila del join opción → tramo → cargo; tramo y cargo pueden ser NULL.
type projectionRow struct {
	optionID string
	legID    *string
	chargeID *string
}

// LoadLatestVersionProjection lee solo los identificadores del árbol de la última versión.
func (r *QuoteRepo) LoadLatestVersionProjection(ctx context.Context, quoteID string) (*entity.VersionProjection, error) {
	var p entity.VersionProjection
	err := r.q.QueryRow(ctx, selectLatestVersionHeadSQL, quoteID).Scan(&p.VersionID, &p.QuoteID, &p.TenantID, &p.VersionNumber)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select latest version: %w", err)
	}

	rows, err := r.q.Query(ctx, selectProjectionSQL, p.VersionID)
	if err != nil {
		return nil, fmt.Errorf("select projection: %w", err)
	}
	defer rows.Close()
	var flat []projectionRow
	for rows.Next() {
		var pr projectionRow
		if err := rows.Scan(&pr.optionID, &pr.legID, &pr.chargeID); err != nil {
			return nil, fmt.Errorf("scan projection: %w", err)
		}
		flat = append(flat, pr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate projection: %w", err)
	}
	p.Options = assembleProjection(flat)
	return &p, nil
}

// assembleProjection reconstruye el árbol a partir de las filas del LEFT JOIN.
func assembleProjection(flat []projectionRow) []entity.OptionProjection {
	var out []entity.OptionProjection
	optIdx := make(map[string]int)
	legIdx := make(map[string]int)
	for _, r := range flat {
		oi, ok := optIdx[r.optionID]
		if !ok {
			oi = len(out)
			optIdx[r.optionID] = oi
			out = append(out, entity.OptionProjection{ID: r.optionID})
		}
		if r.legID == nil {
			continue
		}
		li, ok := legIdx[*r.legID]
		if !ok {
			li = len(out[oi].Legs)
			legIdx[*r.legID] = li
			out[oi].Legs = append(out[oi].Legs, entity.LegProjection{ID: *r.legID})
		}
		if r.chargeID != nil {
			out[oi].Legs[li].ChargeIDs = append(out[oi].Legs[li].ChargeIDs, *r.chargeID)
		}
	}
	return out
}

const appendAnomalySQL = `
	UPDATE quotation_versions
	SET anomalies = COALESCE(anomalies, '[]'::jsonb) || jsonb_build_array($2::jsonb)
	WHERE id = $1`

// AppendAnomaly agrega la anomalía al arreglo jsonb de la versión (append-only).
func (r *QuoteRepo) AppendAnomaly(ctx context.Context, versionID string, anomaly entity.Anomaly) error {
	body, err := json.Marshal(anomaly)
	if err != nil {
		return fmt.Errorf("serializar anomalía: %w", err)
	}
	tag, err := r.q.Exec(ctx, appendAnomalySQL, versionID, body)
	if err != nil {
		return fmt.Errorf("append anomaly: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
