package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Cotizador-api/internal/domain"
	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
	"github.com/jhoicas/Cotizador-api/internal/domain/repository"
)

var _ repository.CatalogRepository = (*CatalogRepo)(nil)

// catalogSource columnas de un catálogo. tenantScoped agrega el filtro por tenant (globales + propias).
type catalogSource struct {
	from         string
	code         string
	name         string
	parent       string
	attributes   string
	tenantScoped bool
	orderBy      string
}

var catalogSources = map[entity.CatalogKind]catalogSource{
	entity.CatalogPorts: {
		from: "ports_locations t", code: "t.location_code", name: "t.location_name",
		attributes: "jsonb_strip_nulls(jsonb_build_object('country', t.country, 'location_type', t.location_type))",
		orderBy:    "t.location_name",
	},
	entity.CatalogCarriers: {
		from: "carriers t", code: "t.scac_code", name: "t.carrier_name",
		attributes: "jsonb_strip_nulls(jsonb_build_object('carrier_type', t.carrier_type))",
		orderBy:    "t.carrier_name", tenantScoped: true,
	},
	entity.CatalogServiceTypes: {
		from: "service_types t LEFT JOIN transport_modes tm ON tm.id = t.transport_mode_id",
		code: "t.code", name: "t.name",
		attributes: "jsonb_strip_nulls(jsonb_build_object('transport_mode', tm.code))",
		orderBy:    "t.name", tenantScoped: true,
	},
	entity.CatalogServices: {
		from: "services t", code: "t.service_code", name: "t.service_name", parent: "t.service_type_id::text",
		orderBy: "t.service_name", tenantScoped: true,
	},
	entity.CatalogCurrencies: {
		from: "currencies t", code: "t.code", name: "t.name", orderBy: "t.code",
	},
	entity.CatalogChargeCategories: {
		from: "charge_categories t", code: "t.code", name: "t.name", orderBy: "t.name",
	},
	entity.CatalogChargeSides: {
		from: "charge_sides t", code: "t.code", name: "t.name", orderBy: "t.code",
	},
	entity.CatalogChargeBases: {
		from: "charge_bases t", code: "t.code", name: "t.name", orderBy: "t.name",
	},
	entity.CatalogAccounts: {
		from: "accounts t", name: "t.name", orderBy: "t.name", tenantScoped: true,
	},
	entity.CatalogContacts: {
		from: "contacts t", name: "CONCAT_WS(' ', t.first_name, t.last_name)", parent: "t.account_id::text",
		attributes: "jsonb_strip_nulls(jsonb_build_object('email', t.email))",
		orderBy:    "t.first_name, t.last_name", tenantScoped: true,
	},
	entity.CatalogOpportunities: {
		from: "opportunities t", name: "t.name", parent: "t.account_id::text",
		attributes: "jsonb_strip_nulls(jsonb_build_object('contact_id', t.contact_id::text, 'stage', t.stage))",
		orderBy:    "t.name", tenantScoped: true,
	},
}

// catalogQuery arma el SELECT de un catálogo. Solo usa fragmentos fijos de catalogSources.
func catalogQuery(kind entity.CatalogKind) (string, bool) {
	src, ok := catalogSources[kind]
	if !ok {
		return "", false
	}
	orNull := func(expr, cast string) string {
		if expr == "" {
			return "NULL::" + cast
		}
		return expr
	}
	sql := fmt.Sprintf(`SELECT t.id::text, COALESCE(%s, ''), COALESCE(%s, ''), COALESCE(%s, ''), %s, %s FROM %s`,
		orNull(src.code, "text"),
		src.name,
		orNull(src.parent, "text"),
		tenantColumn(src),
		orNull(src.attributes, "jsonb"),
		src.from,
	)
	if src.tenantScoped {
		sql += ` WHERE (t.tenant_id IS NULL OR t.tenant_id::text = $1)`
	}
	sql += " ORDER BY " + src.orderBy
	return sql, true
}

func tenantColumn(src catalogSource) string {
	if src.tenantScoped {
		return "COALESCE(t.tenant_id::text, '')"
	}
	return "''"
}

// CatalogRepo lectura de catálogos de referencia y listas CRM.
type CatalogRepo struct {
	q Querier
}

// NewCatalogRepository construye el adaptador.
func NewCatalogRepository(q Querier) *CatalogRepo {
	return &CatalogRepo{q: q}
}

// List devuelve las entradas del catálogo visibles para el tenant.
func (r *CatalogRepo) List(ctx context.Context, kind entity.CatalogKind, tenantID string) ([]entity.CatalogEntry, error) {
	sql, ok := catalogQuery(kind)
	if !ok {
		return nil, fmt.Errorf("%w: catálogo %q", domain.ErrInvalidInput, kind)
	}
	var args []any
	if catalogSources[kind].tenantScoped {
		args = append(args, nullIfEmpty(tenantID))
	}
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", kind, err)
	}
	defer rows.Close()

	out := make([]entity.CatalogEntry, 0)
	for rows.Next() {
		var e entity.CatalogEntry
		if err := rows.Scan(&e.ID, &e.Code, &e.Name, &e.ParentID, &e.TenantID, &e.Attributes); err != nil {
			return nil, fmt.Errorf("scan %s: %w", kind, err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", kind, err)
	}
	return out, nil
}
