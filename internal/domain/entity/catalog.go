package entity

// CatalogEntry entrada genérica de un catálogo de referencia (puertos, carriers, tipos de servicio...).
// ParentID enlaza con el padre cuando aplica (contact → account, service → service_type).
type CatalogEntry struct {
	ID         string            `json:"id"`
	Code       string            `json:"code,omitempty"`
	Name       string            `json:"name"`
	ParentID   string            `json:"parent_id,omitempty"`
	TenantID   string            `json:"tenant_id,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

// Opportunity oportunidad CRM con sus vínculos a cuenta y contacto.
type Opportunity struct {
	ID        string
	TenantID  *string
	Name      string
	AccountID *string
	ContactID *string
	Stage     *string
}

// CatalogKind identifica una colección de referencia.
type CatalogKind string

// Catálogos de referencia (larga vida) y listas CRM (vida corta, sobrepuestas por sesión).
const (
	CatalogPorts            CatalogKind = "ports"
	CatalogCarriers         CatalogKind = "carriers"
	CatalogServiceTypes     CatalogKind = "service_types"
	CatalogServices         CatalogKind = "services"
	CatalogCurrencies       CatalogKind = "currencies"
	CatalogChargeCategories CatalogKind = "charge_categories"
	CatalogChargeSides      CatalogKind = "charge_sides"
	CatalogChargeBases      CatalogKind = "charge_bases"
	CatalogAccounts         CatalogKind = "accounts"
	CatalogContacts         CatalogKind = "contacts"
	CatalogOpportunities    CatalogKind = "opportunities"
)

// IsCRM true para las listas que cambian con frecuencia (cuentas, contactos, oportunidades).
func (k CatalogKind) IsCRM() bool {
	return k == CatalogAccounts || k == CatalogContacts || k == CatalogOpportunities
}

// CatalogKinds todos los catálogos conocidos, en orden estable.
var CatalogKinds = []CatalogKind{
	CatalogPorts, CatalogCarriers, CatalogServiceTypes, CatalogServices, CatalogCurrencies,
	CatalogChargeCategories, CatalogChargeSides, CatalogChargeBases,
	CatalogAccounts, CatalogContacts, CatalogOpportunities,
}

// ParseCatalogKind valida un nombre de catálogo.
func ParseCatalogKind(s string) (CatalogKind, bool) {
	for _, k := range CatalogKinds {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}
