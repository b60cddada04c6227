package quote

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
)

// Modos canónicos usados para inferir el tipo de servicio.
const (
	ModeOcean   = "ocean"
	ModeAir     = "air"
	ModeRail    = "rail"
	ModeRoad    = "road"
	ModeCourier = "courier"
	ModeMoving  = "moving"
)

type modeKeyword struct {
	keyword   string
	canonical string
}

// modeKeywordTable se evalúa en orden; gana la primera palabra contenida en la clave normalizada.
// La coincidencia es por subcadena: "overseas" cae en ocean por "sea".
var modeKeywordTable = []modeKeyword{
	{"ocean", ModeOcean},
	{"sea", ModeOcean},
	{"maritim", ModeOcean},
	{"air", ModeAir},
	{"aere", ModeAir},
	{"rail", ModeRail},
	{"truck", ModeRoad},
	{"road", ModeRoad},
	{"terrestre", ModeRoad},
	{"courier", ModeCourier},
	{"express", ModeCourier},
	{"mover", ModeMoving},
	{"mudanza", ModeMoving},
}

// NormalizeKey pliega mayúsculas y elimina diacríticos ("Aéreo" → "aereo").
func NormalizeKey(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, strings.TrimSpace(s))
	if err != nil {
		out = s
	}
	return cases.Fold().String(out)
}

// CanonicalMode traduce un texto libre (modo de tramo, código o nombre de servicio) a su modo canónico.
func CanonicalMode(s string) (string, bool) {
	key := NormalizeKey(s)
	if key == "" {
		return "", false
	}
	for _, kw := range modeKeywordTable {
		if strings.Contains(key, kw.keyword) {
			return kw.canonical, true
		}
	}
	return "", false
}

// DominantMode modo canónico más frecuente entre los tramos; en empate gana el que aparece primero.
func DominantMode(legs []entity.OptionLeg) string {
	counts := make(map[string]int)
	var order []string
	for _, l := range legs {
		m, ok := CanonicalMode(l.TransportMode)
		if !ok {
			continue
		}
		if counts[m] == 0 {
			order = append(order, m)
		}
		counts[m]++
	}
	best := ""
	for _, m := range order {
		if counts[m] > counts[best] {
			best = m
		}
	}
	return best
}

// InferServiceTypeID busca el tipo de servicio cuyo modo coincide con el modo dominante de la opción
// principal (o la primera). Devuelve "" si no hay opciones, tramos o coincidencia.
func InferServiceTypeID(version *entity.QuotationVersion, serviceTypes []entity.CatalogEntry) string {
	if version == nil || len(version.Options) == 0 {
		return ""
	}
	opt := version.Options[0]
	for _, o := range version.Options {
		if o.IsSelected {
			opt = o
			break
		}
	}
	mode := DominantMode(opt.Legs)
	if mode == "" {
		return ""
	}
	for _, st := range serviceTypes {
		for _, candidate := range []string{st.Attributes["transport_mode"], st.Code, st.Name} {
			if m, ok := CanonicalMode(candidate); ok && m == mode {
				return st.ID
			}
		}
	}
	return ""
}
