package quote

import (
	"bytes"
	"encoding/json"

	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
)

// Decision resultado de aplicar un snapshot al estado del formulario.
type Decision string

const (
	// DecisionReset reemplazo completo con los valores normalizados; el formulario queda limpio.
	DecisionReset Decision = "reset"
	// DecisionInject solo se reemplazan las opciones; el resto de la edición se conserva.
	DecisionInject Decision = "inject"
	// DecisionSkip hay edición en curso sobre esta cotización; el snapshot no toca el formulario.
	DecisionSkip Decision = "skip"
	// DecisionNoop el reset produciría exactamente los mismos valores.
	DecisionNoop Decision = "noop"
	// DecisionWait aún no hay datos core.
	DecisionWait Decision = "wait"
)

// FormState estado del formulario de una sesión de edición.
// HydratedID es la cotización con la que se hidrató por última vez ("" si nunca).
type FormState struct {
	Values     QuoteForm `json:"values"`
	Dirty      bool      `json:"dirty"`
	HydratedID string    `json:"hydrated_id"`
}

// Snapshot datos disponibles en un momento dado. VersionsArrived distingue
// "las versiones aún no llegan" de "llegaron y no hay versión".
type Snapshot struct {
	QuoteID         string
	Core            *entity.CoreAggregate
	Version         *entity.QuotationVersion
	VersionsArrived bool
	Catalogs        Catalogs
}

// Reduce decide qué hacer con un snapshot. Las reglas se evalúan en orden:
//  1. sucio, sin opciones en el formulario y con opciones llegando → Inject
//  2. sucio y ya hidratado con esta cotización → Skip
//  3. sin core → Wait
//  4. en otro caso → Reset (o Noop si no cambia nada)
func Reduce(st FormState, snap Snapshot) (FormState, Decision) {
	if st.Dirty && len(st.Values.Options) == 0 && snap.VersionsArrived &&
		snap.Version != nil && len(snap.Version.Options) > 0 {
		next := st
		next.Values.Options = OptionsToForm(snap.Version)
		return next, DecisionInject
	}
	if st.Dirty && st.HydratedID == snap.QuoteID {
		return st, DecisionSkip
	}
	if snap.Core == nil {
		return st, DecisionWait
	}

	var version *entity.QuotationVersion
	if snap.VersionsArrived {
		version = snap.Version
	}
	values := ToForm(snap.Core, version, snap.Catalogs)
	if !st.Dirty && st.HydratedID == snap.QuoteID && sameValues(st.Values, values) {
		return st, DecisionNoop
	}
	return FormState{Values: values, Dirty: false, HydratedID: snap.QuoteID}, DecisionReset
}

// sameValues compara por su forma serializada; los decimales equivalentes pueden diferir en representación interna.
func sameValues(a, b QuoteForm) bool {
	ab, errA := json.Marshal(a)
	bb, errB := json.Marshal(b)
	if errA != nil || errB != nil {
		return false
	}
	return bytes.Equal(ab, bb)
}
