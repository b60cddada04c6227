// Package identity clasifica los identificadores que cruzan la frontera de guardado.
//
// Un identificador es Existing cuando tiene el formato textual canónico de UUID
// (8-4-4-4-12 hexadecimal, sin importar mayúsculas); cualquier otro valor, incluidos
// los temporales generados en el cliente, es Pending y se trata como fila nueva.
package identity

import (
	"encoding/json"

	"github.com/google/uuid"
)

// canonicalLen es la longitud del formato textual 8-4-4-4-12.
const canonicalLen = 36

// ID es una variante etiquetada: Existing(id) | Pending.
// Pending conserva el valor crudo (p. ej. "temp-3") para que el cliente pueda
// seguir referenciando la fila, pero nunca lo expone hacia el payload de guardado.
// El valor cero es Pending sin valor.
type ID struct {
	raw      string
	existing bool
}

// Pending identidad de una fila nueva sin identificador de cliente.
var Pending = ID{}

// Parse clasifica un string. El valor original se conserva sin normalizar.
func Parse(s string) ID {
	return ID{raw: s, existing: IsCanonical(s)}
}

// New genera la identidad de una fila que se va a insertar con id asignado localmente.
func New() ID {
	return ID{raw: uuid.NewString(), existing: true}
}

// IsCanonical indica si s tiene el formato textual canónico de UUID.
// uuid.Parse acepta también {…}, urn:uuid: y 32 hex sin guiones; por eso se exige la longitud.
func IsCanonical(s string) bool {
	if len(s) != canonicalLen {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

// IsExisting true si la identidad refiere a una fila persistida.
func (id ID) IsExisting() bool { return id.existing }

// String devuelve el valor crudo (temporal o canónico).
func (id ID) String() string { return id.raw }

// Ptr devuelve un puntero al identificador si es Existing; nil si es Pending,
// lo que hace que el payload omita la clave y el procedimiento inserte.
func (id ID) Ptr() *string {
	if !id.existing {
		return nil
	}
	v := id.raw
	return &v
}

// Nullable sanea una clave foránea: el string si es canónico, nil en otro caso.
// "Borrar la relación" y "sin especificar" colapsan ambos a nil.
func Nullable(s string) *string {
	return Parse(s).Ptr()
}

// MarshalJSON serializa el valor crudo; "" se serializa como null.
func (id ID) MarshalJSON() ([]byte, error) {
	if id.raw == "" {
		return []byte("null"), nil
	}
	return json.Marshal(id.raw)
}

// UnmarshalJSON acepta string o null y clasifica el valor.
func (id *ID) UnmarshalJSON(b []byte) error {
	var s *string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == nil {
		*id = Pending
		return nil
	}
	*id = Parse(*s)
	return nil
}
