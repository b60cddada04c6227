package quote

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cotizador-api/internal/domain"
)

var flightNumberRe = regexp.MustCompile(`(?i)^[A-Z0-9]{2,3}\s?\d{1,4}[A-Z]?$`)

// FormValidator valida el formulario antes de construir el payload.
// Es seguro para uso concurrente.
type FormValidator struct {
	v *validator.Validate
}

// NewFormValidator crea el validador con las reglas de decimales y de tramos registradas.
func NewFormValidator() *FormValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterCustomTypeFunc(func(f reflect.Value) interface{} {
		if d, ok := f.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})
	v.RegisterCustomTypeFunc(func(f reflect.Value) interface{} {
		if d, ok := f.Interface().(decimal.NullDecimal); ok && d.Valid {
			return d.Decimal.InexactFloat64()
		}
		return nil
	}, decimal.NullDecimal{})
	v.RegisterStructValidation(legRules, LegForm{})
	return &FormValidator{v: v}
}

// Validate devuelve un error que envuelve domain.ErrInvalidInput con el detalle por campo,
// o domain.ErrMultiplePrimaryOptions si hay más de una opción principal.
func (fv *FormValidator) Validate(f QuoteForm) error {
	if err := fv.v.Struct(f); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s: %s", fieldPath(fe), fe.Tag()))
			}
			return fmt.Errorf("%w: %s", domain.ErrInvalidInput, strings.Join(msgs, "; "))
		}
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	primaries := 0
	for _, o := range f.Options {
		if o.IsPrimary {
			primaries++
		}
	}
	if primaries > 1 {
		return domain.ErrMultiplePrimaryOptions
	}
	return nil
}

// legRules: la llegada no puede ser anterior a la salida y los tramos aéreos llevan un número de vuelo válido.
func legRules(sl validator.StructLevel) {
	leg := sl.Current().Interface().(LegForm)
	if leg.DepartureDate != "" && leg.ArrivalDate != "" {
		dep, errD := time.Parse(dateLayout, leg.DepartureDate)
		arr, errA := time.Parse(dateLayout, leg.ArrivalDate)
		if errD == nil && errA == nil && arr.Before(dep) {
			sl.ReportError(leg.ArrivalDate, "arrival_date", "ArrivalDate", "gtefield_departure", "")
		}
	}
	if leg.FlightNumber != "" {
		if m, _ := CanonicalMode(leg.TransportMode); m == ModeAir && !flightNumberRe.MatchString(leg.FlightNumber) {
			sl.ReportError(leg.FlightNumber, "flight_number", "FlightNumber", "flight_number", "")
		}
	}
}

// fieldPath quita el nombre del struct raíz: "QuoteForm.items[0].quantity" → "items[0].quantity".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}
