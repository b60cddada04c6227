// quotectl opera el motor de cotizaciones desde la terminal: hidratar, guardar, revisar anomalías,
// exportar PDF y listar catálogos contra la misma base que usa la API.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
