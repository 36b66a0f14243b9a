package entity

import "time"

// Tipos de movimiento de inventario. Los valores son el contrato persistido
// (otras herramientas leen la columna Movimiento con estos literales).
const (
	MovimientoEntrada = "Entrada"
	MovimientoSalida  = "Salida"
)

// Bodegas del negocio. La política de ruteo por defecto asigna producto
// terminado a Bodega 2 y materia prima a Bodega 1.
const (
	Bodega1 = "Bodega 1"
	Bodega2 = "Bodega 2"
)

// FormatoFechaHora es el layout con el que se persiste la columna Fecha y Hora.
const FormatoFechaHora = "2006-01-02 15:04:05"

// Movimiento es un registro del log de movimientos: inmutable una vez escrito,
// el log solo crece por el final.
type Movimiento struct {
	ID            string // uuid; el backend de hojas de cálculo no lo persiste
	FechaHora     time.Time
	CodigoBarras  string
	Tipo          string // Entrada | Salida
	Cantidad      int    // cantidad solicitada por el usuario (>= 1), no el delta aplicado
	Bodega        string
	Usuario       string
	Observaciones string
}

// FechaHoraTexto devuelve la fecha y hora en el formato persistido.
func (m Movimiento) FechaHoraTexto() string {
	return m.FechaHora.Format(FormatoFechaHora)
}
