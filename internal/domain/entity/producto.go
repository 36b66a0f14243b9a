package entity

import "github.com/shopspring/decimal"

// Producto representa una fila del catálogo de productos.
// El catálogo es de solo lectura para este servicio: lo mantiene un proceso externo.
type Producto struct {
	CodigoBarras  string // clave única, comparada como string (tolera ceros a la izquierda y códigos alfanuméricos)
	Detalle       string
	Precio        decimal.Decimal // puede ser cero si el producto no tiene precio cargado
	Inventariable bool            // informativo; no condiciona los movimientos
}
