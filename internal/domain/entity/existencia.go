package entity

// Existencia representa el stock actual de un producto en una bodega.
// A lo sumo una fila por código de barras dentro del inventario de una bodega;
// Cantidad nunca es negativa.
type Existencia struct {
	CodigoBarras string
	Detalle      string // copiado del Producto al crear la fila; no se resincroniza después
	Cantidad     int
}
