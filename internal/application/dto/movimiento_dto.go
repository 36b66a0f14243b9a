package dto

import "github.com/shopspring/decimal"

// ErrorResponse respuesta de error uniforme de la API.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// LoginRequest body para POST /api/auth/login.
type LoginRequest struct {
	Usuario  string `json:"usuario"`
	Password string `json:"password"`
}

// LoginResponse token emitido tras un login exitoso.
type LoginResponse struct {
	Token string `json:"token"`
}

// ProductoResponse respuesta de GET /api/productos/:codigo.
type ProductoResponse struct {
	CodigoBarras  string          `json:"codigo_barras"`
	Detalle       string          `json:"detalle"`
	Precio        decimal.Decimal `json:"precio"`
	Inventariable bool            `json:"es_inventariable"`
}

// RegistrarMovimientoRequest body para POST /api/movimientos.
// Terminado decide la bodega destino según la política de ruteo
// (producto terminado -> Bodega 2).
type RegistrarMovimientoRequest struct {
	CodigoBarras  string `json:"codigo_barras"`
	Tipo          string `json:"tipo"` // Entrada | Salida
	Cantidad      int    `json:"cantidad"`
	Terminado     bool   `json:"terminado"`
	Usuario       string `json:"usuario,omitempty"` // si falta, se toma del token
	Observaciones string `json:"observaciones,omitempty"`
}

// MovimientoResponse resultado de un movimiento aceptado.
type MovimientoResponse struct {
	CodigoBarras  string `json:"codigo_barras"`
	Detalle       string `json:"detalle"`
	Bodega        string `json:"bodega"`
	Tipo          string `json:"tipo"`
	Cantidad      int    `json:"cantidad"`
	CantidadNueva int    `json:"cantidad_nueva"`
	Creado        bool   `json:"creado"` // true si la fila de inventario se creó con este movimiento
	FechaHora     string `json:"fecha_hora"`
}

// ScanRequest body para POST /api/scan (puente de captura).
type ScanRequest struct {
	Codigo string `json:"codigo"`
}

// ScanResponse código pendiente devuelto por GET /api/scan/siguiente.
type ScanResponse struct {
	Codigo string `json:"codigo"`
}
