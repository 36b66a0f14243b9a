package inventory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invorya/inventario-scan/internal/application/inventory"
	"github.com/invorya/inventario-scan/internal/domain"
	"github.com/invorya/inventario-scan/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type catalogoFake struct {
	productos []entity.Producto
}

func (f *catalogoFake) LoadAll(_ context.Context) ([]entity.Producto, error) {
	return append([]entity.Producto(nil), f.productos...), nil
}

// ledgerFake guarda el inventario por bodega y registra cada escritura en la
// secuencia compartida para poder verificar el orden inventario-antes-que-log.
type ledgerFake struct {
	filas     map[string][]entity.Existencia
	secuencia *[]string
	saveErr   error
}

func (f *ledgerFake) LoadAll(_ context.Context, bodega string) ([]entity.Existencia, error) {
	return append([]entity.Existencia(nil), f.filas[bodega]...), nil
}

func (f *ledgerFake) SaveAll(_ context.Context, bodega string, filas []entity.Existencia) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.filas[bodega] = append([]entity.Existencia(nil), filas...)
	if f.secuencia != nil {
		*f.secuencia = append(*f.secuencia, "inventario:"+bodega)
	}
	return nil
}

type logFake struct {
	registros []entity.Movimiento
	secuencia *[]string
	saveErr   error
}

func (f *logFake) LoadAll(_ context.Context) ([]entity.Movimiento, error) {
	return append([]entity.Movimiento(nil), f.registros...), nil
}

func (f *logFake) SaveAll(_ context.Context, registros []entity.Movimiento) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.registros = append([]entity.Movimiento(nil), registros...)
	if f.secuencia != nil {
		*f.secuencia = append(*f.secuencia, "log")
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func catalogoConProducto() *catalogoFake {
	return &catalogoFake{productos: []entity.Producto{
		{CodigoBarras: "123", Detalle: "Café molido 500g", Inventariable: true},
		{CodigoBarras: "456", Detalle: "Azúcar 1kg", Inventariable: true},
	}}
}

func nuevoMotor(cat *catalogoFake, led *ledgerFake, lg *logFake) *inventory.RegistrarMovimientoUseCase {
	return inventory.NewRegistrarMovimientoUseCase(cat, led, lg, nil, nil)
}

func entradaDe(codigo string, cantidad int) inventory.MovimientoInput {
	return inventory.MovimientoInput{
		CodigoBarras: codigo,
		Tipo:         entity.MovimientoEntrada,
		Cantidad:     cantidad,
		Usuario:      "maria",
	}
}

func salidaDe(codigo string, cantidad int) inventory.MovimientoInput {
	in := entradaDe(codigo, cantidad)
	in.Tipo = entity.MovimientoSalida
	return in
}

// ──────────────────────────────────────────────────────────────────────────────
// Aritmética de stock
// ──────────────────────────────────────────────────────────────────────────────

// Entrada sobre fila existente: cantidad nueva = actual + n.
func TestRegistrar_EntradaSumaStockExistente(t *testing.T) {
	led := &ledgerFake{filas: map[string][]entity.Existencia{
		entity.Bodega1: {{CodigoBarras: "123", Detalle: "Café molido 500g", Cantidad: 5}},
	}}
	lg := &logFake{}
	uc := nuevoMotor(catalogoConProducto(), led, lg)

	res, err := uc.Registrar(context.Background(), entradaDe("123", 3))
	require.NoError(t, err)

	assert.Equal(t, 8, res.CantidadNueva)
	assert.False(t, res.Creado)
	assert.Equal(t, 8, led.filas[entity.Bodega1][0].Cantidad)
}

// Salida sobre fila existente: cantidad nueva = actual - n.
func TestRegistrar_SalidaDescuentaStock(t *testing.T) {
	led := &ledgerFake{filas: map[string][]entity.Existencia{
		entity.Bodega1: {{CodigoBarras: "123", Detalle: "Café molido 500g", Cantidad: 5}},
	}}
	uc := nuevoMotor(catalogoConProducto(), led, &logFake{})

	res, err := uc.Registrar(context.Background(), salidaDe("123", 3))
	require.NoError(t, err)

	assert.Equal(t, 2, res.CantidadNueva)
}

// Salida mayor al stock disponible: se trunca en cero, nunca negativo ni error.
func TestRegistrar_SalidaMayorAlStock_TruncaEnCero(t *testing.T) {
	led := &ledgerFake{filas: map[string][]entity.Existencia{
		entity.Bodega1: {{CodigoBarras: "123", Detalle: "Café molido 500g", Cantidad: 5}},
	}}
	uc := nuevoMotor(catalogoConProducto(), led, &logFake{})

	res, err := uc.Registrar(context.Background(), salidaDe("123", 8))
	require.NoError(t, err)

	assert.Equal(t, 0, res.CantidadNueva, "la salida se trunca en cero, no queda -3")
	assert.Equal(t, 0, led.filas[entity.Bodega1][0].Cantidad)
}

// ──────────────────────────────────────────────────────────────────────────────
// Creación perezosa de filas
// ──────────────────────────────────────────────────────────────────────────────

// Entrada sobre inventario vacío crea la fila con la cantidad del movimiento
// y el detalle copiado del catálogo.
func TestRegistrar_EntradaCreaFilaNueva(t *testing.T) {
	led := &ledgerFake{filas: map[string][]entity.Existencia{}}
	lg := &logFake{}
	uc := nuevoMotor(catalogoConProducto(), led, lg)

	res, err := uc.Registrar(context.Background(), entradaDe("123", 5))
	require.NoError(t, err)

	assert.Equal(t, 5, res.CantidadNueva)
	assert.True(t, res.Creado)
	require.Len(t, led.filas[entity.Bodega1], 1)
	assert.Equal(t, entity.Existencia{CodigoBarras: "123", Detalle: "Café molido 500g", Cantidad: 5},
		led.filas[entity.Bodega1][0])
	require.Len(t, lg.registros, 1)
	assert.Equal(t, entity.MovimientoEntrada, lg.registros[0].Tipo)
}

// Salida sobre fila inexistente crea la fila en cero (el faltante no se registra
// como stock negativo).
func TestRegistrar_SalidaSinFila_CreaEnCero(t *testing.T) {
	led := &ledgerFake{filas: map[string][]entity.Existencia{}}
	uc := nuevoMotor(catalogoConProducto(), led, &logFake{})

	res, err := uc.Registrar(context.Background(), salidaDe("123", 4))
	require.NoError(t, err)

	assert.Equal(t, 0, res.CantidadNueva)
	assert.True(t, res.Creado)
	require.Len(t, led.filas[entity.Bodega1], 1)
	assert.Equal(t, 0, led.filas[entity.Bodega1][0].Cantidad)
}

// Dos entradas consecutivas acumulan: el registro no es idempotente.
func TestRegistrar_DobleEntradaAcumula(t *testing.T) {
	led := &ledgerFake{filas: map[string][]entity.Existencia{}}
	lg := &logFake{}
	uc := nuevoMotor(catalogoConProducto(), led, lg)

	_, err := uc.Registrar(context.Background(), entradaDe("123", 3))
	require.NoError(t, err)
	res, err := uc.Registrar(context.Background(), entradaDe("123", 3))
	require.NoError(t, err)

	assert.Equal(t, 6, res.CantidadNueva)
	require.Len(t, lg.registros, 2)
	assert.Equal(t, lg.registros[0].FechaHora.Before(lg.registros[1].FechaHora) ||
		lg.registros[0].FechaHora.Equal(lg.registros[1].FechaHora), true,
		"los registros quedan en orden cronológico")
}

// ──────────────────────────────────────────────────────────────────────────────
// Código desconocido y validación
// ──────────────────────────────────────────────────────────────────────────────

// Código ausente del catálogo: ErrNotFound y ningún store se toca.
func TestRegistrar_CodigoDesconocido_NoMutaNada(t *testing.T) {
	secuencia := []string{}
	led := &ledgerFake{
		filas:     map[string][]entity.Existencia{entity.Bodega1: {{CodigoBarras: "123", Cantidad: 5}}},
		secuencia: &secuencia,
	}
	lg := &logFake{secuencia: &secuencia}
	uc := nuevoMotor(catalogoConProducto(), led, lg)

	_, err := uc.Registrar(context.Background(), entradaDe("999", 5))
	require.ErrorIs(t, err, domain.ErrNotFound)

	assert.Empty(t, secuencia, "no debe haber escrituras")
	assert.Equal(t, 5, led.filas[entity.Bodega1][0].Cantidad)
	assert.Empty(t, lg.registros)
}

func TestRegistrar_EntradaInvalida(t *testing.T) {
	casos := []struct {
		nombre string
		mutar  func(*inventory.MovimientoInput)
	}{
		{"cantidad cero", func(in *inventory.MovimientoInput) { in.Cantidad = 0 }},
		{"cantidad negativa", func(in *inventory.MovimientoInput) { in.Cantidad = -3 }},
		{"usuario vacío", func(in *inventory.MovimientoInput) { in.Usuario = "  " }},
		{"tipo desconocido", func(in *inventory.MovimientoInput) { in.Tipo = "Ajuste" }},
		{"código vacío", func(in *inventory.MovimientoInput) { in.CodigoBarras = "" }},
	}
	for _, caso := range casos {
		t.Run(caso.nombre, func(t *testing.T) {
			secuencia := []string{}
			led := &ledgerFake{filas: map[string][]entity.Existencia{}, secuencia: &secuencia}
			lg := &logFake{secuencia: &secuencia}
			uc := nuevoMotor(catalogoConProducto(), led, lg)

			in := entradaDe("123", 5)
			caso.mutar(&in)

			_, err := uc.Registrar(context.Background(), in)
			require.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Empty(t, secuencia, "la validación debe rechazar antes de cualquier escritura")
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Log de movimientos
// ──────────────────────────────────────────────────────────────────────────────

// Cada movimiento aceptado agrega exactamente un registro al final, sin tocar
// los anteriores.
func TestRegistrar_LogConservaRegistrosPrevios(t *testing.T) {
	previos := []entity.Movimiento{
		{FechaHora: time.Date(2025, 3, 1, 10, 0, 0, 0, time.Local), CodigoBarras: "456", Tipo: entity.MovimientoEntrada, Cantidad: 2, Bodega: entity.Bodega1, Usuario: "pedro"},
		{FechaHora: time.Date(2025, 3, 1, 11, 0, 0, 0, time.Local), CodigoBarras: "456", Tipo: entity.MovimientoSalida, Cantidad: 1, Bodega: entity.Bodega1, Usuario: "pedro"},
	}
	led := &ledgerFake{filas: map[string][]entity.Existencia{}}
	lg := &logFake{registros: append([]entity.Movimiento(nil), previos...)}
	uc := nuevoMotor(catalogoConProducto(), led, lg)

	_, err := uc.Registrar(context.Background(), entradaDe("123", 5))
	require.NoError(t, err)

	require.Len(t, lg.registros, 3, "el log crece exactamente en 1")
	assert.Equal(t, previos[0], lg.registros[0])
	assert.Equal(t, previos[1], lg.registros[1])
	assert.Equal(t, "123", lg.registros[2].CodigoBarras)
}

// El registro anexado captura las entradas del motor y una marca de tiempo actual.
func TestRegistrar_RegistroCompleto(t *testing.T) {
	led := &ledgerFake{filas: map[string][]entity.Existencia{}}
	lg := &logFake{}
	uc := nuevoMotor(catalogoConProducto(), led, lg)

	in := inventory.MovimientoInput{
		CodigoBarras:  "123",
		Tipo:          entity.MovimientoSalida,
		Cantidad:      7,
		Terminado:     true,
		Usuario:       "maria",
		Observaciones: "merma por vencimiento",
	}
	res, err := uc.Registrar(context.Background(), in)
	require.NoError(t, err)

	reg := res.Registro
	assert.NotEmpty(t, reg.ID)
	assert.Equal(t, "123", reg.CodigoBarras)
	assert.Equal(t, entity.MovimientoSalida, reg.Tipo)
	assert.Equal(t, 7, reg.Cantidad, "el log guarda la cantidad solicitada, no el delta aplicado")
	assert.Equal(t, entity.Bodega2, reg.Bodega)
	assert.Equal(t, "maria", reg.Usuario)
	assert.Equal(t, "merma por vencimiento", reg.Observaciones)
	assert.WithinDuration(t, time.Now(), reg.FechaHora, 5*time.Second)

	_, err = time.ParseInLocation(entity.FormatoFechaHora, reg.FechaHoraTexto(), time.Local)
	assert.NoError(t, err, "la fecha persistida debe respetar el formato del contrato")
}

// ──────────────────────────────────────────────────────────────────────────────
// Ruteo de bodega
// ──────────────────────────────────────────────────────────────────────────────

func TestRegistrar_RuteoPorProductoTerminado(t *testing.T) {
	led := &ledgerFake{filas: map[string][]entity.Existencia{}}
	uc := nuevoMotor(catalogoConProducto(), led, &logFake{})

	in := entradaDe("123", 5)
	in.Terminado = true
	res, err := uc.Registrar(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, entity.Bodega2, res.Registro.Bodega)
	assert.Len(t, led.filas[entity.Bodega2], 1)
	assert.Empty(t, led.filas[entity.Bodega1])
}

// La política es inyectable: otra topología de bodegas no toca la aritmética.
func TestRegistrar_PoliticaPersonalizada(t *testing.T) {
	led := &ledgerFake{filas: map[string][]entity.Existencia{}}
	politica := func(terminado bool) string { return "Bodega Norte" }
	uc := inventory.NewRegistrarMovimientoUseCase(catalogoConProducto(), led, &logFake{}, politica, nil)

	res, err := uc.Registrar(context.Background(), entradaDe("123", 2))
	require.NoError(t, err)

	assert.Equal(t, "Bodega Norte", res.Registro.Bodega)
	assert.Len(t, led.filas["Bodega Norte"], 1)
}

// ──────────────────────────────────────────────────────────────────────────────
// Fallos de persistencia y orden de escrituras
// ──────────────────────────────────────────────────────────────────────────────

// El inventario se escribe antes que el log, igual que el flujo original.
func TestRegistrar_OrdenDeEscrituras(t *testing.T) {
	secuencia := []string{}
	led := &ledgerFake{filas: map[string][]entity.Existencia{}, secuencia: &secuencia}
	lg := &logFake{secuencia: &secuencia}
	uc := nuevoMotor(catalogoConProducto(), led, lg)

	_, err := uc.Registrar(context.Background(), entradaDe("123", 5))
	require.NoError(t, err)

	assert.Equal(t, []string{"inventario:" + entity.Bodega1, "log"}, secuencia)
}

func TestRegistrar_FalloAlGuardarInventario(t *testing.T) {
	led := &ledgerFake{filas: map[string][]entity.Existencia{}, saveErr: errors.New("disco lleno")}
	lg := &logFake{}
	uc := nuevoMotor(catalogoConProducto(), led, lg)

	_, err := uc.Registrar(context.Background(), entradaDe("123", 5))
	require.ErrorIs(t, err, domain.ErrPersistencia)
	assert.Empty(t, lg.registros, "si el inventario falla, el log no se toca")
}

// Sin transacción entre los dos pasos: si falla el log, el inventario ya quedó
// escrito pero el movimiento se reporta como fallido.
func TestRegistrar_FalloAlGuardarLog(t *testing.T) {
	led := &ledgerFake{filas: map[string][]entity.Existencia{}}
	lg := &logFake{saveErr: errors.New("hoja bloqueada")}
	uc := nuevoMotor(catalogoConProducto(), led, lg)

	_, err := uc.Registrar(context.Background(), entradaDe("123", 5))
	require.ErrorIs(t, err, domain.ErrPersistencia)
	assert.Len(t, led.filas[entity.Bodega1], 1, "el inventario ya se escribió (sin rollback)")
}

// ──────────────────────────────────────────────────────────────────────────────
// Búsqueda en catálogo
// ──────────────────────────────────────────────────────────────────────────────

func TestBuscarProducto_ComparacionExacta(t *testing.T) {
	cat := &catalogoFake{productos: []entity.Producto{
		{CodigoBarras: "0123", Detalle: "Con cero inicial"},
		{CodigoBarras: "ABC-9", Detalle: "Alfanumérico"},
	}}
	uc := nuevoMotor(cat, &ledgerFake{filas: map[string][]entity.Existencia{}}, &logFake{})

	p, err := uc.BuscarProducto(context.Background(), "0123")
	require.NoError(t, err)
	assert.Equal(t, "Con cero inicial", p.Detalle)

	// "123" no matchea "0123": la comparación es de strings, sin normalizar
	_, err = uc.BuscarProducto(context.Background(), "123")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.BuscarProducto(context.Background(), "abc-9")
	assert.ErrorIs(t, err, domain.ErrNotFound, "mayúsculas son significativas")

	_, err = uc.BuscarProducto(context.Background(), " 0123")
	assert.ErrorIs(t, err, domain.ErrNotFound, "espacios son significativos")
}

// Catálogo con código duplicado: gana la primera fila.
func TestBuscarProducto_PrimeraFilaGana(t *testing.T) {
	cat := &catalogoFake{productos: []entity.Producto{
		{CodigoBarras: "123", Detalle: "Primera fila"},
		{CodigoBarras: "123", Detalle: "Segunda fila"},
	}}
	uc := nuevoMotor(cat, &ledgerFake{filas: map[string][]entity.Existencia{}}, &logFake{})

	p, err := uc.BuscarProducto(context.Background(), "123")
	require.NoError(t, err)
	assert.Equal(t, "Primera fila", p.Detalle)
}
