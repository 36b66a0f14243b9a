// Package excel implementa los puertos de persistencia sobre un workbook .xlsx
// con la misma estructura de hojas que el inventario original: productos,
// inventario_bodega1, inventario_bodega2 y movimientos.
package excel

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/xuri/excelize/v2"
)

// Hojas del workbook.
const (
	HojaProductos   = "productos"
	HojaBodega1     = "inventario_bodega1"
	HojaBodega2     = "inventario_bodega2"
	HojaMovimientos = "movimientos"
)

// Encabezados persistidos. Son contrato público: otras herramientas leen estas
// columnas por nombre.
var (
	encabezadoProductos   = []interface{}{"Codigo_Barras", "Detalle", "Precio", "Es_Inventariable"}
	encabezadoInventario  = []interface{}{"Codigo_Barras", "Detalle", "Cantidad"}
	encabezadoMovimientos = []interface{}{"Fecha y Hora", "Codigo_Barras", "Movimiento", "Cantidad", "Bodega", "Usuario", "Observaciones"}
)

// Workbook es el archivo .xlsx compartido por los tres stores. Cada operación
// abre el archivo, opera y guarda: el backend no mantiene estado en memoria,
// igual que el acceso read-all/write-all de la hoja de cálculo original.
// El mutex serializa el acceso al archivo dentro del proceso; entre procesos
// no hay coordinación (limitación aceptada del modelo monousuario).
type Workbook struct {
	ruta string
	mu   sync.Mutex
}

// NewWorkbook apunta al archivo en ruta. Si no existe, se crea con las cuatro
// hojas y sus encabezados en la primera escritura o al llamar Inicializar.
func NewWorkbook(ruta string) *Workbook {
	return &Workbook{ruta: ruta}
}

// Inicializar crea el workbook con hojas y encabezados si aún no existe.
func (w *Workbook) Inicializar() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, err := os.Stat(w.ruta); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat workbook: %w", err)
	}
	return w.crear()
}

// crear escribe un workbook nuevo con las cuatro hojas. Llamar con mu tomado.
func (w *Workbook) crear() error {
	f := excelize.NewFile()
	defer f.Close()

	hojas := []struct {
		nombre     string
		encabezado []interface{}
	}{
		{HojaProductos, encabezadoProductos},
		{HojaBodega1, encabezadoInventario},
		{HojaBodega2, encabezadoInventario},
		{HojaMovimientos, encabezadoMovimientos},
	}
	for _, h := range hojas {
		if _, err := f.NewSheet(h.nombre); err != nil {
			return fmt.Errorf("crear hoja %s: %w", h.nombre, err)
		}
		enc := h.encabezado
		if err := f.SetSheetRow(h.nombre, "A1", &enc); err != nil {
			return fmt.Errorf("encabezado de %s: %w", h.nombre, err)
		}
	}
	// excelize crea el archivo con una hoja por defecto que no usamos
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("eliminar hoja por defecto: %w", err)
	}
	if err := f.SaveAs(w.ruta); err != nil {
		return fmt.Errorf("guardar workbook %s: %w", w.ruta, err)
	}
	return nil
}

// leerFilas devuelve las filas de datos de la hoja (sin el encabezado),
// saltando filas completamente vacías.
func (w *Workbook) leerFilas(hoja string) ([][]string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	f, err := w.abrir()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	filas, err := f.GetRows(hoja)
	if err != nil {
		return nil, fmt.Errorf("leer hoja %s: %w", hoja, err)
	}
	if len(filas) <= 1 {
		return nil, nil
	}
	datos := make([][]string, 0, len(filas)-1)
	for _, fila := range filas[1:] {
		if filaVacia(fila) {
			continue
		}
		datos = append(datos, fila)
	}
	return datos, nil
}

// reescribirHoja reemplaza el contenido completo de la hoja: encabezado y filas.
func (w *Workbook) reescribirHoja(hoja string, encabezado []interface{}, filas [][]interface{}) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	f, err := w.abrir()
	if err != nil {
		return err
	}
	defer f.Close()

	// Borrar y recrear deja la hoja limpia aunque el contenido nuevo tenga
	// menos filas que el anterior.
	if err := f.DeleteSheet(hoja); err != nil {
		return fmt.Errorf("limpiar hoja %s: %w", hoja, err)
	}
	if _, err := f.NewSheet(hoja); err != nil {
		return fmt.Errorf("recrear hoja %s: %w", hoja, err)
	}
	if err := f.SetSheetRow(hoja, "A1", &encabezado); err != nil {
		return fmt.Errorf("encabezado de %s: %w", hoja, err)
	}
	for i, fila := range filas {
		celda, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("coordenadas fila %d: %w", i+2, err)
		}
		fl := fila
		if err := f.SetSheetRow(hoja, celda, &fl); err != nil {
			return fmt.Errorf("escribir fila %d de %s: %w", i+2, hoja, err)
		}
	}
	if err := f.Save(); err != nil {
		return fmt.Errorf("guardar workbook %s: %w", w.ruta, err)
	}
	return nil
}

// abrir abre el archivo, creándolo primero si no existe. Llamar con mu tomado.
func (w *Workbook) abrir() (*excelize.File, error) {
	if _, err := os.Stat(w.ruta); errors.Is(err, os.ErrNotExist) {
		if err := w.crear(); err != nil {
			return nil, err
		}
	}
	f, err := excelize.OpenFile(w.ruta)
	if err != nil {
		return nil, fmt.Errorf("abrir workbook %s: %w", w.ruta, err)
	}
	return f, nil
}

func filaVacia(fila []string) bool {
	for _, c := range fila {
		if c != "" {
			return false
		}
	}
	return true
}

// celda devuelve la columna i de la fila o "" si la fila es corta
// (excelize recorta celdas vacías al final).
func celda(fila []string, i int) string {
	if i < len(fila) {
		return fila[i]
	}
	return ""
}
