// Package capture unifica los mecanismos de obtención de códigos de barras.
// Los decodificadores reales (cámara, widget de escaneo, lector físico) viven
// fuera de este servicio; aquí solo llegan strings ya decodificados, de a uno.
package capture

import "context"

// Capture es una fuente de códigos decodificados. El motor de movimientos
// consume un código a la vez; el stream puede ser infinito (escáner) o
// terminar con io.EOF (entrada manual).
type Capture interface {
	// Siguiente bloquea hasta el próximo código, el fin del stream o la
	// cancelación del contexto.
	Siguiente(ctx context.Context) (string, error)
}
