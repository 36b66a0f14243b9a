package capture

import (
	"bufio"
	"context"
	"io"
	"strings"
)

var _ Capture = (*EntradaManual)(nil)

// EntradaManual produce códigos tecleados línea a línea desde un reader
// (stdin, un pipe del lector de códigos en modo teclado, etc.).
// Las líneas en blanco se ignoran; el espacio alrededor se recorta porque los
// lectores en modo teclado suelen emitir un retorno de carro final.
type EntradaManual struct {
	sc *bufio.Scanner
}

// NewEntradaManual construye la fuente sobre r.
func NewEntradaManual(r io.Reader) *EntradaManual {
	return &EntradaManual{sc: bufio.NewScanner(r)}
}

// Siguiente devuelve el próximo código no vacío, o io.EOF al agotarse el reader.
func (m *EntradaManual) Siguiente(ctx context.Context) (string, error) {
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if !m.sc.Scan() {
			if err := m.sc.Err(); err != nil {
				return "", err
			}
			return "", io.EOF
		}
		codigo := strings.TrimSpace(m.sc.Text())
		if codigo != "" {
			return codigo, nil
		}
	}
}
