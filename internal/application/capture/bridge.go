package capture

import "context"

var _ Capture = (*Puente)(nil)

// Puente conecta productores asincrónicos de códigos (el endpoint POST /api/scan,
// el loop de entrada manual) con consumidores que hacen polling o esperan
// bloqueados. Reemplaza a los puentes de eventos JS de las variantes originales
// de captura por cámara.
type Puente struct {
	codigos chan string
}

// NewPuente construye el puente con capacidad para buffer códigos pendientes.
func NewPuente(buffer int) *Puente {
	if buffer < 1 {
		buffer = 1
	}
	return &Puente{codigos: make(chan string, buffer)}
}

// Push encola un código decodificado. Devuelve false si el buffer está lleno
// (el productor decide si descartar o reintentar; los escáneres reales repiten
// la lectura mientras el código siga frente a la cámara).
func (p *Puente) Push(codigo string) bool {
	if codigo == "" {
		return false
	}
	select {
	case p.codigos <- codigo:
		return true
	default:
		return false
	}
}

// Poll devuelve el próximo código pendiente sin bloquear.
func (p *Puente) Poll() (string, bool) {
	select {
	case c := <-p.codigos:
		return c, true
	default:
		return "", false
	}
}

// Siguiente bloquea hasta que haya un código o el contexto se cancele.
func (p *Puente) Siguiente(ctx context.Context) (string, error) {
	select {
	case c := <-p.codigos:
		return c, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
