package inventory

import "github.com/invorya/inventario-scan/internal/domain/entity"

// PoliticaBodega decide la bodega destino de un movimiento a partir del flag
// de producto terminado. Es una regla de negocio inyectable: el motor no conoce
// la topología de bodegas, solo aplica la política que recibe.
type PoliticaBodega func(terminado bool) string

// PoliticaPorDefecto es la regla vigente del negocio: producto terminado va a
// Bodega 2, todo lo demás (materia prima, insumos) a Bodega 1.
func PoliticaPorDefecto(terminado bool) string {
	if terminado {
		return entity.Bodega2
	}
	return entity.Bodega1
}
