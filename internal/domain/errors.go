package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrPersistencia = errors.New("fallo de persistencia")
	ErrUnauthorized = errors.New("no autorizado")
)
