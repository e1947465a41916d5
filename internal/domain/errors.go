package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound       = errors.New("recurso no encontrado")
	ErrUserNotFound   = errors.New("usuario no encontrado")
	ErrInvalidInput   = errors.New("entrada inválida")
	ErrDuplicate      = errors.New("recurso duplicado")
	ErrConflict       = errors.New("conflicto con el estado actual")
	ErrUnauthorized   = errors.New("no autorizado")
	ErrForbidden      = errors.New("acceso denegado")
	ErrPersistence    = errors.New("error de persistencia")
	ErrPriceAuditLock = errors.New("el producto tiene historial de precios y no puede eliminarse")
)

// ValidationError señala un campo inválido en la entrada. Envuelve ErrInvalidInput
// para que los handlers puedan clasificarlo con errors.Is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// Validation construye un ValidationError para un campo.
func Validation(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// ConflictError señala un conflicto de negocio (ej. factura duplicada del mismo proveedor).
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

func (e *ConflictError) Unwrap() error { return ErrConflict }

// Conflict construye un ConflictError.
func Conflict(message string) *ConflictError {
	return &ConflictError{Message: message}
}
