package repository

import "errors"

var (
	// ErrNotFound indica que el recurso solicitado no existe.
	ErrNotFound = errors.New("not found")

	// ErrConflict indica un conflicto (ej: mapping duplicado, constraint violation).
	ErrConflict = errors.New("conflict")

	// ErrPersistence indica una falla del backend de persistencia.
	// El error original viene envuelto; nunca incluye material de tokens.
	ErrPersistence = errors.New("persistence failure")

	// ErrInvalidInput indica que los datos de entrada son inválidos.
	ErrInvalidInput = errors.New("invalid input")
)

// IsNotFound verifica si el error es ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsConflict verifica si el error es ErrConflict.
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

// IsPersistence verifica si el error es ErrPersistence.
func IsPersistence(err error) bool {
	return errors.Is(err, ErrPersistence)
}
