package service

import (
	"errors"
	"fmt"
)

var (
	ErrPageNotFound         = errors.New("página no encontrada")
	ErrSectionNotFound      = errors.New("sección no encontrada")
	ErrCategoryNotFound     = errors.New("categoría no encontrada")
	ErrProductNotFound      = errors.New("producto no encontrado")
	ErrPostNotFound         = errors.New("noticia no encontrada")
	ErrOrderNotFound        = errors.New("pedido no encontrado")
	ErrLeadNotFound         = errors.New("solicitud mayorista no encontrada")
	ErrContactQueryNotFound = errors.New("consulta no encontrada")
	ErrMediaNotFound        = errors.New("archivo no encontrado")
	ErrUserNotFound         = errors.New("usuario no encontrado")

	ErrSlugTaken          = errors.New("ya existe un registro con ese slug")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrSectionOrder       = errors.New("orden de secciones inválido")
	ErrEmptyCart          = errors.New("el carrito está vacío")
)

// ValidationError reports a rejected input field.
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

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// CategoryInUseError blocks deleting a category that still has products.
type CategoryInUseError struct {
	Count int64
}

func (e *CategoryInUseError) Error() string {
	return fmt.Sprintf("No se puede eliminar esta categoría porque tiene %d producto(s) asociado(s). Primero debes cambiar o eliminar los productos.", e.Count)
}

// IsValidation reports whether err is a *ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
