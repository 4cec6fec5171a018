package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrDataLoad         = errors.New("no se pudo cargar el dataset de inventario")
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrUnauthorized     = errors.New("no autorizado")
	ErrRefresherStopped = errors.New("el refresco periódico está detenido")
)

// DataLoadError describe una falla al leer el dataset base.
// Row es 1-based contando el encabezado (0 = no aplica); Column vacío = no aplica.
type DataLoadError struct {
	Source string
	Row    int
	Column string
	Err    error
}

func (e *DataLoadError) Error() string {
	msg := "dataset " + e.Source
	if e.Row > 0 {
		msg += fmt.Sprintf(" fila %d", e.Row)
	}
	if e.Column != "" {
		msg += " columna " + e.Column
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *DataLoadError) Unwrap() error { return e.Err }

// Is permite errors.Is(err, ErrDataLoad) sobre cualquier DataLoadError.
func (e *DataLoadError) Is(target error) bool { return target == ErrDataLoad }

// NewDataLoadError construye un DataLoadError sin fila ni columna.
func NewDataLoadError(source string, err error) *DataLoadError {
	return &DataLoadError{Source: source, Err: err}
}
