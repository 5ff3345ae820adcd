package carereport

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrUpstream        = errors.New("upstream error")
	ErrEmptyResponse   = errors.New("model returned empty response")
	ErrVariantNotFound = errors.New("variant not found")
	ErrProfileNotFound = errors.New("pet not found")
)

// Stage identifica cuál de las dos llamadas falló.
type Stage string

const (
	StageAnalysis Stage = "analysis"
	StageReport   Stage = "report"
)

// InvalidInputError: el input no pasa validación. Nunca se llegó a llamar al modelo.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s: %s", e.Field, e.Reason)
}

func (e *InvalidInputError) Is(target error) bool { return target == ErrInvalidInput }

// UpstreamError envuelve, sin modificar, el error del proveedor.
// Transporte, auth, cuota o respuesta malformada caen todos acá.
type UpstreamError struct {
	Stage    Stage
	Provider string
	Err      error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream error (stage=%s provider=%s): %v", e.Stage, e.Provider, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

func (e *UpstreamError) Is(target error) bool { return target == ErrUpstream }
