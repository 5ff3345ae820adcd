package carereport

import (
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// MaxAgeMonths es el tope aceptado para la edad (30 años).
const MaxAgeMonths = 360

// ImageFormat es el formato declarado de la imagen.
type ImageFormat string

const (
	FormatJPEG ImageFormat = "jpeg"
	FormatPNG  ImageFormat = "png"
)

func (f ImageFormat) Supported() bool {
	return f == FormatJPEG || f == FormatPNG
}

func (f ImageFormat) MIMEType() string {
	switch f {
	case FormatJPEG:
		return "image/jpeg"
	case FormatPNG:
		return "image/png"
	default:
		return ""
	}
}

// DetectFormat sniffea los bytes. Devuelve "" si no se reconoce;
// para otros formatos de imagen devuelve la extensión (gif, webp, ...).
func DetectFormat(data []byte) ImageFormat {
	if len(data) == 0 {
		return ""
	}
	m := mimetype.Detect(data)
	switch {
	case m.Is("image/jpeg"):
		return FormatJPEG
	case m.Is("image/png"):
		return FormatPNG
	default:
		return ImageFormat(strings.TrimPrefix(m.Extension(), "."))
	}
}

// ImagePayload es inmutable: guarda su propia copia de los bytes.
type ImagePayload struct {
	data   []byte
	Format ImageFormat
}

func NewImagePayload(data []byte, format ImageFormat) ImagePayload {
	cp := make([]byte, len(data))
	copy(cp, data)
	return ImagePayload{data: cp, Format: format}
}

// Bytes devuelve una copia; el payload original no se puede mutar desde afuera.
func (p ImagePayload) Bytes() []byte {
	cp := make([]byte, len(p.data))
	copy(cp, p.data)
	return cp
}

func (p ImagePayload) Len() int { return len(p.data) }

// OwnerProfile son las respuestas del formulario para un único request.
// La edad siempre va en meses.
type OwnerProfile struct {
	Name         string
	Species      string // especie / raza, texto libre
	AgeMonths    *int // nil = no informada
	Concern      string
	DietaryNeeds []string
	Observations string
}

// Months arma el puntero para AgeMonths.
func Months(n int) *int { return &n }

// Validate chequea lo que no depende de la variante.
func (p OwnerProfile) Validate() error {
	if p.AgeMonths != nil && (*p.AgeMonths < 0 || *p.AgeMonths > MaxAgeMonths) {
		return &InvalidInputError{Field: "age_months", Reason: "must be between 0 and 360"}
	}
	return nil
}

// AnalysisResult es el texto crudo del stage 1. No se parsea.
type AnalysisResult string

// CareReport es el markdown del stage 2. Tampoco se verifica su estructura.
type CareReport string

// Outcome es el resultado de una corrida completa del pipeline.
type Outcome struct {
	Analysis AnalysisResult
	Report   CareReport
}
