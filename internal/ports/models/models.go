package models

import "context"

// Image es la imagen tal cual la recibe el proveedor.
type Image struct {
	Data     []byte
	MIMEType string // image/jpeg, image/png
}

// VisionRequest es el input del stage 1: prompt + imagen.
type VisionRequest struct {
	Prompt string
	Image  Image
}

// TextRequest es el input del stage 2: instrucciones de sistema + prompt de usuario.
type TextRequest struct {
	System []string
	Prompt string

	// WebSearch pide grounding con búsqueda web (links a productos).
	// Los proveedores que no lo soportan lo ignoran.
	WebSearch bool
}

// VisionModel describe una imagen. El texto vuelve sin parsear.
type VisionModel interface {
	Name() string
	DescribeImage(ctx context.Context, req VisionRequest) (string, error)
}

// TextModel genera texto (markdown) a partir de un prompt.
type TextModel interface {
	Name() string
	Complete(ctx context.Context, req TextRequest) (string, error)
}
