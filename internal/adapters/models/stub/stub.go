package stub

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"pet-care-assistant/internal/ports/models"
)

// Client es un modelo determinístico sin red, para dev local y tests end-to-end.
// La visión devuelve un texto derivado del hash de la imagen; el texto
// devuelve el prompt envuelto en un reporte (eco).
type Client struct{}

func NewClient() *Client { return &Client{} }

func (c *Client) Name() string { return "stub" }

func (c *Client) DescribeImage(ctx context.Context, req models.VisionRequest) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	sum := sha256.Sum256(req.Image.Data)
	short := hex.EncodeToString(sum[:6])

	return fmt.Sprintf(
		"Stub visual analysis (%s, %d bytes, %s): body condition appears ideal; coat looks healthy; no visible discomfort.",
		short, len(req.Image.Data), req.Image.MIMEType,
	), nil
}

func (c *Client) Complete(ctx context.Context, req models.TextRequest) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return "# Care Report (stub)\n\n" + req.Prompt, nil
}
