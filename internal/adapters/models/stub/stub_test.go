package stub

import (
	"context"
	"strings"
	"testing"

	"pet-care-assistant/internal/ports/models"
)

func TestDescribeImage_Deterministic(t *testing.T) {
	c := NewClient()
	req := models.VisionRequest{Image: models.Image{Data: []byte{1, 2, 3}, MIMEType: "image/png"}}

	a, err := c.DescribeImage(context.Background(), req)
	if err != nil {
		t.Fatalf("DescribeImage: %v", err)
	}
	b, _ := c.DescribeImage(context.Background(), req)
	if a != b {
		t.Fatalf("expected deterministic output")
	}

	other, _ := c.DescribeImage(context.Background(), models.VisionRequest{Image: models.Image{Data: []byte{9}}})
	if other == a {
		t.Fatalf("expected different output for different image")
	}
}

func TestComplete_EchoesPrompt(t *testing.T) {
	out, err := NewClient().Complete(context.Background(), models.TextRequest{Prompt: "Age: 24 months"})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if !strings.Contains(out, "Age: 24 months") {
		t.Fatalf("expected echo, got %q", out)
	}
}

func TestCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewClient().Complete(ctx, models.TextRequest{}); err == nil {
		t.Fatalf("expected error on canceled ctx")
	}
}
