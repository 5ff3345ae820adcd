package logging

import (
	"context"
	"time"

	"pet-care-assistant/internal/platform/logger"
	"pet-care-assistant/internal/ports/models"
)

// Options del decorator. Los prompts solo se loguean si LogPrompts=true
// (pueden traer datos del dueño).
type Options struct {
	LogPrompts bool
}

type visionDecorator struct {
	inner models.VisionModel
	log   logger.Logger
	opts  Options
}

// NewVision envuelve un VisionModel y loguea cada llamada.
func NewVision(inner models.VisionModel, log logger.Logger, opts Options) models.VisionModel {
	return &visionDecorator{inner: inner, log: log, opts: opts}
}

func (d *visionDecorator) Name() string { return d.inner.Name() }

func (d *visionDecorator) DescribeImage(ctx context.Context, req models.VisionRequest) (string, error) {
	fields := map[string]any{
		"provider":     d.inner.Name(),
		"op":           "describe_image",
		"image_bytes":  len(req.Image.Data),
		"image_mime":   req.Image.MIMEType,
		"prompt_chars": len(req.Prompt),
	}
	if d.opts.LogPrompts {
		fields["prompt"] = req.Prompt
	}

	t := time.Now()
	out, err := d.inner.DescribeImage(ctx, req)
	finish(d.log, fields, t, out, err, d.opts)
	return out, err
}

type textDecorator struct {
	inner models.TextModel
	log   logger.Logger
	opts  Options
}

// NewText envuelve un TextModel y loguea cada llamada.
func NewText(inner models.TextModel, log logger.Logger, opts Options) models.TextModel {
	return &textDecorator{inner: inner, log: log, opts: opts}
}

func (d *textDecorator) Name() string { return d.inner.Name() }

func (d *textDecorator) Complete(ctx context.Context, req models.TextRequest) (string, error) {
	fields := map[string]any{
		"provider":      d.inner.Name(),
		"op":            "complete",
		"system_blocks": len(req.System),
		"web_search":    req.WebSearch,
		"prompt_chars":  len(req.Prompt),
	}
	if d.opts.LogPrompts {
		fields["prompt"] = req.Prompt
	}

	t := time.Now()
	out, err := d.inner.Complete(ctx, req)
	finish(d.log, fields, t, out, err, d.opts)
	return out, err
}

func finish(log logger.Logger, fields map[string]any, start time.Time, out string, err error, opts Options) {
	fields["took_ms"] = time.Since(start).Milliseconds()
	if err != nil {
		fields["error"] = err.Error()
		log.Error("model call failed", fields)
		return
	}
	fields["response_chars"] = len(out)
	if opts.LogPrompts {
		fields["response"] = out
	}
	log.Info("model call", fields)
}
