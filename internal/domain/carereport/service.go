package carereport

import (
	"context"
	"strings"
	"time"

	"pet-care-assistant/internal/ports/models"
)

// Recorder recibe una observación por cada llamada a modelo y por cada corrida.
type Recorder interface {
	ObserveCall(stage, provider string, d time.Duration, err error)
	ObserveRun(outcome string)
}

// Resultados terminales de Run.
const (
	OutcomeOK             = "ok"
	OutcomeInvalidInput   = "invalid_input"
	OutcomeFailedAnalysis = "failed_analysis"
	OutcomeFailedReport   = "failed_report"
)

type Options struct {
	// Timeout por llamada. 0 = sin timeout propio (solo el del ctx del caller).
	CallTimeout time.Duration

	// 0 = sin límite.
	MaxImageBytes int64

	Recorder Recorder
}

// Pipeline: stage 1 (imagen -> análisis) y stage 2 (análisis + perfil -> reporte).
// No guarda estado entre invocaciones; es seguro usarlo desde varios goroutines
// si los modelos lo son.
type Pipeline struct {
	vision models.VisionModel
	text   models.TextModel

	callTimeout   time.Duration
	maxImageBytes int64
	rec           Recorder
}

func NewPipeline(vision models.VisionModel, text models.TextModel, opts Options) *Pipeline {
	rec := opts.Recorder
	if rec == nil {
		rec = nopRecorder{}
	}
	return &Pipeline{
		vision:        vision,
		text:          text,
		callTimeout:   opts.CallTimeout,
		maxImageBytes: opts.MaxImageBytes,
		rec:           rec,
	}
}

// AnalyzeImage hace exactamente una llamada al VisionModel.
// Valida todo antes de salir a la red.
func (p *Pipeline) AnalyzeImage(ctx context.Context, image ImagePayload, tmpl AnalysisTemplate) (AnalysisResult, error) {
	if err := p.validateImage(image); err != nil {
		return "", err
	}
	if countNonEmpty(tmpl.Focus) == 0 {
		return "", &InvalidInputError{Field: "instructions", Reason: "at least one focus area required"}
	}

	req := models.VisionRequest{
		Prompt: BuildAnalysisPrompt(tmpl),
		Image: models.Image{
			Data:     image.Bytes(),
			MIMEType: image.Format.MIMEType(),
		},
	}

	callCtx, cancel := p.callContext(ctx)
	defer cancel()

	start := time.Now()
	text, err := p.vision.DescribeImage(callCtx, req)
	if err == nil && strings.TrimSpace(text) == "" {
		err = ErrEmptyResponse
	}
	p.rec.ObserveCall(string(StageAnalysis), p.vision.Name(), time.Since(start), err)
	if err != nil {
		return "", &UpstreamError{Stage: StageAnalysis, Provider: p.vision.Name(), Err: err}
	}

	return AnalysisResult(text), nil
}

// GenerateReport hace exactamente una llamada al TextModel, sin reenviar la imagen.
func (p *Pipeline) GenerateReport(ctx context.Context, analysis AnalysisResult, profile OwnerProfile, tmpl ReportTemplate) (CareReport, error) {
	if strings.TrimSpace(string(analysis)) == "" {
		return "", &InvalidInputError{Field: "analysis", Reason: "required"}
	}
	if err := profile.Validate(); err != nil {
		return "", err
	}
	if countNonEmpty(tmpl.Sections) == 0 {
		return "", &InvalidInputError{Field: "sections", Reason: "at least one section required"}
	}

	req := models.TextRequest{
		System:    tmpl.System,
		Prompt:    BuildReportPrompt(analysis, profile, tmpl),
		WebSearch: tmpl.WebSearch,
	}

	callCtx, cancel := p.callContext(ctx)
	defer cancel()

	start := time.Now()
	text, err := p.text.Complete(callCtx, req)
	if err == nil && strings.TrimSpace(text) == "" {
		err = ErrEmptyResponse
	}
	p.rec.ObserveCall(string(StageReport), p.text.Name(), time.Since(start), err)
	if err != nil {
		return "", &UpstreamError{Stage: StageReport, Provider: p.text.Name(), Err: err}
	}

	return CareReport(text), nil
}

type RunInput struct {
	Image   ImagePayload
	Profile OwnerProfile
	Variant Variant
}

// Run encadena ambos stages. El stage 2 depende del texto del stage 1,
// así que nunca corre si el primero falla. No hay resultado parcial.
func (p *Pipeline) Run(ctx context.Context, in RunInput) (Outcome, error) {
	if err := in.Variant.Validate(); err != nil {
		p.rec.ObserveRun(OutcomeInvalidInput)
		return Outcome{}, err
	}
	if err := in.Variant.ValidateProfile(in.Profile); err != nil {
		p.rec.ObserveRun(OutcomeInvalidInput)
		return Outcome{}, err
	}

	analysis, err := p.AnalyzeImage(ctx, in.Image, in.Variant.Analysis)
	if err != nil {
		p.rec.ObserveRun(outcomeFor(err, OutcomeFailedAnalysis))
		return Outcome{}, err
	}

	report, err := p.GenerateReport(ctx, analysis, in.Profile, in.Variant.Report)
	if err != nil {
		p.rec.ObserveRun(outcomeFor(err, OutcomeFailedReport))
		return Outcome{}, err
	}

	p.rec.ObserveRun(OutcomeOK)
	return Outcome{Analysis: analysis, Report: report}, nil
}

func (p *Pipeline) validateImage(image ImagePayload) error {
	if image.Len() == 0 {
		return &InvalidInputError{Field: "image", Reason: "required"}
	}
	if !image.Format.Supported() {
		return &InvalidInputError{Field: "image", Reason: "format must be jpeg or png"}
	}
	if p.maxImageBytes > 0 && int64(image.Len()) > p.maxImageBytes {
		return &InvalidInputError{Field: "image", Reason: "too large"}
	}
	return nil
}

func (p *Pipeline) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if p.callTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, p.callTimeout)
}

func outcomeFor(err error, upstream string) string {
	if _, ok := err.(*InvalidInputError); ok {
		return OutcomeInvalidInput
	}
	return upstream
}

type nopRecorder struct{}

func (nopRecorder) ObserveCall(string, string, time.Duration, error) {}
func (nopRecorder) ObserveRun(string)                               {}
