package carereport

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// ProfileSource pre-carga un OwnerProfile desde una mascota registrada.
// Se define acá para que carereport no importe pets.
// Una mascota inexistente tiene que devolver un error que matchee ErrProfileNotFound.
type ProfileSource interface {
	OwnerProfile(ctx context.Context, petID string) (OwnerProfile, error)
}

// Runner es lo que el handler necesita del pipeline.
type Runner interface {
	Run(ctx context.Context, in RunInput) (Outcome, error)
}

type HandlerOptions struct {
	// Si es nil, la ruta /pets/{petID}/care-reports no se registra.
	Profiles ProfileSource

	MaxImageBytes int64
}

func RegisterRoutes(r chi.Router, runner Runner, catalog *Catalog, opts HandlerOptions) {
	r.Get("/variants", listVariantsHandler(catalog))
	r.Post("/care-reports", createReportHandler(runner, catalog, nil, opts.MaxImageBytes))

	if opts.Profiles != nil {
		r.Post("/pets/{petID}/care-reports", petReportHandler(runner, catalog, opts.Profiles, opts.MaxImageBytes))
	}
}

type variantResponse struct {
	Key      string   `json:"key"`
	Title    string   `json:"title"`
	Default  bool     `json:"default"`
	Focus    []string `json:"focus"`
	Sections []string `json:"sections"`
	Concerns []string `json:"concerns"`
}

type reportResponse struct {
	RequestID string `json:"request_id,omitempty"`
	Variant   string `json:"variant"`
	Analysis  string `json:"analysis"`
	Report    string `json:"report"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// listVariantsHandler godoc
// @Summary      List report variants
// @Tags         care-reports
// @Produce      json
// @Success      200  {array}  variantResponse
// @Router       /variants [get]
func listVariantsHandler(catalog *Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items := catalog.List()
		out := make([]variantResponse, 0, len(items))
		for _, v := range items {
			concerns := v.Concerns
			if concerns == nil {
				concerns = []string{}
			}
			out = append(out, variantResponse{
				Key:      v.Key,
				Title:    v.Title,
				Default:  v.Key == catalog.DefaultKey(),
				Focus:    v.Analysis.Focus,
				Sections: v.Report.Sections,
				Concerns: concerns,
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// createReportHandler godoc
// @Summary      Generate a care report from a pet photo
// @Tags         care-reports
// @Accept       multipart/form-data
// @Produce      json
// @Param        image          formData  file    true   "Pet photo (JPEG/PNG)"
// @Param        variant        formData  string  false  "Variant key"
// @Param        name           formData  string  false  "Pet name"
// @Param        species        formData  string  false  "Species / breed hint"
// @Param        age_months     formData  int     false  "Age in months"
// @Param        concern        formData  string  false  "Primary concern"
// @Param        dietary_needs  formData  []string  false  "Dietary considerations"
// @Param        observations   formData  string  false  "Recent changes or concerns"
// @Success      200  {object}  reportResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      502  {object}  errorResponse
// @Router       /care-reports [post]
func createReportHandler(runner Runner, catalog *Catalog, profiles ProfileSource, maxImageBytes int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if maxImageBytes > 0 {
			// margen para los campos de texto del form
			r.Body = http.MaxBytesReader(w, r.Body, maxImageBytes+(1<<20))
		}
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				writeRunError(w, &InvalidInputError{Field: "image", Reason: "too large"})
				return
			}
			writeError(w, http.StatusBadRequest, "invalid multipart form")
			return
		}

		variant, err := catalog.Get(r.FormValue("variant"))
		if err != nil {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}

		var profile OwnerProfile
		if profiles != nil {
			petID := chi.URLParam(r, "petID")
			profile, err = profiles.OwnerProfile(r.Context(), petID)
			switch {
			case errors.Is(err, ErrProfileNotFound):
				writeError(w, http.StatusNotFound, "pet not found")
				return
			case err != nil:
				writeError(w, http.StatusInternalServerError, "internal error")
				return
			}
		}

		profile, err = applyForm(profile, r)
		if err != nil {
			writeRunError(w, err)
			return
		}

		image, err := readImage(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid image upload")
			return
		}

		out, err := runner.Run(r.Context(), RunInput{
			Image:   image,
			Profile: profile,
			Variant: variant,
		})
		if err != nil {
			writeRunError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, reportResponse{
			RequestID: chimw.GetReqID(r.Context()),
			Variant:   variant.Key,
			Analysis:  string(out.Analysis),
			Report:    string(out.Report),
		})
	}
}

// petReportHandler godoc
// @Summary      Generate a care report for a registered pet
// @Description  The stored pet pre-fills the profile; form fields override it.
// @Tags         care-reports
// @Accept       multipart/form-data
// @Produce      json
// @Param        petID          path      string  true   "Pet ID"
// @Param        image          formData  file    true   "Pet photo (JPEG/PNG)"
// @Param        variant        formData  string  false  "Variant key"
// @Param        name           formData  string  false  "Pet name"
// @Param        species        formData  string  false  "Species / breed hint"
// @Param        age_months     formData  int     false  "Age in months"
// @Param        concern        formData  string  false  "Primary concern"
// @Param        dietary_needs  formData  []string  false  "Dietary considerations"
// @Param        observations   formData  string  false  "Recent changes or concerns"
// @Success      200  {object}  reportResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Failure      502  {object}  errorResponse
// @Router       /pets/{petID}/care-reports [post]
func petReportHandler(runner Runner, catalog *Catalog, profiles ProfileSource, maxImageBytes int64) http.HandlerFunc {
	return createReportHandler(runner, catalog, profiles, maxImageBytes)
}

// applyForm pisa el perfil base con los campos presentes en el form.
func applyForm(p OwnerProfile, r *http.Request) (OwnerProfile, error) {
	if v := strings.TrimSpace(r.FormValue("name")); v != "" {
		p.Name = v
	}
	if v := strings.TrimSpace(r.FormValue("species")); v != "" {
		p.Species = v
	}
	if v := strings.TrimSpace(r.FormValue("age_months")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return p, &InvalidInputError{Field: "age_months", Reason: "must be an integer"}
		}
		p.AgeMonths = &n
	}
	if v := strings.TrimSpace(r.FormValue("concern")); v != "" {
		p.Concern = v
	}
	if needs := r.MultipartForm.Value["dietary_needs"]; len(needs) > 0 {
		p.DietaryNeeds = needs
	}
	if v := strings.TrimSpace(r.FormValue("observations")); v != "" {
		p.Observations = v
	}
	return p, nil
}

// readImage: sin archivo => payload vacío; el pipeline decide el error.
func readImage(r *http.Request) (ImagePayload, error) {
	f, _, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return ImagePayload{}, nil
	}
	if err != nil {
		return ImagePayload{}, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return ImagePayload{}, err
	}
	return NewImagePayload(data, DetectFormat(data)), nil
}

func writeRunError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrUpstream):
		writeError(w, http.StatusBadGateway, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeJSON está duplicado a propósito en pets y carereport;
// todavía no vale la pena un paquete compartido para esto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
