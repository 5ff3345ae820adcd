package pets

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"pet-care-assistant/internal/domain/carereport"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("pet not found")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	Name      string
	Species   string
	Breed     string
	Sex       string
	BirthDate *time.Time
	Diet      []string
	Notes     string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Pet, error) {
	if strings.TrimSpace(in.Name) == "" {
		return Pet{}, ErrInvalidInput
	}
	species, ok := parseSpecies(in.Species)
	if !ok {
		return Pet{}, ErrInvalidInput
	}
	sex, ok := parseSex(in.Sex)
	if !ok {
		return Pet{}, ErrInvalidInput
	}
	if !s.validBirthDate(in.BirthDate) {
		return Pet{}, ErrInvalidInput
	}

	now := s.now()
	p := Pet{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(in.Name),
		Species:   species,
		Breed:     parseBreed(species, in.Breed),
		Sex:       sex,
		BirthDate: in.BirthDate,
		Diet:      cleanList(in.Diet),
		Notes:     strings.TrimSpace(in.Notes),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

// BirthDatePatch distingue "no enviado" de "null" (limpiar la fecha).
type BirthDatePatch struct {
	Present bool
	Value   *time.Time
}

// UpdateInput: nil = no tocar.
type UpdateInput struct {
	Name      *string
	Species   *string
	Breed     *string
	Sex       *string
	BirthDate BirthDatePatch
	Diet      *[]string
	Notes     *string
}

func (s *Service) Update(ctx context.Context, petID string, in UpdateInput) (Pet, error) {
	p, err := s.repo.GetByID(ctx, petID)
	if err != nil {
		return Pet{}, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return Pet{}, ErrInvalidInput
		}
		p.Name = name
	}
	if in.Species != nil {
		species, ok := parseSpecies(*in.Species)
		if !ok {
			return Pet{}, ErrInvalidInput
		}
		p.Species = species
	}
	if in.Breed != nil {
		p.Breed = parseBreed(p.Species, *in.Breed)
	}
	if in.Sex != nil {
		sex, ok := parseSex(*in.Sex)
		if !ok {
			return Pet{}, ErrInvalidInput
		}
		p.Sex = sex
	}
	if in.BirthDate.Present {
		if !s.validBirthDate(in.BirthDate.Value) {
			return Pet{}, ErrInvalidInput
		}
		p.BirthDate = in.BirthDate.Value
	}
	if in.Diet != nil {
		p.Diet = cleanList(*in.Diet)
	}
	if in.Notes != nil {
		p.Notes = strings.TrimSpace(*in.Notes)
	}

	p.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Pet, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Pet, error) {
	return s.repo.List(ctx)
}

// validBirthDate: ni futura ni más vieja que la edad máxima que acepta un reporte.
func (s *Service) validBirthDate(bd *time.Time) bool {
	if bd == nil {
		return true
	}
	now := s.now()
	if bd.After(now) {
		return false
	}
	return ageInMonths(*bd, now) <= carereport.MaxAgeMonths
}

// parseBreed lleva las razas conocidas de la especie a su forma canónica
// ("Golden Retriever" -> golden_retriever). Lo desconocido queda como texto libre.
func parseBreed(species Species, v string) string {
	v = strings.TrimSpace(v)
	key := strings.NewReplacer(" ", "_", "-", "_").Replace(strings.ToLower(v))

	switch species {
	case SpeciesDog:
		for _, b := range dogBreeds {
			if string(b) == key {
				return key
			}
		}
	case SpeciesCat:
		for _, b := range catBreeds {
			if string(b) == key {
				return key
			}
		}
	}
	return v
}

func parseSpecies(v string) (Species, bool) {
	switch sp := Species(strings.ToLower(strings.TrimSpace(v))); sp {
	case SpeciesDog, SpeciesCat:
		return sp, true
	default:
		return "", false
	}
}

// Sex vacío => unknown.
func parseSex(v string) (Sex, bool) {
	switch sx := Sex(strings.ToLower(strings.TrimSpace(v))); sx {
	case "":
		return SexUnknown, true
	case SexMale, SexFemale, SexUnknown:
		return sx, true
	default:
		return "", false
	}
}

func cleanList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if it = strings.TrimSpace(it); it != "" {
			out = append(out, it)
		}
	}
	return out
}
