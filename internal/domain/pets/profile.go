package pets

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-care-assistant/internal/domain/carereport"
)

// OwnerProfile arma el perfil del cuestionario a partir de la mascota guardada.
// Concern no se guarda: depende de cada consulta.
func (s *Service) OwnerProfile(ctx context.Context, petID string) (carereport.OwnerProfile, error) {
	p, err := s.repo.GetByID(ctx, petID)
	if errors.Is(err, ErrNotFound) {
		return carereport.OwnerProfile{}, fmt.Errorf("%w: %w", carereport.ErrProfileNotFound, err)
	}
	if err != nil {
		return carereport.OwnerProfile{}, err
	}

	prof := carereport.OwnerProfile{
		Name:         p.Name,
		Species:      speciesLabel(p),
		DietaryNeeds: append([]string(nil), p.Diet...),
		Observations: p.Notes,
	}
	if p.BirthDate != nil {
		prof.AgeMonths = carereport.Months(ageInMonths(*p.BirthDate, s.now()))
	}
	return prof, nil
}

func speciesLabel(p Pet) string {
	breed := strings.ReplaceAll(strings.TrimSpace(p.Breed), "_", " ")
	if breed == "" || breed == "other" {
		return string(p.Species)
	}
	return string(p.Species) + " (" + breed + ")"
}

// ageInMonths cuenta meses completos; nunca negativo.
func ageInMonths(birth, now time.Time) int {
	months := (now.Year()-birth.Year())*12 + int(now.Month()) - int(birth.Month())
	if now.Day() < birth.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}
