package pets

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"pet-care-assistant/internal/domain/carereport"
)

// repo mínimo para tests del paquete (el real vive en adapters/storage).
type fakeRepo struct {
	mu   sync.Mutex
	byID map[string]Pet
}

func newFakeRepo() *fakeRepo { return &fakeRepo{byID: map[string]Pet{}} }

func (r *fakeRepo) Create(ctx context.Context, p Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[p.ID] = p
	return nil
}

func (r *fakeRepo) Update(ctx context.Context, p Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[p.ID]; !ok {
		return ErrNotFound
	}
	r.byID[p.ID] = p
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id string) (Pet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[id]
	if !ok {
		return Pet{}, ErrNotFound
	}
	return p, nil
}

func (r *fakeRepo) List(ctx context.Context) ([]Pet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Pet, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func fixedService(now time.Time) *Service {
	s := NewService(newFakeRepo())
	s.now = func() time.Time { return now }
	return s
}

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestCreate_Validates(t *testing.T) {
	s := fixedService(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	ctx := context.Background()

	cases := []CreateInput{
		{Name: "", Species: "dog"},
		{Name: "Milo", Species: "parrot"},
		{Name: "Milo", Species: "dog", Sex: "robot"},
		{Name: "Milo", Species: "dog", BirthDate: date(2030, 1, 1)},
	}
	for i, in := range cases {
		if _, err := s.Create(ctx, in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("case %d: expected ErrInvalidInput, got %v", i, err)
		}
	}

	p, err := s.Create(ctx, CreateInput{Name: " Milo ", Species: "Dog", Diet: []string{" kibble ", ""}})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.ID == "" || p.Name != "Milo" || p.Species != SpeciesDog || p.Sex != SexUnknown {
		t.Fatalf("unexpected pet %#v", p)
	}
	if len(p.Diet) != 1 || p.Diet[0] != "kibble" {
		t.Fatalf("expected cleaned diet, got %v", p.Diet)
	}
}

func TestUpdate_PartialAndClearBirthDate(t *testing.T) {
	s := fixedService(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	ctx := context.Background()

	p, _ := s.Create(ctx, CreateInput{Name: "Milo", Species: "dog", BirthDate: date(2023, 6, 1), Notes: "itchy"})

	name := "Milo II"
	up, err := s.Update(ctx, p.ID, UpdateInput{Name: &name})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if up.Name != "Milo II" || up.Notes != "itchy" || up.BirthDate == nil {
		t.Fatalf("unexpected partial update %#v", up)
	}

	up, err = s.Update(ctx, p.ID, UpdateInput{BirthDate: BirthDatePatch{Present: true}})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if up.BirthDate != nil {
		t.Fatalf("expected birth date cleared")
	}

	if _, err := s.Update(ctx, "missing", UpdateInput{}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestOwnerProfile_FromStoredPet(t *testing.T) {
	s := fixedService(time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC))
	ctx := context.Background()

	p, _ := s.Create(ctx, CreateInput{
		Name:      "Milo",
		Species:   "dog",
		Breed:     "golden_retriever",
		BirthDate: date(2023, 6, 20),
		Diet:      []string{"chicken kibble"},
		Notes:     "scratching more",
	})

	prof, err := s.OwnerProfile(ctx, p.ID)
	if err != nil {
		t.Fatalf("OwnerProfile: %v", err)
	}
	if prof.Species != "dog (golden retriever)" {
		t.Fatalf("unexpected species label %q", prof.Species)
	}
	// 20/06/2023 -> 15/06/2025: 23 meses completos
	if prof.AgeMonths == nil || *prof.AgeMonths != 23 {
		t.Fatalf("expected 23 months, got %v", prof.AgeMonths)
	}
	if prof.Observations != "scratching more" || len(prof.DietaryNeeds) != 1 || prof.Concern != "" {
		t.Fatalf("unexpected profile %#v", prof)
	}

	_, err = s.OwnerProfile(ctx, "missing")
	if !errors.Is(err, ErrNotFound) || !errors.Is(err, carereport.ErrProfileNotFound) {
		t.Fatalf("expected ErrNotFound and ErrProfileNotFound, got %v", err)
	}
}

func TestAgeInMonths(t *testing.T) {
	now := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		birth time.Time
		want  int
	}{
		{time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), 0},
		{time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), 12},
		{time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC), 11},
		{time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), 0},
	}
	for _, c := range cases {
		if got := ageInMonths(c.birth, now); got != c.want {
			t.Fatalf("ageInMonths(%s) = %d, want %d", c.birth.Format("2006-01-02"), got, c.want)
		}
	}
}

func TestBirthDate_MustFitReportAgeRange(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	s := fixedService(now)
	ctx := context.Background()

	oldest := now.AddDate(0, -carereport.MaxAgeMonths, 0)
	if _, err := s.Create(ctx, CreateInput{Name: "Old", Species: "cat", BirthDate: &oldest}); err != nil {
		t.Fatalf("expected birth date at the age limit to be accepted, got %v", err)
	}

	tooOld := date(1990, 1, 1)
	if _, err := s.Create(ctx, CreateInput{Name: "Milo", Species: "dog", BirthDate: tooOld}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for a birth date beyond the age limit, got %v", err)
	}

	p, _ := s.Create(ctx, CreateInput{Name: "Milo", Species: "dog"})
	if _, err := s.Update(ctx, p.ID, UpdateInput{BirthDate: BirthDatePatch{Present: true, Value: tooOld}}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput on update, got %v", err)
	}
}

func TestParseBreed_NormalizesKnownBreeds(t *testing.T) {
	s := fixedService(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	ctx := context.Background()

	p, err := s.Create(ctx, CreateInput{Name: "Milo", Species: "dog", Breed: " Golden Retriever "})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.Breed != string(BreedGoldenRetriever) {
		t.Fatalf("expected canonical breed, got %q", p.Breed)
	}

	cases := []struct {
		species Species
		in      string
		want    string
	}{
		{SpeciesCat, "Maine-Coon", string(BreedMaineCoon)},
		{SpeciesDog, "German shepherd", string(BreedGermanShepherd)},
		{SpeciesCat, "Labrador", "Labrador"}, // raza de perro en un gato: texto libre
		{SpeciesDog, "Mixed terrier", "Mixed terrier"},
	}
	for _, c := range cases {
		if got := parseBreed(c.species, c.in); got != c.want {
			t.Fatalf("parseBreed(%s, %q) = %q, want %q", c.species, c.in, got, c.want)
		}
	}

	breed := "siamese"
	cat := "cat"
	up, err := s.Update(ctx, p.ID, UpdateInput{Species: &cat, Breed: &breed})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if up.Breed != string(BreedSiamese) {
		t.Fatalf("expected breed normalized against new species, got %q", up.Breed)
	}
}
