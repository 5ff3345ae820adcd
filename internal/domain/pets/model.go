package pets

import "time"

// Species define las especies soportadas.
// @Enum dog, cat
type Species string

const (
	SpeciesDog Species = "dog"
	SpeciesCat Species = "cat"
)

// DogBreed: razas de perro que parseBreed reconoce y normaliza.
type DogBreed string

const (
	BreedLabrador        DogBreed = "labrador"
	BreedGoldenRetriever DogBreed = "golden_retriever"
	BreedGermanShepherd  DogBreed = "german_shepherd"
	BreedBulldog         DogBreed = "bulldog"
	BreedPoodle          DogBreed = "poodle"
	BreedChihuahua       DogBreed = "chihuahua"
	BreedBeagle          DogBreed = "beagle"
	BreedDogOther        DogBreed = "other"
)

var dogBreeds = []DogBreed{
	BreedLabrador, BreedGoldenRetriever, BreedGermanShepherd, BreedBulldog,
	BreedPoodle, BreedChihuahua, BreedBeagle, BreedDogOther,
}

// CatBreed: ídem para gatos. Cualquier otra raza se guarda como texto libre.
type CatBreed string

const (
	BreedPersian   CatBreed = "persian"
	BreedSiamese   CatBreed = "siamese"
	BreedMaineCoon CatBreed = "maine_coon"
	BreedBengal    CatBreed = "bengal"
	BreedSphynx    CatBreed = "sphynx"
	BreedCommon    CatBreed = "common"
	BreedCatOther  CatBreed = "other"
)

var catBreeds = []CatBreed{
	BreedPersian, BreedSiamese, BreedMaineCoon, BreedBengal,
	BreedSphynx, BreedCommon, BreedCatOther,
}

// Sex define el sexo de la mascota.
// @Enum male, female, unknown
type Sex string

const (
	SexMale    Sex = "male"
	SexFemale  Sex = "female"
	SexUnknown Sex = "unknown"
)

// Pet es el perfil guardado que después pre-carga el cuestionario del reporte.
type Pet struct {
	ID string

	Name    string
	Species Species
	Breed   string // DogBreed o CatBreed, texto libre si no está en la lista
	Sex     Sex

	BirthDate *time.Time

	// Dietas / alimento habitual; van a DietaryNeeds del perfil.
	Diet []string

	Notes string

	CreatedAt time.Time
	UpdatedAt time.Time
}
