package router

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "pet-care-assistant/docs"
	mem "pet-care-assistant/internal/adapters/storage/memory"
	pg "pet-care-assistant/internal/adapters/storage/postgres"
	"pet-care-assistant/internal/domain/carereport"
	"pet-care-assistant/internal/domain/pets"
	"pet-care-assistant/internal/middleware"
	"pet-care-assistant/internal/platform/logger"
)

type Options struct {
	// Opcional: si viene, el registro de mascotas usa Postgres. Si no, in-memory.
	DB *sql.DB

	Pipeline carereport.Runner

	// nil => variantes built-in.
	Catalog *carereport.Catalog

	// nil => Nop.
	Logger logger.Logger

	MaxImageBytes int64
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	catalog := opts.Catalog
	if catalog == nil {
		catalog = carereport.DefaultCatalog()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	var petRepo pets.Repository
	if opts.DB != nil {
		petRepo = pg.NewPetsRepo(opts.DB)
	} else {
		petRepo = mem.NewPetRepo()
	}
	petsSvc := pets.NewService(petRepo)

	pets.RegisterRoutes(r, petsSvc)

	if opts.Pipeline != nil {
		carereport.RegisterRoutes(r, opts.Pipeline, catalog, carereport.HandlerOptions{
			Profiles:      petsSvc,
			MaxImageBytes: opts.MaxImageBytes,
		})
	}

	return r
}
