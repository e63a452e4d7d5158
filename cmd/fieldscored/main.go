package main

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	api "github.com/sapcop/fieldscore/internal/api/http"
	"github.com/sapcop/fieldscore/internal/config"
	"github.com/sapcop/fieldscore/internal/db"
	"github.com/sapcop/fieldscore/internal/inference"
	"github.com/sapcop/fieldscore/internal/model"
	"github.com/sapcop/fieldscore/internal/report"
	"github.com/sapcop/fieldscore/internal/storage"
	"github.com/sapcop/fieldscore/internal/store"
)

func main() {
	cfg := config.FromEnv()

	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatal("db open failed", zap.Error(err))
	}
	history := store.NewSQLStore(dbh)

	// --- Models (loaded once, read-only across requests) ---
	models, err := model.Load(cfg.ModelDir)
	if err != nil {
		log.Fatal("model registry load failed", zap.String("dir", cfg.ModelDir), zap.Error(err))
	}
	log.Info("model registry loaded", zap.Int("models", models.Len()))

	// --- Narrative generator ---
	var generator report.Generator = report.Fallback{}
	if cfg.GenAIAPIKey != "" {
		g, err := report.NewGemini(ctx, cfg.GenAIAPIKey, cfg.GenAIModel, log)
		if err != nil {
			log.Warn("gemini unavailable, narratives use fallback", zap.Error(err))
		} else {
			generator = g
		}
	}

	uploads, err := storage.NewUploadStore(cfg.UploadBasePath)
	if err != nil {
		log.Fatal("upload store", zap.Error(err))
	}

	svc := inference.NewService(models, generator, history, log)

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	origins := cfg.CORSOriginsOffline
	if cfg.Mode == config.ModeOnline {
		origins = cfg.CORSOriginsOnline
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Post("/predict", api.PredictHandler(svc, uploads, log))
	r.Post("/predict/quick", api.QuickCheckHandler(svc))
	r.Get("/history", api.HistoryHandler(history))
	r.Get("/history/summaries", api.SummariesHandler(history))
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	log.Info("listening",
		zap.String("addr", cfg.HTTPAddr),
		zap.String("mode", string(cfg.Mode)),
		zap.String("db", cfg.DBDriver))
	if err := http.ListenAndServe(cfg.HTTPAddr, r); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
