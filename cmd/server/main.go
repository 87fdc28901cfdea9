package main

import (
	"context"
	"fmt"
	"net/http"

	"cloud.google.com/go/firestore"
	"github.com/rs/cors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mfcastro/financas/backend/internal/archive"
	"github.com/mfcastro/financas/backend/internal/auth"
	"github.com/mfcastro/financas/backend/internal/config"
	"github.com/mfcastro/financas/backend/internal/logger"
	"github.com/mfcastro/financas/backend/internal/service"
	"github.com/mfcastro/financas/backend/internal/store"
)

func main() {
	cfg := config.Load(".env")
	log := logger.New()
	ctx := context.Background()

	var storeImpl store.Store
	var firebaseAuth *auth.FirebaseAuth

	if cfg.UseMemoryStore {
		log.Info().Msg("using in-memory store for local development")
		storeImpl = store.NewMemoryStore()
		// Local development always runs without a real identity provider;
		// the dev middleware injects a fixed user.
		firebaseAuth = nil
	} else {
		firestoreClient, err := firestore.NewClient(ctx, cfg.GoogleCloudProject)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create Firestore client")
		}
		defer firestoreClient.Close()

		if cfg.SkipAuth {
			log.Warn().Msg("SKIP_AUTH enabled - requests run without token verification (seeding/testing only)")
		} else {
			firebaseAuth, err = auth.NewFirebaseAuth(ctx, cfg.LoginContinueURL)
			if err != nil {
				log.Fatal().Err(err).Msg("failed to initialize Firebase Auth")
			}
		}

		storeImpl = store.NewFirestoreStore(firestoreClient)
	}

	var workbookArchive service.Archiver
	if cfg.ArchiveBucket != "" {
		a, err := archive.New(ctx, cfg.ArchiveBucket)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create workbook archive")
		}
		defer a.Close()
		workbookArchive = a
		log.Info().Str("bucket", cfg.ArchiveBucket).Msg("workbook archival enabled")
	}

	var links service.LinkSender
	if firebaseAuth != nil {
		links = firebaseAuth
	}
	financeService := service.NewFinanceService(storeImpl, links, workbookArchive, log)

	mux := http.NewServeMux()
	financeService.Routes(mux)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	var handler http.Handler = mux
	if firebaseAuth != nil {
		handler = auth.Middleware(firebaseAuth)(handler)
	} else {
		handler = auth.LocalDevMiddleware()(handler)
	}

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Authorization",
			"Content-Type",
			"User-Agent",
		},
		AllowCredentials: true,
	})
	handler = c.Handler(handler)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: h2c.NewHandler(handler, &http2.Server{}),
	}

	log.Info().Str("port", cfg.Port).Msg("starting server")
	if err := srv.ListenAndServe(); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}
