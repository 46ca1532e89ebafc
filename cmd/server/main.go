package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rchand7/rozgar/backend/internal/applications"
	"github.com/rchand7/rozgar/backend/internal/auth"
	"github.com/rchand7/rozgar/backend/internal/companies"
	"github.com/rchand7/rozgar/backend/internal/config"
	"github.com/rchand7/rozgar/backend/internal/jobs"
	"github.com/rchand7/rozgar/backend/internal/middleware"
	"github.com/rchand7/rozgar/backend/internal/queue"
	"github.com/rchand7/rozgar/backend/internal/store"
	"github.com/rchand7/rozgar/backend/internal/token"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	// ── MongoDB ──────────────────────────────────────────────
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("mongo connect: %v", err)
	}
	defer mongoClient.Disconnect(ctx)
	db := mongoClient.Database(cfg.MongoDB)

	userStore := store.NewUserStore(db)
	if err := userStore.EnsureIndexes(ctx); err != nil {
		log.Fatalf("mongo indexes: %v", err)
	}
	jobStore := store.NewJobStore(db)
	companyStore := store.NewCompanyStore(db)
	applicationStore := store.NewApplicationStore(db)

	// ── MinIO ────────────────────────────────────────────────
	minioStore, err := store.NewMinioStore(
		ctx, cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey,
		cfg.MinioBucket, cfg.MinioPublicURL, cfg.MinioUseSSL,
	)
	if err != nil {
		log.Fatalf("minio connect: %v", err)
	}

	// ── Redis (rate limiting, optional) ──────────────────────
	rdb, err := store.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		log.Fatalf("redis connect: %v", err)
	}
	if rdb != nil {
		defer rdb.Close()
	}

	// ── RabbitMQ publisher (optional) ────────────────────────
	publisher := queue.NewPublisher(cfg.AMQPURL)

	// ── Token signer ─────────────────────────────────────────
	issuer := token.NewIssuer(cfg.SecretKey, token.DefaultTTL)

	// ── Handlers ─────────────────────────────────────────────
	authHandler := auth.NewHandler(userStore, minioStore, issuer)
	jobHandler := jobs.NewHandler(jobStore)
	companyHandler := companies.NewHandler(companyStore, minioStore)
	var pub applications.Publisher
	if publisher != nil {
		pub = publisher
	}
	applicationHandler := applications.NewHandler(applicationStore, jobStore, userStore, pub)

	requireAuth := middleware.RequireAuth(issuer)
	authLimit := middleware.RateLimit(rdb, 20, time.Minute)

	// ── Router ───────────────────────────────────────────────
	r := chi.NewRouter()
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.CORSOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1/user", func(r chi.Router) {
		r.With(authLimit).Post("/register", authHandler.Register)
		r.With(authLimit).Post("/login", authHandler.Login)
		r.Get("/logout", authHandler.Logout)
		r.With(requireAuth).Post("/profile/update", authHandler.UpdateProfile)
	})

	r.Route("/api/v1/job", func(r chi.Router) {
		r.Get("/get", jobHandler.Get)
		r.Get("/get/{id}", jobHandler.GetByID)
		r.With(requireAuth).Post("/post", jobHandler.Post)
		r.With(requireAuth).Get("/getadminjobs", jobHandler.GetAdminJobs)
	})

	r.Route("/api/v1/company", func(r chi.Router) {
		r.Use(requireAuth)
		r.Post("/register", companyHandler.Register)
		r.Get("/get", companyHandler.Get)
		r.Get("/get/{id}", companyHandler.GetByID)
		r.Put("/update/{id}", companyHandler.Update)
	})

	r.Route("/api/v1/application", func(r chi.Router) {
		r.Use(requireAuth)
		r.Get("/apply/{id}", applicationHandler.Apply)
		r.Get("/get", applicationHandler.GetAppliedJobs)
		r.Get("/{id}/applicants", applicationHandler.GetApplicants)
		r.Post("/status/{id}/update", applicationHandler.UpdateStatus)
	})

	// ── Server ───────────────────────────────────────────────
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  time.Minute,
		WriteTimeout: time.Minute,
	}

	go func() {
		log.Printf("Backend listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	shutCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	srv.Shutdown(shutCtx)
}
