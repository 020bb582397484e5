package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"feedblog/cmd/app"
	"feedblog/internal/config"
	gql "feedblog/internal/graphql"
	"feedblog/internal/handler"
	"feedblog/internal/middleware"
	"feedblog/internal/ws"
)

func main() {
	cfg := config.LoadConfig()

	if cfg.JWTSecretKey == "" {
		log.Fatal("JWT_SECRET_KEY is not set")
	}

	db, services, hub := app.App(cfg)
	defer db.CloseDB()

	handlers := handler.NewHandlers(services, db, cfg)

	schema, err := gql.NewSchema(services)
	if err != nil {
		log.Fatalf("Failed to build GraphQL schema: %v", err)
	}

	router := mux.NewRouter()

	router.HandleFunc("/health", handlers.Health).Methods(http.MethodGet)

	router.HandleFunc("/auth/signup", handlers.Signup).Methods(http.MethodPut)
	router.HandleFunc("/auth/login", handlers.Login).Methods(http.MethodPost)

	router.HandleFunc("/feed/posts", handlers.GetPosts).Methods(http.MethodGet)
	router.HandleFunc("/feed/posts/{postId}", handlers.GetPost).Methods(http.MethodGet)

	// Routes below require an authenticated identity.
	protected := router.NewRoute().Subrouter()
	protected.Use(middleware.Require)
	protected.HandleFunc("/auth/status", handlers.GetStatus).Methods(http.MethodGet)
	protected.HandleFunc("/auth/status", handlers.UpdateStatus).Methods(http.MethodPatch)
	protected.HandleFunc("/feed/posts", handlers.CreatePost).Methods(http.MethodPost)
	protected.HandleFunc("/feed/posts/{postId}", handlers.UpdatePost).Methods(http.MethodPut)
	protected.HandleFunc("/feed/posts/{postId}", handlers.DeletePost).Methods(http.MethodDelete)
	protected.HandleFunc("/post-image", handlers.UploadImage).Methods(http.MethodPut)

	// GraphQL runs behind the soft gate only; resolvers enforce auth.
	router.HandleFunc("/graphql", gql.Handler(schema)).Methods(http.MethodPost)

	router.HandleFunc("/ws", ws.ServeWS(hub, services.Token)).Methods(http.MethodGet)

	handlerChain := middleware.Chain(
		router,
		middleware.LoggingMiddleware,
		middleware.CORSMiddleware,
		middleware.Authenticate(services.Token),
	)

	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	log.Printf("Server listening on %s", addr)

	if err := http.ListenAndServe(addr, handlerChain); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
