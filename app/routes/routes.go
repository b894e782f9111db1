package routes

import (
	"net/http"
	"time"

	"griddle/app/controllers"
	"griddle/app/middleware"
	"griddle/app/repositories"
	"griddle/app/services"
	"griddle/app/storage"

	"github.com/dgraph-io/badger/v4"
	"github.com/gorilla/mux"
)

// Options carries the collaborators the router needs.
type Options struct {
	DB          *badger.DB
	Media       storage.MediaStore
	AllowedTags []string
	JWTSecret   string
	JWTTTL      time.Duration
}

// Setup defines the application's routes and returns a router.
func Setup(opts Options) *mux.Router {
	router := mux.NewRouter()

	// Apply global middleware
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.ContentTypeJSON)

	blogRepo := repositories.NewBadgerBlogRepository(opts.DB)
	commentRepo := repositories.NewBadgerCommentRepository(opts.DB)
	userRepo := repositories.NewBadgerUserRepository(opts.DB)

	userService := services.NewUserService(userRepo)
	blogService := services.NewBlogService(blogRepo, commentRepo, userRepo, opts.Media, opts.AllowedTags)
	commentService := services.NewCommentService(commentRepo, blogRepo, userRepo)

	auth := middleware.NewAuth(userService, opts.JWTSecret)
	blogController := controllers.NewBlogController(blogService)
	commentController := controllers.NewCommentController(commentService)
	authController := controllers.NewAuthController(userService, opts.JWTSecret, opts.JWTTTL)

	api := router.PathPrefix("/api").Subrouter()

	// Auth endpoints
	api.HandleFunc("/auth/register", authController.Register).Methods("POST")
	api.HandleFunc("/auth/login", authController.Login).Methods("POST")

	// Blog endpoints
	blogs := api.PathPrefix("/blogs").Subrouter()
	blogs.HandleFunc("", blogController.Index).Methods("GET")
	blogs.HandleFunc("", auth.Require(blogController.Create)).Methods("POST")
	blogs.HandleFunc("/{id:[0-9]+}", auth.Optional(blogController.Show)).Methods("GET")
	blogs.HandleFunc("/{id:[0-9]+}", auth.Require(blogController.Update)).Methods("PATCH")
	blogs.HandleFunc("/{id:[0-9]+}", auth.Require(blogController.Delete)).Methods("DELETE")
	blogs.HandleFunc("/{blogId:[0-9]+}/react", auth.Require(blogController.React)).Methods("POST")
	blogs.HandleFunc("/{blogId:[0-9]+}/author-posts", blogController.AuthorPosts).Methods("GET")

	// Comment endpoints
	blogs.HandleFunc("/{blogId:[0-9]+}/comments", commentController.Index).Methods("GET")
	blogs.HandleFunc("/{blogId:[0-9]+}/comments", auth.Require(commentController.Create)).Methods("POST")

	return router
}

// StartServer starts the HTTP server on the specified address with the given router.
func StartServer(addr string, router http.Handler) error {
	return http.ListenAndServe(addr, router)
}
