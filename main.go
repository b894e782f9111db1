package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	"griddle/app/routes"
	"griddle/app/storage"
	"griddle/config"
	"griddle/util"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"
)

// CliVersion is the version reported by the version command.
const CliVersion = "1.0.0"

// exit is swapped out in tests.
var exit = os.Exit

func main() {
	RealMain()
}

// RealMain dispatches the CLI command.
func RealMain() {
	if len(os.Args) < 2 {
		printHelp()
		exit(1)
		return
	}

	cmd := strings.ToLower(os.Args[1])
	switch cmd {
	case "help":
		printHelp()
	case "version":
		fmt.Printf("griddle version %s\n", CliVersion)
	case "serve":
		serve()
	default:
		fmt.Printf("Unknown command: %s\n\n", os.Args[1])
		printHelp()
		exit(1)
	}
}

func printHelp() {
	helpText := `Usage: griddle <command>
Commands:
  help                Display this help message.
  version             Show version information.
  serve               Run the blog HTTP service.
`
	fmt.Println(helpText)
}

// serve wires the storage backends and runs the blog service.
func serve() {
	cfg := config.Load()
	util.InitLogger(cfg.LogLevel)
	defer util.Logger.Sync()

	db, err := badger.Open(badger.DefaultOptions(cfg.BadgerPath).WithLogger(nil))
	if err != nil {
		log.Fatalf("Failed to open Badger DB: %v", err)
	}
	defer db.Close()

	media, err := buildMediaStore(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize media storage: %v", err)
	}

	router := routes.Setup(routes.Options{
		DB:          db,
		Media:       media,
		AllowedTags: cfg.AllowedTags,
		JWTSecret:   cfg.JWTSecret,
		JWTTTL:      cfg.JWTTTL,
	})

	// Locally stored media is served from the same process.
	if cfg.MediaBackend == "local" {
		router.PathPrefix("/media/").Handler(
			http.StripPrefix("/media/", http.FileServer(http.Dir(cfg.LocalMediaPath))))
	}

	util.Logger.Info("starting blog service",
		zap.String("addr", cfg.Addr),
		zap.String("mediaBackend", cfg.MediaBackend))
	if err := routes.StartServer(cfg.Addr, router); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

func buildMediaStore(cfg *config.Config) (storage.MediaStore, error) {
	switch cfg.MediaBackend {
	case "s3":
		return storage.NewS3Store(cfg.S3Region, cfg.S3Bucket)
	case "local":
		return storage.NewLocalStore(cfg.LocalMediaPath, cfg.LocalMediaURL)
	default:
		return nil, fmt.Errorf("unknown media backend: %q", cfg.MediaBackend)
	}
}
