package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"

	_ "modernc.org/sqlite"

	emailPkg "coursebook/internal/adapters/email"
	web "coursebook/internal/adapters/http"
	"coursebook/internal/adapters/http/perf"
	"coursebook/internal/adapters/storage"
	accountStore "coursebook/internal/adapters/storage/account"
	bookingStore "coursebook/internal/adapters/storage/booking"
	courseStore "coursebook/internal/adapters/storage/course"
	"coursebook/internal/application/orchestrators"
	"coursebook/internal/config"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Initialize database with WAL mode, foreign keys, and busy timeout
	dsn := cfg.DBPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	// Connection pool settings for WAL mode
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	if err := db.Ping(); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}

	if err := storage.InitDB(db); err != nil {
		log.Fatalf("failed to initialize schema: %v", err)
	}

	log.Println("Database initialized successfully!")

	// Performance instrumentation: wrap DB with timing, create collector
	collector := perf.NewCollector(perf.DefaultRingSize)
	timedDB := storage.NewTimedDB(db, collector)

	acctStore := accountStore.NewSQLiteStore(timedDB)
	crsStore := courseStore.NewSQLiteStore(timedDB)
	bkgStore := bookingStore.NewSQLiteStore(timedDB)
	stores := &web.Stores{
		AccountStore: acctStore,
		CourseStore:  crsStore,
		BookingStore: bkgStore,
	}

	ctx := context.Background()

	// Seed the admin account and the course catalogue (idempotent)
	adminDeps := orchestrators.CreateAccountDeps{AccountStore: acctStore}
	if err := orchestrators.ExecuteSeedAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword, adminDeps); err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}

	seedDeps := orchestrators.SeedDeps{
		AccountStore: acctStore,
		CourseStore:  crsStore,
		BookingStore: bkgStore,
	}
	if err := orchestrators.ExecuteSeedCourses(ctx, seedDeps); err != nil {
		log.Fatalf("failed to seed courses: %v", err)
	}

	// Demo customer with pre-existing bookings, development only
	if !cfg.IsProduction() {
		if err := orchestrators.ExecuteSeedDemoCustomer(ctx, seedDeps); err != nil {
			log.Fatalf("failed to seed demo customer: %v", err)
		}
		log.Println("Demo customer seeded (dev mode)")
	}

	// Configure email sender
	if cfg.ResendKey != "" {
		web.SetEmailSender(emailPkg.NewResendSender(cfg.ResendKey, cfg.EmailFrom, cfg.EmailReplyTo))
		log.Println("Email sender configured (Resend)")
	} else {
		web.SetEmailSender(emailPkg.NewNoopSender())
		if cfg.IsProduction() {
			log.Println("WARNING: COURSEBOOK_RESEND_KEY is not set — email delivery is DISABLED in production")
		} else {
			log.Println("Email sender configured (noop — set COURSEBOOK_RESEND_KEY for real delivery)")
		}
	}

	mux := web.NewMux("static", stores, collector, cfg)

	log.Printf("Coursebook %s starting on %s (env=%s)", version, cfg.Addr, cfg.Env)
	if err := http.ListenAndServe(cfg.Addr, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
