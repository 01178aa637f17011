package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"
)

var (
	dbName     = flag.String("dbName", "calc.db", "session db name, relative to the binary.")
	addr       = flag.String("addr", "localhost:8080", "TCP address to listen to")
	sessionTTL = flag.Duration("ttl", 30*time.Minute, "Idle time after which a session expires")
	cleanEvery = flag.Duration("cleanEvery", 5*time.Minute, "How often expired sessions are cleaned")
)

func main() {
	// Parse command-line flags.
	flag.Parse()
	if *sessionTTL < time.Second {
		log.Fatalf("-ttl must be at least 1s, got %v", *sessionTTL)
	}
	dbPath := *dbName
	if !filepath.IsAbs(dbPath) {
		dbPath = filepath.Join(filepath.Dir(os.Args[0]), dbPath)
	}
	if err := OpenDb(dbPath); err != nil {
		log.Fatalf("open %s: %v", dbPath, err)
	}
	if err := StartExpiredCleanSchedule(*cleanEvery); err != nil {
		log.Fatalf("clean schedule: %v", err)
	}
	server := NewCalcServer()
	go ServeCalc(server, *addr)

	// Make a signal channel. Register SIGINT and SIGTERM.
	sigch := make(chan os.Signal, 1)
	signal.Notify(sigch, os.Interrupt, syscall.SIGTERM)

	// Wait for the signal.
	<-sigch

	log.Println("Interrupted. Exiting.")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	shutdown(ctx, server)
}
