// Command timetable-solver generates a weekly lecture timetable for one or
// more departments and prints the result as JSON or CSV.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/timetable-solver/internal/batch"
	"github.com/noah-isme/timetable-solver/internal/format"
	"github.com/noah-isme/timetable-solver/internal/metrics"
	"github.com/noah-isme/timetable-solver/internal/snapshot"
	"github.com/noah-isme/timetable-solver/internal/snapshot/fixture"
	"github.com/noah-isme/timetable-solver/internal/snapshot/rediscache"
	"github.com/noah-isme/timetable-solver/internal/snapshot/sqlstore"
	"github.com/noah-isme/timetable-solver/internal/solver"
	"github.com/noah-isme/timetable-solver/pkg/cache"
	"github.com/noah-isme/timetable-solver/pkg/config"
	"github.com/noah-isme/timetable-solver/pkg/database"
	"github.com/noah-isme/timetable-solver/pkg/logger"
)

func main() {
	departments := flag.String("departments", "", "comma-separated department ids to solve")
	outputFormat := flag.String("format", "json", "output format: json or csv")
	flag.Parse()

	if *departments == "" {
		log.Fatal("-departments is required")
	}
	departmentIDs := strings.Split(*departments, ",")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	loader, cleanup := buildLoader(cfg, logr)
	defer cleanup()

	driver := solver.New(loader, logr, metrics.NewCollector())

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Solver.Deadline)
	defer cancel()

	if len(departmentIDs) == 1 {
		result, err := driver.Generate(ctx, solver.Request{
			DepartmentID: strings.TrimSpace(departmentIDs[0]),
			Seed:         cfg.Solver.Seed,
			Shuffle:      cfg.Solver.Shuffle,
			Exhaustive:   cfg.Solver.Exhaustive,
		})
		if err != nil {
			log.Fatalf("solve failed: %v", err)
		}
		printResult(result, *outputFormat)
		return
	}

	requests := make([]solver.Request, 0, len(departmentIDs))
	for _, id := range departmentIDs {
		requests = append(requests, solver.Request{
			DepartmentID: strings.TrimSpace(id),
			Seed:         cfg.Solver.Seed,
			Shuffle:      cfg.Solver.Shuffle,
			Exhaustive:   cfg.Solver.Exhaustive,
		})
	}

	runner := batch.NewRunner(driver, batch.RunnerConfig{Workers: cfg.Solver.BatchWorkers, Logger: logr})
	for _, outcome := range runner.Run(ctx, requests) {
		if outcome.Err != nil {
			fmt.Fprintf(os.Stderr, "department %s: %v\n", outcome.DepartmentID, outcome.Err)
			continue
		}
		printResult(outcome.Result, *outputFormat)
	}
}

// buildLoader wires a snapshot.Loader according to cfg: an in-memory
// fixture by default, or a Postgres-backed store (optionally wrapped in a
// Redis read-through cache) when SOLVER_USE_SQL_STORE is set. The returned
// func closes whatever connections were opened.
func buildLoader(cfg *config.Config, logr *zap.Logger) (snapshot.Loader, func()) {
	if !cfg.Solver.UseSQLStore {
		loader := fixture.New(snapshot.Constraints{LunchBreakPeriod: 4, MaxLecturesPerDayFaculty: 4})
		return loader, func() {}
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	var loader snapshot.Loader = sqlstore.New(db)

	if !cfg.Solver.UseSnapshotCache {
		return loader, func() { _ = db.Close() }
	}

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	loader = rediscache.New(loader, redisClient, cfg.Solver.SnapshotCacheTTL, logr, metrics.NewCollector())
	return loader, func() { _ = db.Close(); _ = redisClient.Close() }
}

func printResult(result *solver.Result, outputFormat string) {
	switch outputFormat {
	case "csv":
		csvBytes, err := format.CSV(result.Timetable)
		if err != nil {
			log.Fatalf("failed to render csv: %v", err)
		}
		os.Stdout.Write(csvBytes)
	default:
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			log.Fatalf("failed to encode result: %v", err)
		}
	}
}
