package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/DigiCred-Holdings/credential-analysis/internal/config"
	"github.com/DigiCred-Holdings/credential-analysis/internal/database"
	"github.com/DigiCred-Holdings/credential-analysis/internal/logger"
	"github.com/DigiCred-Holdings/credential-analysis/internal/registry"
)

// seed-registry loads a registry snapshot JSON into PostgreSQL, replacing the
// previous snapshot. Course positions preserve file order so matching stays
// deterministic across the file and database providers.
func main() {
	var snapshotPath string
	flag.StringVar(&snapshotPath, "file", "registry.json", "Path to the registry snapshot JSON")
	flag.Parse()

	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	data, err := os.ReadFile(snapshotPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", snapshotPath).Msg("Failed to read snapshot")
	}

	snap, err := registry.ParseSnapshot(data)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to parse snapshot")
	}

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	tx, err := pool.Begin(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to begin transaction")
	}
	defer tx.Rollback(ctx)

	// Replace the whole snapshot atomically.
	for _, table := range []string{"courses", "institution_aliases", "institutions"} {
		if _, err := tx.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table)); err != nil {
			log.Fatal().Err(err).Str("table", table).Msg("Failed to clear table")
		}
	}

	for _, inst := range snap.Institutions() {
		if _, err := tx.Exec(ctx,
			`INSERT INTO institutions (code, name) VALUES ($1, $2)`,
			inst.Code, inst.Name); err != nil {
			log.Fatal().Err(err).Str("code", inst.Code).Msg("Failed to insert institution")
		}
		for _, alias := range inst.Aliases {
			if _, err := tx.Exec(ctx,
				`INSERT INTO institution_aliases (institution_code, alias) VALUES ($1, $2)`,
				inst.Code, alias); err != nil {
				log.Fatal().Err(err).Str("alias", alias).Msg("Failed to insert alias")
			}
		}
	}

	courseCount := 0
	for _, sourceCode := range snap.SourceCodes() {
		// Sources present in the catalog but missing from the alias lookup
		// still need an institutions row for the FK.
		if _, err := tx.Exec(ctx,
			`INSERT INTO institutions (code, name) VALUES ($1, $1) ON CONFLICT (code) DO NOTHING`,
			sourceCode); err != nil {
			log.Fatal().Err(err).Str("code", sourceCode).Msg("Failed to upsert institution")
		}

		for position, course := range snap.Catalog(sourceCode) {
			if _, err := tx.Exec(ctx,
				`INSERT INTO courses (id, source_code, title, code, description, skills, skill_group_weights, position)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
				course.ID, sourceCode, course.Title, course.Code, course.Description,
				course.Skills, course.SkillGroupWeights, position); err != nil {
				log.Fatal().Err(err).Str("course_id", course.ID).Msg("Failed to insert course")
			}
			courseCount++
		}
	}

	if err := tx.Commit(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to commit snapshot")
	}

	fmt.Printf("Seeded %d institutions, %d courses\n", len(snap.Institutions()), courseCount)
}
