package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"studyaid/internal/config"
	"studyaid/internal/database"
	"studyaid/internal/logger"
	"studyaid/internal/util"

	"go.uber.org/zap"
)

const seedFilePath = "configs/seed_data/initial_courses.json"

type seedCourse struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

func main() {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Get()

	log.Info("Starting course seeding process...")
	db, err := database.NewSQLXOracleDB(cfg.GetDSN())
	if err != nil {
		log.Fatal("Failed to connect to Oracle database", zap.Error(err))
	}
	defer db.Close()

	byteValue, err := os.ReadFile(seedFilePath)
	if err != nil {
		log.Fatal("Failed to read seed file", zap.String("path", seedFilePath), zap.Error(err))
	}

	var courses []seedCourse
	if err := json.Unmarshal(byteValue, &courses); err != nil {
		log.Fatal("Failed to unmarshal seed data", zap.Error(err))
	}

	for _, c := range courses {
		var count int
		err := db.GetContext(ctx,
			&count,
			`SELECT COUNT(*) FROM courses WHERE course_name = :1`,
			c.Name,
		)
		if err != nil {
			log.Fatal("Failed to check existing course", zap.String("name", c.Name), zap.Error(err))
		}
		if count > 0 {
			log.Info("Course already seeded, skipping", zap.String("name", c.Name))
			continue
		}

		id := util.NewULID()
		_, err = db.ExecContext(ctx,
			`INSERT INTO courses (id, course_name, course_content) VALUES (:1, :2, :3)`,
			id, c.Name, c.Content,
		)
		if err != nil {
			log.Fatal("Failed to insert course", zap.String("name", c.Name), zap.Error(err))
		}
		log.Info("Seeded course", zap.String("id", id), zap.String("name", c.Name))
	}

	log.Info("Course seeding process completed.")
}
