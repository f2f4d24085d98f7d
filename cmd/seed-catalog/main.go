package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/milkyano-media/aspire-backend/internal/config"
	"github.com/milkyano-media/aspire-backend/internal/database"
	"github.com/milkyano-media/aspire-backend/internal/logger"
	"github.com/milkyano-media/aspire-backend/internal/model"
	"github.com/milkyano-media/aspire-backend/internal/repository"
	"github.com/milkyano-media/aspire-backend/internal/service"
)

// Seeds a starter catalog of subjects and course listings for local
// development and demos.
func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	subjectRepo := repository.NewSubjectRepository(pool)
	courseRepo := repository.NewCourseRepository(pool)

	subjectService := service.NewSubjectService(subjectRepo, log)
	courseService := service.NewCourseService(courseRepo)

	fmt.Println("=== Seeding Catalog ===")

	subjects := []model.Subject{
		{Name: "Mathematics", Slug: "mathematics", Description: "Number, algebra, measurement and statistics from Year 3 through Year 10."},
		{Name: "English", Slug: "english", Description: "Reading comprehension, writing and language conventions."},
		{Name: "Science", Slug: "science", Description: "General science for Years 7 to 10."},
	}

	subjectIDs := make(map[string]int)
	for i := range subjects {
		sub := &subjects[i]

		var existingID int
		err := pool.QueryRow(ctx, "SELECT id FROM subjects WHERE slug = $1", sub.Slug).Scan(&existingID)
		switch {
		case err == nil:
			subjectIDs[sub.Slug] = existingID
			fmt.Printf("Subject %q already exists (ID %d)\n", sub.Name, existingID)
			continue
		case err != pgx.ErrNoRows:
			log.Fatal().Err(err).Str("slug", sub.Slug).Msg("Failed to check existing subject")
		}

		if err := subjectService.Create(ctx, sub); err != nil {
			log.Fatal().Err(err).Str("slug", sub.Slug).Msg("Failed to create subject")
		}
		subjectIDs[sub.Slug] = sub.ID
		fmt.Printf("Created subject %q (ID %d)\n", sub.Name, sub.ID)
	}

	courses := []model.Course{
		{Title: "Year 7 Maths", SubjectID: subjectIDs["mathematics"], YearLevel: "7", Description: "Weekly small-group tutoring covering the Year 7 maths curriculum.", PriceCents: 4500, Published: true},
		{Title: "Year 9 Maths", SubjectID: subjectIDs["mathematics"], YearLevel: "9", Description: "Weekly small-group tutoring covering the Year 9 maths curriculum.", PriceCents: 4500, Published: true},
		{Title: "Year 7 English", SubjectID: subjectIDs["english"], YearLevel: "7", Description: "Essay writing and comprehension for Year 7 students.", PriceCents: 4500, Published: true},
		{Title: "Year 8 Science", SubjectID: subjectIDs["science"], YearLevel: "8", Description: "Hands-on science support for Year 8.", PriceCents: 4000, Published: false},
	}

	created := 0
	for i := range courses {
		course := &courses[i]

		var existingID int
		err := pool.QueryRow(ctx, "SELECT id FROM courses WHERE title = $1", course.Title).Scan(&existingID)
		switch {
		case err == nil:
			fmt.Printf("Course %q already exists (ID %d)\n", course.Title, existingID)
			continue
		case err != pgx.ErrNoRows:
			log.Fatal().Err(err).Str("title", course.Title).Msg("Failed to check existing course")
		}

		if err := courseService.Create(ctx, course); err != nil {
			log.Fatal().Err(err).Str("title", course.Title).Msg("Failed to create course")
		}
		created++
		fmt.Printf("Created course %q (ID %d)\n", course.Title, course.ID)
	}

	fmt.Printf("\nDone. %d course(s) created.\n", created)
}
