package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"reviewhub/internal/config"
	"reviewhub/internal/db"
	"reviewhub/internal/model"
)

// Seed loads the catalog tables from CSV files exported out-of-band.
// Files are loaded in foreign-key order; rows that already exist are
// left untouched so the loader is safe to re-run.

func main() {
	dataDir := flag.String("data", "static/data", "directory containing the CSV files")
	flag.Parse()

	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Genre{},
		&model.Title{},
		&model.Review{},
		&model.Comment{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	loaders := []struct {
		file string
		load func(*gorm.DB, map[string]string) error
	}{
		{"users.csv", loadUser},
		{"category.csv", loadCategory},
		{"genre.csv", loadGenre},
		{"titles.csv", loadTitle},
		{"genre_title.csv", loadGenreTitle},
		{"review.csv", loadReview},
		{"comments.csv", loadComment},
	}

	total := 0
	for _, l := range loaders {
		path := filepath.Join(*dataDir, l.file)
		count, err := loadFile(gormDB, path, l.load)
		if err != nil {
			log.Fatalf("Failed to load %s: %v", l.file, err)
		}
		log.Printf("  - %s: %d rows processed", l.file, count)
		total += count
	}

	log.Printf("Seed completed successfully! Total rows processed: %d", total)
}

// loadFile streams one CSV file, passing each row as a header-keyed map.
func loadFile(gormDB *gorm.DB, path string, load func(*gorm.DB, map[string]string) error) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read header: %w", err)
	}

	count := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return count, fmt.Errorf("read row: %w", err)
		}

		row := make(map[string]string, len(header))
		for i, key := range header {
			if i < len(record) {
				row[key] = record[i]
			}
		}
		if err := load(gormDB, row); err != nil {
			return count, fmt.Errorf("row %d: %w", count+1, err)
		}
		count++
	}
	return count, nil
}

func loadUser(gormDB *gorm.DB, row map[string]string) error {
	id, err := parseID(row["id"])
	if err != nil {
		return err
	}
	role := model.Role(row["role"])
	if !role.Valid() {
		role = model.RoleUser
	}
	user := model.User{
		ID:        id,
		Username:  row["username"],
		Email:     row["email"],
		Role:      role,
		Bio:       row["bio"],
		FirstName: row["first_name"],
		LastName:  row["last_name"],
	}
	return gormDB.Clauses(clause.OnConflict{DoNothing: true}).Create(&user).Error
}

func loadCategory(gormDB *gorm.DB, row map[string]string) error {
	id, err := parseID(row["id"])
	if err != nil {
		return err
	}
	category := model.Category{ID: id, Name: row["name"], Slug: row["slug"]}
	return gormDB.Clauses(clause.OnConflict{DoNothing: true}).Create(&category).Error
}

func loadGenre(gormDB *gorm.DB, row map[string]string) error {
	id, err := parseID(row["id"])
	if err != nil {
		return err
	}
	genre := model.Genre{ID: id, Name: row["name"], Slug: row["slug"]}
	return gormDB.Clauses(clause.OnConflict{DoNothing: true}).Create(&genre).Error
}

func loadTitle(gormDB *gorm.DB, row map[string]string) error {
	id, err := parseID(row["id"])
	if err != nil {
		return err
	}
	year, err := strconv.Atoi(row["year"])
	if err != nil {
		return fmt.Errorf("invalid year %q", row["year"])
	}
	title := model.Title{ID: id, Name: row["name"], Year: year}
	if raw := row["category"]; raw != "" {
		categoryID, err := parseID(raw)
		if err != nil {
			return err
		}
		title.CategoryID = &categoryID
	}
	return gormDB.Clauses(clause.OnConflict{DoNothing: true}).Create(&title).Error
}

func loadGenreTitle(gormDB *gorm.DB, row map[string]string) error {
	titleID, err := parseID(row["title_id"])
	if err != nil {
		return err
	}
	genreID, err := parseID(row["genre_id"])
	if err != nil {
		return err
	}
	return gormDB.Table("genre_titles").
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(map[string]interface{}{"title_id": titleID, "genre_id": genreID}).Error
}

func loadReview(gormDB *gorm.DB, row map[string]string) error {
	id, err := parseID(row["id"])
	if err != nil {
		return err
	}
	titleID, err := parseID(row["title_id"])
	if err != nil {
		return err
	}
	authorID, err := parseID(row["author"])
	if err != nil {
		return err
	}
	score, err := strconv.Atoi(row["score"])
	if err != nil {
		return fmt.Errorf("invalid score %q", row["score"])
	}
	review := model.Review{
		ID:       id,
		Text:     row["text"],
		TitleID:  titleID,
		AuthorID: authorID,
		Score:    score,
		PubDate:  parseDate(row["pub_date"]),
	}
	return gormDB.Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).Create(&review).Error
}

func loadComment(gormDB *gorm.DB, row map[string]string) error {
	id, err := parseID(row["id"])
	if err != nil {
		return err
	}
	reviewID, err := parseID(row["review_id"])
	if err != nil {
		return err
	}
	authorID, err := parseID(row["author"])
	if err != nil {
		return err
	}
	comment := model.Comment{
		ID:       id,
		Text:     row["text"],
		ReviewID: reviewID,
		AuthorID: authorID,
		PubDate:  parseDate(row["pub_date"]),
	}
	return gormDB.Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).Create(&comment).Error
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return uint(id), nil
}

func parseDate(raw string) time.Time {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t
	}
	return time.Now()
}
