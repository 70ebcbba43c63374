package database

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestMigrationFilesExist(t *testing.T) {
	migrationsDir := "../../migrations"

	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		t.Fatal("Migrations directory does not exist")
	}

	expectedMigrations := []string{
		"00001_init.sql",
	}

	for _, migration := range expectedMigrations {
		path := filepath.Join(migrationsDir, migration)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			t.Errorf("Migration file %s does not exist", migration)
		}
	}
}

func TestMigrationFilesHaveUpAndDown(t *testing.T) {
	migrationsDir := "../../migrations"

	files, err := os.ReadDir(migrationsDir)
	if err != nil {
		t.Fatalf("Failed to read migrations directory: %v", err)
	}

	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".sql") {
			continue
		}

		content, err := os.ReadFile(filepath.Join(migrationsDir, file.Name()))
		if err != nil {
			t.Fatalf("Failed to read migration %s: %v", file.Name(), err)
		}

		text := string(content)
		if !strings.Contains(text, "-- +goose Up") {
			t.Errorf("Migration %s is missing the goose Up annotation", file.Name())
		}
		if !strings.Contains(text, "-- +goose Down") {
			t.Errorf("Migration %s is missing the goose Down annotation", file.Name())
		}
	}
}

func TestMigrationCreatesAllTables(t *testing.T) {
	content, err := os.ReadFile("../../migrations/00001_init.sql")
	if err != nil {
		t.Fatalf("Failed to read init migration: %v", err)
	}
	text := string(content)

	tables := []string{
		"users",
		"refresh_tokens",
		"properties",
		"saved_properties",
		"room_designs",
		"consultants",
		"bookings",
		"ai_chats",
		"furniture_items",
		"cart_items",
		"orders",
	}
	for _, table := range tables {
		if !strings.Contains(text, "CREATE TABLE "+table+" (") {
			t.Errorf("Init migration does not create table %s", table)
		}
	}
}
