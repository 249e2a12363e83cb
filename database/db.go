package database

import (
	"database/sql"
	"log"

	_ "github.com/mattn/go-sqlite3"
	"golang.org/x/crypto/bcrypt"
)

var DB *sql.DB

func InitDB(path string) {
	var err error
	DB, err = sql.Open("sqlite3", path)
	if err != nil {
		log.Fatal(err)
	}

	createTables()
	seedData()
}

func createTables() {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			role TEXT NOT NULL DEFAULT 'USER'
		);`,
		`CREATE TABLE IF NOT EXISTS quotes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			quote_number INTEGER NOT NULL,
			version INTEGER NOT NULL,
			request_number TEXT,
			customer_name TEXT,
			material TEXT,
			total REAL,
			payload TEXT,
			created_by TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);`,
	}

	for _, query := range queries {
		_, err := DB.Exec(query)
		if err != nil {
			log.Println("Error creating table:", err)
		}
	}
}

func seedData() {
	// Seed the admin account so the settings surface is reachable on a
	// fresh install. Password must be rotated after first login.
	var userCount int
	DB.QueryRow("SELECT count(*) FROM users").Scan(&userCount)
	if userCount == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
		if err != nil {
			log.Println("Error seeding admin user:", err)
			return
		}
		DB.Exec("INSERT INTO users (username, password_hash, role) VALUES (?, ?, ?)",
			"admin", string(hash), "ADMIN")
	}
}
