package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"log"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/peoplehq/orgdir/authz"
)

// exportedOrg is one organisation plus the ids of its members.
type exportedOrg struct {
	OrgID       string   `json:"orgId"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Members     []string `json:"members"`
}

func main() {
	// Load .env file
	if err := godotenv.Load("../../.env"); err != nil {
		if err := godotenv.Load(".env"); err != nil {
			log.Println("No .env file found")
		}
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping DB: %v", err)
	}

	ctx := context.Background()
	ledger := authz.NewSimpleMembershipLedger(db)

	rows, err := db.QueryContext(ctx, `
		SELECT id, name, COALESCE(description, '')
		FROM organisations
		ORDER BY name
	`)
	if err != nil {
		log.Fatalf("Failed to list organisations: %v", err)
	}
	defer rows.Close()

	out := make([]exportedOrg, 0)
	for rows.Next() {
		var org exportedOrg
		if err := rows.Scan(&org.OrgID, &org.Name, &org.Description); err != nil {
			log.Fatalf("Failed to scan organisation: %v", err)
		}
		memberships, err := ledger.ListMembers(ctx, org.OrgID)
		if err != nil {
			log.Fatalf("Failed to list members of %s: %v", org.OrgID, err)
		}
		org.Members = make([]string, 0, len(memberships))
		for _, m := range memberships {
			org.Members = append(org.Members, m.UserID)
		}
		out = append(out, org)
	}
	if err := rows.Err(); err != nil {
		log.Fatalf("Failed to read organisations: %v", err)
	}

	dest := os.Stdout
	if path := os.Getenv("EXPORT_FILE"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			log.Fatalf("Failed to create export file: %v", err)
		}
		defer f.Close()
		dest = f
	}

	enc := json.NewEncoder(dest)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		log.Fatalf("Failed to write export: %v", err)
	}
}
