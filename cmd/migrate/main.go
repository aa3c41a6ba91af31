// cmd/migrate/main.go
//
// One-time migration of legacy plaintext password rows to bcrypt hashes.
// The server refuses to compare plaintext at runtime, so any account file
// carried over from the old deployment must be run through this first:
//
//	migrate -users ./data/users.json
package main

import (
	"flag"
	"log"

	"github.com/medolina/medolina-backend/internal/userstore"
)

func main() {
	usersFile := flag.String("users", "./data/users.json", "path to the flat-file account store")
	flag.Parse()

	store, err := userstore.Open(*usersFile)
	if err != nil {
		log.Fatal("Failed to open user store:", err)
	}

	migrated, err := store.MigratePlaintext()
	if err != nil {
		log.Fatal("Migration failed:", err)
	}

	log.Printf("Migrated %d password row(s) in %s (%d user(s) total)", migrated, *usersFile, store.Len())
}
