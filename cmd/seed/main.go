// Command seed provisions user accounts out of band. There is no signup
// endpoint; accounts are created from a JSON file, with passwords hashed
// before they touch the database. All inserts run in a single transaction.
//
// Usage:
//
//	seed -f users.json [-d <dsn>]
//
// The file is an array of objects:
//
//	[{"username": "dave", "password": "s3cret", "fullName": "Dave D", "email": "dave@example.com"}]
package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/dmitrijs2005/teamboard/internal/common"
	"github.com/dmitrijs2005/teamboard/internal/dbx"
	"github.com/dmitrijs2005/teamboard/internal/server/config"
	"github.com/dmitrijs2005/teamboard/internal/server/models"
	"github.com/dmitrijs2005/teamboard/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/teamboard/internal/server/security"

	_ "github.com/jackc/pgx/v5/stdlib"
)

type seedUser struct {
	Username string `json:"username"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	StatusID *int64 `json:"statusId"`
}

func main() {
	cfg := &config.Config{}
	cfg.LoadDefaults()

	var file string
	flag.StringVar(&file, "f", "", "path to a JSON file with users to create")
	flag.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN")
	flag.IntVar(&cfg.BcryptCost, "c", cfg.BcryptCost, "bcrypt cost for password hashing")
	flag.Parse()

	if file == "" {
		log.Fatal("usage: seed -f users.json [-d dsn]")
	}

	if err := run(context.Background(), cfg, file); err != nil {
		log.Fatalf("%v", err)
	}
}

func run(ctx context.Context, cfg *config.Config, file string) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("cannot read %s: %w", file, err)
	}

	var toCreate []seedUser
	if err := json.Unmarshal(data, &toCreate); err != nil {
		return fmt.Errorf("cannot parse %s: %w", file, err)
	}
	if len(toCreate) == 0 {
		return fmt.Errorf("%s contains no users", file)
	}
	for _, u := range toCreate {
		if u.Username == "" || u.Password == "" {
			return fmt.Errorf("every user needs a username and a password")
		}
	}

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("db init error: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("db ping error: %w", err)
	}

	m, err := repomanager.NewPostgresRepositoryManager()
	if err != nil {
		return fmt.Errorf("repository init error: %w", err)
	}
	if err := m.RunMigrations(ctx, db); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	hasher := security.NewHasher(cfg.BcryptCost)

	// all-or-nothing: a duplicate username rolls back the whole batch
	err = dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := m.Users(tx)
		for _, su := range toCreate {
			password := []byte(su.Password)
			hash, err := hasher.Hash(password)
			common.WipeByteArray(password)
			if err != nil {
				return fmt.Errorf("cannot hash password for %s: %w", su.Username, err)
			}

			user := &models.User{
				Username:     su.Username,
				PasswordHash: hash,
				FullName:     su.FullName,
				Email:        su.Email,
				StatusID:     su.StatusID,
			}
			created, err := repo.Create(ctx, user)
			if err != nil {
				return fmt.Errorf("cannot create %s: %w", su.Username, err)
			}
			log.Printf("created user %s (id=%d)", created.Username, created.ID)
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Printf("done, %d user(s) created", len(toCreate))
	return nil
}
