// Command adminctl bootstraps an administrator account. It prompts for a
// password on the terminal, creates the user and assigns the admin role.
package main

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/mbelkin/storefront/internal/auth"
	"github.com/mbelkin/storefront/internal/common"
	"github.com/mbelkin/storefront/internal/config"
	"github.com/mbelkin/storefront/internal/dbx"
	"github.com/mbelkin/storefront/internal/models"
	"github.com/mbelkin/storefront/internal/repositories/repomanager"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

func getUserName(reader *bufio.Reader) (string, error) {
	fmt.Print("Username: ")
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func getPassword() ([]byte, error) {
	fmt.Print("Password: ")
	password, err := readPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return nil, err
	}

	fmt.Print("Repeat password: ")
	confirm, err := readPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return nil, err
	}

	if string(password) != string(confirm) {
		return nil, errors.New("passwords do not match")
	}
	if len(password) == 0 {
		return nil, errors.New("password must not be empty")
	}

	return password, nil
}

func createAdmin(ctx context.Context, db *sql.DB, userName string, password []byte) error {

	hash, err := auth.HashPassword(string(password))
	if err != nil {
		return err
	}

	m := repomanager.NewPostgresManager()

	return dbx.WithTx(ctx, db, &sql.TxOptions{Isolation: sql.LevelReadCommitted}, func(ctx context.Context, tx dbx.DBTX) error {
		repo := m.Users(tx)

		user, err := repo.Create(ctx, &models.User{UserName: userName, PasswordHash: hash})
		if err != nil {
			if errors.Is(err, common.ErrorAlreadyExists) {
				return fmt.Errorf("username %q is already taken", userName)
			}
			return err
		}

		if err := repo.AssignRole(ctx, user.ID, models.RoleCustomer); err != nil {
			return err
		}
		return repo.AssignRole(ctx, user.ID, models.RoleAdmin)
	})
}

func main() {

	dsn := flag.String("d", "", "database DSN (defaults to DATABASE_DSN)")
	flag.Parse()

	cfg := &config.Config{}
	cfg.LoadDefaults()
	if *dsn != "" {
		cfg.DatabaseDSN = *dsn
	} else if env := os.Getenv("DATABASE_DSN"); env != "" {
		cfg.DatabaseDSN = env
	}

	ctx := context.Background()

	db, err := repomanager.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}
	defer db.Close()

	userName, err := getUserName(bufio.NewReader(os.Stdin))
	if err != nil || userName == "" {
		log.Fatal("username is required")
	}

	password, err := getPassword()
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := createAdmin(ctx, db, userName, password); err != nil {
		log.Fatalf("%v", err)
	}

	fmt.Printf("administrator %q created\n", userName)
}
