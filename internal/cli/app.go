// Package cli implements the operator console. Its single job is creating
// accounts directly in the database, already verified, so an administrator
// can bootstrap users without going through the email loop.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/shelfkeeper/shelfkeeper/internal/common"
	"github.com/shelfkeeper/shelfkeeper/internal/credential"
	"github.com/shelfkeeper/shelfkeeper/internal/server/config"
	"github.com/shelfkeeper/shelfkeeper/internal/server/models"
	"github.com/shelfkeeper/shelfkeeper/internal/server/repositories/repomanager"
	"github.com/shelfkeeper/shelfkeeper/internal/shared"
	"github.com/shelfkeeper/shelfkeeper/internal/validation"
)

type App struct {
	db    *sql.DB
	repos repomanager.RepositoryManager
}

func NewApp(cfg *config.Config) (*App, error) {
	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(context.Background(), db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return &App{db: db, repos: rm}, nil
}

// Run walks the operator through creating one verified account.
func (a *App) Run(ctx context.Context) {
	defer a.db.Close()

	if err := a.createUser(ctx); err != nil {
		fmt.Println(err.Error())
		return
	}

	fmt.Println("Success!")
}

func (a *App) createUser(ctx context.Context) error {
	reader := bufio.NewReader(os.Stdin)

	firstName, err := GetSimpleText(reader, "Enter first name", os.Stdout)
	if err != nil {
		return err
	}
	lastName, err := GetSimpleText(reader, "Enter last name", os.Stdout)
	if err != nil {
		return err
	}
	phone, err := GetSimpleText(reader, "Enter phone number (9 digits)", os.Stdout)
	if err != nil {
		return err
	}
	email, err := GetSimpleText(reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	username, err := GetSimpleText(reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	password, err := GetPassword(os.Stdout, "Enter password")
	if err != nil {
		return err
	}
	defer shared.WipeByteArray(password)

	confirm, err := GetPassword(os.Stdout, "Repeat password")
	if err != nil {
		return err
	}
	defer shared.WipeByteArray(confirm)

	if string(password) != string(confirm) {
		return errors.New("passwords do not match")
	}

	var errs validation.Errors
	if !validation.Name(firstName) {
		errs.Add("first name", "must contain letters only")
	}
	if !validation.Name(lastName) {
		errs.Add("last name", "must contain letters only")
	}
	if !validation.PhoneNumber(phone) {
		errs.Add("phone number", "must be exactly 9 digits")
	}
	if !validation.Email(email) {
		errs.Add("email", "must be a valid email address")
	}
	if !validation.Password(string(password)) {
		errs.Add("password", "must be at least 8 characters with a lowercase letter, an uppercase letter, and a digit")
	}
	if err := errs.OrNil(); err != nil {
		return err
	}

	user := &models.User{
		FirstName:        firstName,
		LastName:         lastName,
		PhoneNumber:      phone,
		Email:            email,
		Username:         username,
		CredentialRecord: credential.Hash(string(password)),
		// No verification code: the account is usable immediately.
	}

	created, err := a.repos.Users(a.db).Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return errors.New("username or email is already taken")
		}
		return err
	}

	fmt.Printf("Created user %s (%s)\n", created.Username, created.ID)
	return nil
}
