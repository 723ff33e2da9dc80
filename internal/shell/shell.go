// Package shell implements the interactive operator session: the menu
// dispatch loop, the CRUD and generation workflows, the attribute-search
// selection protocol and the two I/O collaborators (Prompter and Printer).
package shell

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"bookadmin/internal/config"
	"bookadmin/internal/models"
	"bookadmin/internal/store"
)

// UserStore covers the user entity plus its dependency counts.
type UserStore interface {
	ListUsers(ctx context.Context, limit, offset int) ([]models.User, error)
	SearchUsers(ctx context.Context, fullLike, usernameLike *string) ([]models.User, error)
	CreateUser(ctx context.Context, user *models.User) error
	UpdateUser(ctx context.Context, id int64, fullName, username string, tgHandle *string) (int64, error)
	DeleteUser(ctx context.Context, id int64) (int64, error)
	CountActivityByUser(ctx context.Context, userID int64) (int64, error)
	CountImpressionsByUser(ctx context.Context, userID int64) (int64, error)
}

type BookStore interface {
	ListBooks(ctx context.Context, limit, offset int) ([]models.Book, error)
	SearchBooks(ctx context.Context, titleLike, authorLike, genreLike *string) ([]models.Book, error)
	CreateBook(ctx context.Context, book *models.Book) error
	UpdateBook(ctx context.Context, id int64, title, author, genre string) (int64, error)
	DeleteBook(ctx context.Context, id int64) (int64, error)
	CountActivityByBook(ctx context.Context, bookID int64) (int64, error)
	CountImpressionsByBook(ctx context.Context, bookID int64) (int64, error)
}

type ActivityStore interface {
	ListActivity(ctx context.Context, limit, offset int) ([]store.ActivityRow, error)
	ActivityForUser(ctx context.Context, userID int64) ([]store.ActivityRow, error)
	CreateActivity(ctx context.Context, userID, bookID int64) (bool, error)
	DeleteActivity(ctx context.Context, userID, bookID int64) (int64, error)
	CountImpressionsForPair(ctx context.Context, userID, bookID int64) (int64, error)
}

type ImpressionStore interface {
	ListImpressions(ctx context.Context, limit, offset int) ([]store.ImpressionRow, error)
	ImpressionsForUser(ctx context.Context, userID int64) ([]store.ImpressionRow, error)
	CreateImpression(ctx context.Context, userID, bookID int64, rating float64, comment *string) (int64, error)
	UpdateImpression(ctx context.Context, id int64, rating float64, comment *string) (int64, error)
	DeleteImpression(ctx context.Context, id int64) (int64, error)
}

// Generators are the four bulk synthetic-data inserters.
type Generators interface {
	GenerateUsers(ctx context.Context, n int64) (int64, error)
	GenerateBooks(ctx context.Context, n int64) (int64, error)
	GenerateActivity(ctx context.Context, n int64) (int64, error)
	GenerateImpressions(ctx context.Context, n int64) (int64, error)
}

type Searches interface {
	SearchImpressions(ctx context.Context, f store.ImpressionFilter) ([]store.SearchRow, time.Duration, error)
	AggregateRatings(ctx context.Context, f store.RatingAggFilter) ([]store.RatingAggRow, time.Duration, error)
	UsersWithoutHandle(ctx context.Context, f store.NoHandleFilter) ([]store.NoHandleRow, time.Duration, error)
}

// Store is everything the shell needs from the data access layer.
type Store interface {
	UserStore
	BookStore
	ActivityStore
	ImpressionStore
	Generators
	Searches
}

type Shell struct {
	cfg      *config.Config
	log      *slog.Logger
	store    Store
	printer  *Printer
	prompter *Prompter
}

func New(cfg *config.Config, logger *slog.Logger, st Store, in io.Reader, out io.Writer) *Shell {
	return &Shell{
		cfg:      cfg,
		log:      logger,
		store:    st,
		printer:  NewPrinter(out, cfg.Location()),
		prompter: NewPrompter(in, out),
	}
}

// Run drives the main menu until the operator quits. Store failures from
// any workflow surface here, get classified and reported, and the session
// continues; nothing short of quitting ends the loop.
func (sh *Shell) Run(ctx context.Context) {
	sh.printer.Info("database connection OK")
	for {
		sh.printer.Menu("=== bookadmin ===",
			"1) Users",
			"2) Books",
			"3) Activity (user, book)",
			"4) Impressions",
			"5) Generate data",
			"6) Searches (with timing)",
			"0) Quit")
		choice, ok := sh.prompter.line("> ")
		if !ok {
			return
		}

		var err error
		switch choice {
		case "1":
			err = sh.usersMenu(ctx)
		case "2":
			err = sh.booksMenu(ctx)
		case "3":
			err = sh.activityMenu(ctx)
		case "4":
			err = sh.impressionsMenu(ctx)
		case "5":
			err = sh.generateMenu(ctx)
		case "6":
			err = sh.searchesMenu(ctx)
		case "0":
			return
		}
		if err != nil {
			sh.reportError(err)
		}
	}
}

// reportError translates classified store failures into operator-facing
// categories. The session always continues.
func (sh *Shell) reportError(err error) {
	var se *store.Error
	if errors.As(err, &se) {
		switch se.Kind {
		case store.KindReferential:
			sh.printer.Error("foreign key violation, operation aborted (%s: %s)", codeOrDash(se.Code), se.Message)
		case store.KindUnique:
			sh.printer.Error("unique value collision (username etc.) (%s: %s)", codeOrDash(se.Code), se.Message)
		case store.KindCapacity:
			sh.printer.Error("%s", se.Message)
		default:
			sh.printer.Error("database error (SQLSTATE=%s): %s", codeOrDash(se.Code), se.Message)
		}
		sh.log.Error("store operation failed", "kind", se.Kind.String(), "code", se.Code)
		return
	}

	sh.printer.Error("unexpected error: %v", err)
	sh.log.Error("unexpected error", "err", err)
}

func codeOrDash(code string) string {
	if code == "" {
		return "-"
	}
	return code
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// optional maps empty operator input to nil.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
