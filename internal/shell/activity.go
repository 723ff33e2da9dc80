package shell

import (
	"context"
	"fmt"
	"strconv"

	"bookadmin/internal/store"
)

func (sh *Shell) activityMenu(ctx context.Context) error {
	for {
		sh.printer.Menu("--- Activity (user, book) ---",
			"1) List (first 50)",
			"2) Add",
			"3) Update",
			"4) Delete",
			"0) Back")
		choice, ok := sh.prompter.line("> ")
		if !ok {
			return nil
		}

		switch choice {
		case "1":
			rows, err := sh.store.ListActivity(ctx, sh.cfg.ListLimit, 0)
			if err != nil {
				return err
			}
			sh.showActivity(rows)

		case "2":
			u, err := sh.selectUser(ctx)
			if err != nil {
				return err
			}
			if u == nil {
				continue
			}
			b, err := sh.selectBook(ctx)
			if err != nil {
				return err
			}
			if b == nil {
				continue
			}
			created, err := sh.store.CreateActivity(ctx, u.ID, b.ID)
			if err != nil {
				return err
			}
			if created {
				sh.printer.Info("activity added")
			} else {
				sh.printer.Info("this pair already exists")
			}

		case "3":
			sh.printer.Warn("activity has no update: the pair is the whole identity, delete and recreate instead")

		case "4":
			u, err := sh.selectUser(ctx)
			if err != nil {
				return err
			}
			if u == nil {
				continue
			}
			act, err := sh.selectActivityForUser(ctx, u.ID)
			if err != nil {
				return err
			}
			if act == nil {
				continue
			}
			dep, err := sh.store.CountImpressionsForPair(ctx, act.UserID, act.BookID)
			if err != nil {
				return err
			}
			if dep > 0 {
				sh.printer.Error("refused: %d dependent impressions exist for this pair", dep)
				continue
			}
			if !sh.prompter.Confirm(fmt.Sprintf("delete activity for %s and %q?", act.FullName, act.Title)) {
				sh.printer.Info("delete cancelled")
				continue
			}
			n, err := sh.store.DeleteActivity(ctx, act.UserID, act.BookID)
			if err != nil {
				return err
			}
			sh.printer.Info("rows deleted: %d", n)

		case "0":
			return nil
		}
	}
}

// selectActivityForUser lets the operator pick one of the given user's
// activity pairs. Selecting from existing pairs is also what guarantees the
// activity-exists precondition on the checked impression-create path.
func (sh *Shell) selectActivityForUser(ctx context.Context, userID int64) (*store.ActivityRow, error) {
	rows, err := sh.store.ActivityForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	act, ok := selectRow(sh.printer, sh.prompter, rows, "activity records for this user", func(a store.ActivityRow) string {
		return fmt.Sprintf("%s, %s, %s", a.Title, a.Author, a.Genre)
	})
	if !ok {
		return nil, nil
	}
	sh.printer.Info("selected activity: %s and %q", act.FullName, act.Title)
	return &act, nil
}

func (sh *Shell) showActivity(acts []store.ActivityRow) {
	rows := make([][]string, 0, len(acts))
	for _, a := range acts {
		rows = append(rows, []string{
			strconv.FormatInt(a.UserID, 10),
			a.Username,
			a.FullName,
			strconv.FormatInt(a.BookID, 10),
			a.Title,
			a.Author,
			a.Genre,
		})
	}
	sh.printer.Table([]string{"user_id", "username", "full_name", "book_id", "title", "author", "genre"}, rows)
}
