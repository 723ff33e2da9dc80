package shell

import (
	"context"
	"fmt"
	"strconv"

	"bookadmin/internal/store"
)

func (sh *Shell) impressionsMenu(ctx context.Context) error {
	for {
		sh.printer.Menu("--- Impressions ---",
			"1) List (first 50)",
			"2) Add (checked against activity)",
			"3) Update",
			"4) Delete",
			"5) Add WITHOUT activity check (demo of a store FK failure)",
			"0) Back")
		choice, ok := sh.prompter.line("> ")
		if !ok {
			return nil
		}

		switch choice {
		case "1":
			rows, err := sh.store.ListImpressions(ctx, sh.cfg.ListLimit, 0)
			if err != nil {
				return err
			}
			sh.showImpressions(rows)

		case "2":
			sh.printer.Info("pick a user, then one of their existing activity records")
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
			rating := sh.prompter.AskDecimal("rating (0.0-5.0): ", 0.0, 5.0)
			comment := optional(sh.prompter.AskString("comment (may be empty): ", true))

			id, err := sh.store.CreateImpression(ctx, act.UserID, act.BookID, rating, comment)
			if err != nil {
				return err
			}
			sh.printer.Info("created impression id=%d", id)

		case "3":
			sh.printer.Info("pick the user whose impression to update")
			u, err := sh.selectUser(ctx)
			if err != nil {
				return err
			}
			if u == nil {
				continue
			}
			impr, err := sh.selectImpressionForUser(ctx, u.ID)
			if err != nil {
				return err
			}
			if impr == nil {
				continue
			}
			rating := sh.prompter.AskDecimal(fmt.Sprintf("new rating [%.1f] (0.0-5.0): ", impr.Rating), 0.0, 5.0)
			comment := optional(sh.prompter.AskString(fmt.Sprintf("new comment [%s]: ", strOrEmpty(impr.Comment)), true))

			n, err := sh.store.UpdateImpression(ctx, impr.ID, rating, comment)
			if err != nil {
				return err
			}
			sh.printer.Info("rows updated: %d", n)

		case "4":
			sh.printer.Info("pick the user whose impression to delete")
			u, err := sh.selectUser(ctx)
			if err != nil {
				return err
			}
			if u == nil {
				continue
			}
			impr, err := sh.selectImpressionForUser(ctx, u.ID)
			if err != nil {
				return err
			}
			if impr == nil {
				continue
			}
			if !sh.prompter.Confirm(fmt.Sprintf("delete impression id=%d on %q rated %.1f?", impr.ID, impr.Title, impr.Rating)) {
				sh.printer.Info("delete cancelled")
				continue
			}
			n, err := sh.store.DeleteImpression(ctx, impr.ID)
			if err != nil {
				return err
			}
			sh.printer.Info("rows deleted: %d", n)

		case "5":
			// Deliberate fault injection: user and book are picked
			// independently, so the pair may have no activity row and the
			// store rejects the insert with a foreign key violation.
			sh.printer.Info("DEMO: adding an impression WITHOUT the activity check (an FK error is possible)")
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
			rating := sh.prompter.AskDecimal("rating (0.0-5.0): ", 0.0, 5.0)
			comment := optional(sh.prompter.AskString("comment (may be empty): ", true))

			id, err := sh.store.CreateImpression(ctx, u.ID, b.ID, rating, comment)
			if err != nil {
				return err
			}
			sh.printer.Info("(demo) created impression id=%d", id)

		case "0":
			return nil
		}
	}
}

func (sh *Shell) selectImpressionForUser(ctx context.Context, userID int64) (*store.ImpressionRow, error) {
	rows, err := sh.store.ImpressionsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	impr, ok := selectRow(sh.printer, sh.prompter, rows, "impressions for this user", func(i store.ImpressionRow) string {
		return fmt.Sprintf("%s, rating=%.1f, comment=%s, created=%s",
			i.Title, i.Rating, strOrEmpty(i.Comment), sh.printer.Timestamp(i.CreatedAt))
	})
	if !ok {
		return nil, nil
	}
	sh.printer.Info("selected impression on %q rated %.1f", impr.Title, impr.Rating)
	return &impr, nil
}

func (sh *Shell) showImpressions(imprs []store.ImpressionRow) {
	rows := make([][]string, 0, len(imprs))
	for _, i := range imprs {
		rows = append(rows, []string{
			strconv.FormatInt(i.ID, 10),
			strconv.FormatInt(i.UserID, 10),
			i.Username,
			strconv.FormatInt(i.BookID, 10),
			i.Title,
			fmt.Sprintf("%.1f", i.Rating),
			strOrEmpty(i.Comment),
			sh.printer.Timestamp(i.CreatedAt),
		})
	}
	sh.printer.Table([]string{"id", "user_id", "username", "book_id", "title", "rating", "comment", "created_at"}, rows)
}
