package shell

import (
	"context"
	"fmt"
	"strconv"

	"bookadmin/internal/models"
)

func (sh *Shell) usersMenu(ctx context.Context) error {
	for {
		sh.printer.Menu("--- Users ---",
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
			users, err := sh.store.ListUsers(ctx, sh.cfg.ListLimit, 0)
			if err != nil {
				return err
			}
			sh.showUsers(users)

		case "2":
			full := sh.prompter.AskString("full name: ", false)
			uname := sh.prompter.AskString("username (unique): ", false)
			tg := optional(sh.prompter.AskString("tg handle (@... or empty): ", true))

			user := models.User{FullName: full, Username: uname, TgHandle: tg}
			if err := sh.store.CreateUser(ctx, &user); err != nil {
				return err
			}
			sh.printer.Info("created user id=%d", user.ID)

		case "3":
			u, err := sh.selectUser(ctx)
			if err != nil {
				return err
			}
			if u == nil {
				continue
			}
			// empty input keeps the current value
			full := sh.prompter.AskString(fmt.Sprintf("full name [%s]: ", u.FullName), true)
			if full == "" {
				full = u.FullName
			}
			uname := sh.prompter.AskString(fmt.Sprintf("username [%s]: ", u.Username), true)
			if uname == "" {
				uname = u.Username
			}
			tg := u.TgHandle
			if in := sh.prompter.AskString(fmt.Sprintf("tg handle [%s]: ", strOrEmpty(u.TgHandle)), true); in != "" {
				tg = &in
			}

			n, err := sh.store.UpdateUser(ctx, u.ID, full, uname, tg)
			if err != nil {
				return err
			}
			sh.printer.Info("rows updated: %d", n)

		case "4":
			u, err := sh.selectUser(ctx)
			if err != nil {
				return err
			}
			if u == nil {
				continue
			}
			actN, err := sh.store.CountActivityByUser(ctx, u.ID)
			if err != nil {
				return err
			}
			impN, err := sh.store.CountImpressionsByUser(ctx, u.ID)
			if err != nil {
				return err
			}
			if dep := actN + impN; dep > 0 {
				sh.printer.Error("refused: %d dependent activity/impression rows exist", dep)
				continue
			}
			if !sh.prompter.Confirm(fmt.Sprintf("really delete user %s (%s)?", u.FullName, u.Username)) {
				sh.printer.Info("delete cancelled")
				continue
			}
			n, err := sh.store.DeleteUser(ctx, u.ID)
			if err != nil {
				return err
			}
			sh.printer.Info("rows deleted: %d", n)

		case "0":
			return nil
		}
	}
}

// selectUser resolves a user by full name and/or username patterns. A nil
// user with nil error means the operator cancelled or nothing matched.
func (sh *Shell) selectUser(ctx context.Context) (*models.User, error) {
	sh.printer.Info("search user by full name and/or username")
	full := sh.prompter.AskPattern("full name pattern (empty to skip): ")
	uname := sh.prompter.AskPattern("username pattern (empty to skip): ")

	users, err := sh.store.SearchUsers(ctx, full, uname)
	if err != nil {
		return nil, err
	}
	u, ok := selectRow(sh.printer, sh.prompter, users, "users", func(u models.User) string {
		return fmt.Sprintf("%s, %s, tg=%s, created=%s",
			u.FullName, u.Username, strOrEmpty(u.TgHandle), sh.printer.Timestamp(u.CreatedAt))
	})
	if !ok {
		return nil, nil
	}
	sh.printer.Info("selected user: %s (%s)", u.FullName, u.Username)
	return &u, nil
}

func (sh *Shell) showUsers(users []models.User) {
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		rows = append(rows, []string{
			strconv.FormatInt(u.ID, 10),
			u.FullName,
			u.Username,
			strOrEmpty(u.TgHandle),
			sh.printer.Timestamp(u.CreatedAt),
		})
	}
	sh.printer.Table([]string{"id", "full_name", "username", "tg_handle", "created_at"}, rows)
}
