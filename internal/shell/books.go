package shell

import (
	"context"
	"fmt"
	"strconv"

	"bookadmin/internal/models"
)

func (sh *Shell) booksMenu(ctx context.Context) error {
	for {
		sh.printer.Menu("--- Books ---",
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
			books, err := sh.store.ListBooks(ctx, sh.cfg.ListLimit, 0)
			if err != nil {
				return err
			}
			sh.showBooks(books)

		case "2":
			title := sh.prompter.AskString("title: ", false)
			author := sh.prompter.AskString("author: ", false)
			genre := sh.prompter.AskString("genre: ", false)

			book := models.Book{Title: title, Author: author, Genre: genre}
			if err := sh.store.CreateBook(ctx, &book); err != nil {
				return err
			}
			sh.printer.Info("created book id=%d", book.ID)

		case "3":
			b, err := sh.selectBook(ctx)
			if err != nil {
				return err
			}
			if b == nil {
				continue
			}
			title := sh.prompter.AskString(fmt.Sprintf("title [%s]: ", b.Title), true)
			if title == "" {
				title = b.Title
			}
			author := sh.prompter.AskString(fmt.Sprintf("author [%s]: ", b.Author), true)
			if author == "" {
				author = b.Author
			}
			genre := sh.prompter.AskString(fmt.Sprintf("genre [%s]: ", b.Genre), true)
			if genre == "" {
				genre = b.Genre
			}

			n, err := sh.store.UpdateBook(ctx, b.ID, title, author, genre)
			if err != nil {
				return err
			}
			sh.printer.Info("rows updated: %d", n)

		case "4":
			b, err := sh.selectBook(ctx)
			if err != nil {
				return err
			}
			if b == nil {
				continue
			}
			actN, err := sh.store.CountActivityByBook(ctx, b.ID)
			if err != nil {
				return err
			}
			impN, err := sh.store.CountImpressionsByBook(ctx, b.ID)
			if err != nil {
				return err
			}
			if dep := actN + impN; dep > 0 {
				sh.printer.Error("refused: %d dependent activity/impression rows exist", dep)
				continue
			}
			if !sh.prompter.Confirm(fmt.Sprintf("really delete book %q (%s)?", b.Title, b.Author)) {
				sh.printer.Info("delete cancelled")
				continue
			}
			n, err := sh.store.DeleteBook(ctx, b.ID)
			if err != nil {
				return err
			}
			sh.printer.Info("rows deleted: %d", n)

		case "0":
			return nil
		}
	}
}

func (sh *Shell) selectBook(ctx context.Context) (*models.Book, error) {
	sh.printer.Info("search book by title / author / genre")
	title := sh.prompter.AskPattern("title pattern (empty to skip): ")
	author := sh.prompter.AskPattern("author pattern (empty to skip): ")
	genre := sh.prompter.AskPattern("genre pattern (empty to skip): ")

	books, err := sh.store.SearchBooks(ctx, title, author, genre)
	if err != nil {
		return nil, err
	}
	b, ok := selectRow(sh.printer, sh.prompter, books, "books", func(b models.Book) string {
		return fmt.Sprintf("%s, %s, %s, created=%s",
			b.Title, b.Author, b.Genre, sh.printer.Timestamp(b.CreatedAt))
	})
	if !ok {
		return nil, nil
	}
	sh.printer.Info("selected book: %q (%s, %s)", b.Title, b.Author, b.Genre)
	return &b, nil
}

func (sh *Shell) showBooks(books []models.Book) {
	rows := make([][]string, 0, len(books))
	for _, b := range books {
		rows = append(rows, []string{
			strconv.FormatInt(b.ID, 10),
			b.Title,
			b.Author,
			b.Genre,
			sh.printer.Timestamp(b.CreatedAt),
		})
	}
	sh.printer.Table([]string{"id", "title", "author", "genre", "created_at"}, rows)
}
