package shell

import (
	"context"
	"fmt"
	"strconv"

	"bookadmin/internal/store"
)

func (sh *Shell) searchesMenu(ctx context.Context) error {
	for {
		sh.printer.Menu("--- Searches ---",
			"1) Multi-criteria: title/author/genre + rating range + dates + tg handle",
			"2) Aggregate: mean ratings by author/genre in a date window",
			"3) Users without tg handle who engaged with a genre",
			"0) Back")
		choice, ok := sh.prompter.line("> ")
		if !ok {
			return nil
		}

		switch choice {
		case "1":
			f := store.ImpressionFilter{
				TitleLike:  sh.prompter.AskPattern("title pattern (empty to skip): "),
				AuthorLike: sh.prompter.AskPattern("author pattern (empty to skip): "),
				GenreLike:  sh.prompter.AskPattern("genre pattern (empty to skip): "),
				RatingMin:  sh.prompter.AskDecimalOptional("min rating"),
				RatingMax:  sh.prompter.AskDecimalOptional("max rating"),
				DateFrom:   sh.prompter.AskDateOptional("date from (YYYY-MM-DD)"),
				DateTo:     sh.prompter.AskDateOptional("date to (YYYY-MM-DD)"),
				Handle:     sh.prompter.AskHandleFilter(),
			}
			rows, elapsed, err := sh.store.SearchImpressions(ctx, f)
			if err != nil {
				return err
			}
			sh.showSearchRows(rows)
			sh.printer.Elapsed(elapsed)

		case "2":
			f := store.RatingAggFilter{
				DateFrom: sh.prompter.AskDateOptional("date from (YYYY-MM-DD)"),
				DateTo:   sh.prompter.AskDateOptional("date to (YYYY-MM-DD)"),
				MinCount: sh.prompter.AskInt("min impressions per group: ", 1),
				GroupBy:  sh.prompter.AskString("group by 'author' or 'genre': ", false),
			}
			rows, elapsed, err := sh.store.AggregateRatings(ctx, f)
			if err != nil {
				return err
			}
			sh.showAggRows(rows)
			sh.printer.Elapsed(elapsed)

		case "3":
			f := store.NoHandleFilter{
				GenreLike: sh.prompter.AskPattern("genre pattern: "),
				DateFrom:  sh.prompter.AskDateOptional("activity date from (YYYY-MM-DD)"),
				DateTo:    sh.prompter.AskDateOptional("activity date to (YYYY-MM-DD)"),
			}
			rows, elapsed, err := sh.store.UsersWithoutHandle(ctx, f)
			if err != nil {
				return err
			}
			sh.showNoHandleRows(rows)
			sh.printer.Elapsed(elapsed)

		case "0":
			return nil
		}
	}
}

func (sh *Shell) showSearchRows(results []store.SearchRow) {
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		rows = append(rows, []string{
			strconv.FormatInt(r.UserID, 10),
			r.Username,
			strconv.FormatInt(r.BookID, 10),
			r.Title,
			r.Author,
			r.Genre,
			fmt.Sprintf("%.1f", r.Rating),
			strOrEmpty(r.Comment),
			sh.printer.Timestamp(r.CreatedAt),
		})
	}
	sh.printer.Table([]string{"user_id", "username", "book_id", "title", "author", "genre", "rating", "comment", "created_at"}, rows)
}

func (sh *Shell) showAggRows(results []store.RatingAggRow) {
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		rows = append(rows, []string{
			r.Group,
			strconv.FormatInt(r.Count, 10),
			fmt.Sprintf("%.2f", r.AvgRating),
		})
	}
	sh.printer.Table([]string{"group", "count", "avg_rating"}, rows)
}

func (sh *Shell) showNoHandleRows(results []store.NoHandleRow) {
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		rows = append(rows, []string{
			strconv.FormatInt(r.UserID, 10),
			r.Username,
			r.FullName,
		})
	}
	sh.printer.Table([]string{"user_id", "username", "full_name"}, rows)
}
