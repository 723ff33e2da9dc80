package shell

import (
	"context"
	"fmt"
)

// PipelineResult holds per-stage inserted counts. On failure the counts of
// the stages that already ran are still set; those stages committed
// independently and are not rolled back.
type PipelineResult struct {
	Users       int64
	Books       int64
	Activity    int64
	Impressions int64
}

// RunPipeline chains the four generators with derived counts: Users=n,
// Books=n, Activity=max(n,1), Impressions=max(n/2,1). The first failing
// stage aborts the rest.
func RunPipeline(ctx context.Context, g Generators, n int64) (PipelineResult, error) {
	var r PipelineResult
	var err error

	if r.Users, err = g.GenerateUsers(ctx, n); err != nil {
		return r, fmt.Errorf("users stage: %w", err)
	}
	if r.Books, err = g.GenerateBooks(ctx, n); err != nil {
		return r, fmt.Errorf("books stage: %w", err)
	}
	if r.Activity, err = g.GenerateActivity(ctx, max(n, 1)); err != nil {
		return r, fmt.Errorf("activity stage: %w", err)
	}
	if r.Impressions, err = g.GenerateImpressions(ctx, max(n/2, 1)); err != nil {
		return r, fmt.Errorf("impressions stage: %w", err)
	}
	return r, nil
}

func (sh *Shell) generateMenu(ctx context.Context) error {
	for {
		sh.printer.Menu("--- Generate data ---",
			"1) Users (N)",
			"2) Books (N)",
			"3) Activity (unique user×book pairs)",
			"4) Impressions (over existing activity)",
			"5) Pipeline 1>2>3>4",
			"0) Back")
		choice, ok := sh.prompter.line("> ")
		if !ok {
			return nil
		}

		// generation failures are reported here so the operator stays in
		// this submenu; a capacity error is a routine outcome
		switch choice {
		case "1":
			n := int64(sh.prompter.AskInt("how many users (e.g. 5000): ", 1))
			cnt, err := sh.store.GenerateUsers(ctx, n)
			if err != nil {
				sh.reportError(err)
				continue
			}
			sh.printer.Info("users inserted: %d", cnt)

		case "2":
			n := int64(sh.prompter.AskInt("how many books (e.g. 3000): ", 1))
			cnt, err := sh.store.GenerateBooks(ctx, n)
			if err != nil {
				sh.reportError(err)
				continue
			}
			sh.printer.Info("books inserted: %d", cnt)

		case "3":
			n := int64(sh.prompter.AskInt("how many activity pairs (e.g. 10000): ", 1))
			cnt, err := sh.store.GenerateActivity(ctx, n)
			if err != nil {
				sh.reportError(err)
				continue
			}
			sh.printer.Info("activity pairs inserted: %d", cnt)

		case "4":
			n := int64(sh.prompter.AskInt("how many impressions (e.g. 5000): ", 1))
			cnt, err := sh.store.GenerateImpressions(ctx, n)
			if err != nil {
				sh.reportError(err)
				continue
			}
			sh.printer.Info("impressions inserted: %d", cnt)

		case "5":
			n := int64(sh.prompter.AskInt("base N for the pipeline: ", 1))
			r, err := RunPipeline(ctx, sh.store, n)
			if err != nil {
				sh.printer.Info("completed before failure: users=%d, books=%d, activity=%d, impressions=%d",
					r.Users, r.Books, r.Activity, r.Impressions)
				sh.reportError(err)
				continue
			}
			sh.printer.Info("OK: users=%d, books=%d, activity=%d, impressions=%d",
				r.Users, r.Books, r.Activity, r.Impressions)

		case "0":
			return nil
		}
	}
}
