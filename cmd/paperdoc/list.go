package main

import (
	"fmt"

	"github.com/fwojciec/paperdoc"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	recs, err := deps.Ledger.ListScrapes(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", paperdoc.ErrorMessage(err))
		return err
	}

	if len(recs) == 0 {
		fmt.Fprintln(deps.Stdout, "No papers fetched yet. Use 'paperdoc fetch <doi>' to fetch one.")
		return nil
	}

	for _, r := range recs {
		title := r.Title
		if title == "" {
			title = "(untitled)"
		}
		fmt.Fprintf(deps.Stdout, "%s  %-10s  %s  %s\n", r.FetchedAt.Format("2006-01-02"), r.Publisher, r.DOI, title)
	}

	return nil
}
