package main

import (
	"fmt"
	"io"
	"path/filepath"

	"karasync/internal/report"
)

// printReport renders the session report as tables with a trailing summary
// line. Paths are shown relative to the root to keep rows readable.
func printReport(w io.Writer, rep report.Report, terminal bool) {
	rows := make([][]string, 0, len(rep.Outcomes))
	for _, o := range rep.Outcomes {
		status := string(o.Status)
		if o.ErrorKind != "" {
			status = fmt.Sprintf("%s (%s)", o.Status, o.ErrorKind)
		}
		detail := o.Detail
		if o.NewPath != "" {
			detail = "-> " + filepath.Base(o.NewPath)
		}
		rows = append(rows, []string{
			relativePath(rep.Root, o.Path),
			status,
			o.RecordID,
			detail,
		})
	}
	if len(rows) > 0 {
		fmt.Fprintln(w, renderTable([]string{"File", "Status", "Record", "Detail"}, rows, terminal))
	}

	c := rep.Counts
	fmt.Fprintf(w, "%d files: %d updated, %d current, %d unmatched, %d conflicts, %d errors\n",
		c.Total, c.Updated, c.AlreadyCurrent, c.Unmatched, c.Conflicts, c.Errors)

	if len(rep.Missing) > 0 {
		fmt.Fprintf(w, "\n%d catalog records have no file in the library:\n", len(rep.Missing))
		missingRows := make([][]string, 0, len(rep.Missing))
		for _, m := range rep.Missing {
			missingRows = append(missingRows, []string{m.ID, m.Artist, m.Title})
		}
		fmt.Fprintln(w, renderTable([]string{"Record", "Artist", "Title"}, missingRows, terminal))
	}
}

func relativePath(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return rel
}
