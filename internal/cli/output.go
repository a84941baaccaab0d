package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/rshade/dataexplorer/internal/api"
	"github.com/rshade/dataexplorer/internal/pagination"
	"github.com/rshade/dataexplorer/internal/tui"
)

// Output formats accepted by --output.
const (
	outputFormatTable = "table"
	outputFormatJSON  = "json"
)

const msgNoUsers = "No users found. Try adjusting your filters."

// ErrUnsupportedOutput is returned for an unknown --output value.
var ErrUnsupportedOutput = errors.New("unsupported output format: use table or json")

func validateOutputFormat(format string) error {
	switch format {
	case outputFormatTable, outputFormatJSON:
		return nil
	default:
		return fmt.Errorf("%w: got %q", ErrUnsupportedOutput, format)
	}
}

// userPageJSON is the --output json shape of one page.
type userPageJSON struct {
	Users      []api.User          `json:"users"`
	Pagination pagination.PageMeta `json:"pagination"`
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// renderUsersJSON writes the page and its pagination metadata as indented JSON.
func renderUsersJSON(w io.Writer, page *api.ResultPage, meta pagination.PageMeta) error {
	users := page.Items
	if users == nil {
		users = []api.User{}
	}
	return writeJSON(w, userPageJSON{Users: users, Pagination: meta})
}

// newUserTable builds a borderless, left-aligned table.
func newUserTable(w io.Writer) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.Options(
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.Border{
				Left:   tw.Off,
				Right:  tw.Off,
				Top:    tw.Off,
				Bottom: tw.Off,
			},
			Settings: tw.Settings{
				Separators: tw.Separators{
					ShowHeader:     tw.On,
					ShowFooter:     tw.Off,
					BetweenRows:    tw.Off,
					BetweenColumns: tw.Off,
				},
			},
		}),
		tablewriter.WithHeaderAlignment(tw.AlignLeft),
		tablewriter.WithRowAlignment(tw.AlignLeft),
	)
	return table
}

// renderUsersTable writes the page as a table followed by the result summary.
func renderUsersTable(w io.Writer, page *api.ResultPage, meta pagination.PageMeta) error {
	if len(page.Items) == 0 {
		if _, err := fmt.Fprintln(w, msgNoUsers); err != nil {
			return err
		}
		if meta.TotalPages > 0 && meta.CurrentPage > meta.TotalPages {
			_, err := fmt.Fprintf(w, "Page %d is past the last page (%d).\n", meta.CurrentPage, meta.TotalPages)
			return err
		}
		return nil
	}

	table := newUserTable(w)
	table.Header("ID", "NAME", "EMAIL", "ROLE", "DEPARTMENT", "DATE JOINED")
	for _, u := range page.Items {
		joined := u.DateJoined.String()
		if joined == "" {
			joined = "-"
		}
		row := []string{strconv.Itoa(u.ID), u.Name, u.Email, u.Role, u.Department, joined}
		if err := table.Append(row); err != nil {
			return fmt.Errorf("rendering table: %w", err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("rendering table: %w", err)
	}

	_, err := fmt.Fprintf(w, "\nShowing %s to %s of %s results (page %d of %d)\n",
		tui.FormatCount(meta.From), tui.FormatCount(meta.To), tui.FormatCount(meta.TotalItems),
		meta.CurrentPage, meta.TotalPages)
	return err
}

// renderOptions prints one option per line, or the JSON array.
func renderOptions(w io.Writer, format string, options []string) error {
	if format == outputFormatJSON {
		if options == nil {
			options = []string{}
		}
		return writeJSON(w, options)
	}
	for _, o := range options {
		if _, err := fmt.Fprintln(w, o); err != nil {
			return err
		}
	}
	return nil
}
