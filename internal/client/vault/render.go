package vault

import (
	"fmt"
	"io"
	"text/tabwriter"

	"campusvault/internal/client/api"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
)

// renderListing replaces the whole table on screen. Partial updates are never
// attempted; every successful fetch redraws from scratch.
func (c *Controller) renderListing(listing *api.FileListing) {
	if listing == nil || len(listing.Items) == 0 {
		c.notice("No files yet.")
		return
	}

	header := color.New(color.Bold)
	header.Fprintf(c.out, "Files (%d total)\n", listing.Total)

	tw := tabwriter.NewWriter(c.out, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tSIZE\tDESCRIPTION\tCREATED")
	for _, f := range listing.Items {
		created := ""
		if !f.CreatedAt.IsZero() {
			created = f.CreatedAt.Format("2006-01-02 15:04")
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
			f.ID, f.Filename, humanize.Bytes(uint64(f.Size)), f.Description, created)
	}
	tw.Flush()
}

// WriteHTML renders the listing as an HTML table fragment. Filenames and
// descriptions are user input and are escaped before they reach the markup.
func WriteHTML(w io.Writer, listing *api.FileListing) error {
	if listing == nil || len(listing.Items) == 0 {
		_, err := io.WriteString(w, "<p>No files yet.</p>\n")
		return err
	}

	if _, err := fmt.Fprintf(w, "<table>\n<thead><tr><th>ID</th><th>Name</th><th>Size</th><th>Description</th><th>Created</th></tr></thead>\n<tbody>\n"); err != nil {
		return err
	}
	for _, f := range listing.Items {
		created := ""
		if !f.CreatedAt.IsZero() {
			created = f.CreatedAt.Format("2006-01-02 15:04")
		}
		if _, err := fmt.Fprintf(w, "<tr><td>%d</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>\n",
			f.ID, EscapeHTML(f.Filename), humanize.Bytes(uint64(f.Size)), EscapeHTML(f.Description), created); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "</tbody>\n</table>\n")
	return err
}
