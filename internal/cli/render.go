package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/folio/internal/actor"
	"github.com/folio/internal/client"
)

const dateLayout = "Jan 2, 2006"

func printPostList(out io.Writer, posts []actor.BlogPost) {
	if len(posts) == 0 {
		fmt.Fprintln(out, "No posts yet.")
		return
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tCATEGORY\tTITLE")
	for _, p := range posts {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", p.ID, p.Created().Format(dateLayout), p.Category, p.Title)
	}
	tw.Flush()
}

func printPost(out io.Writer, p actor.BlogPost) {
	fmt.Fprintf(out, "%s\n", p.Title)
	fmt.Fprintf(out, "%s · %s\n", p.Category, p.Created().Format(dateLayout))
	fmt.Fprintln(out, strings.Repeat("─", 40))
	fmt.Fprintf(out, "%s\n\n", p.Excerpt)
	for _, para := range client.Paragraphs(p.Content) {
		fmt.Fprintf(out, "%s\n\n", para)
	}
}
