package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/folio/internal/blogsync"
	"github.com/folio/internal/category"
	"github.com/folio/internal/client"
)

const shellHelp = `Commands:
  logo              click the site logo (five quick clicks toggle admin mode)
  posts             list blog posts
  open <id>         show a post
  back              return to the list
  new               write and publish a post (admin)
  delete [id]       delete a post, the open one by default (admin)
  contact           send a contact message
  connect           retry the backend connection
  status            show connection and admin state
  help              show this help
  quit              leave the shell`

type shell struct {
	app *app
	in  *bufio.Scanner
	out io.Writer
}

func newShell(a *app, in io.Reader, out io.Writer) *shell {
	return &shell{app: a, in: bufio.NewScanner(in), out: out}
}

func (s *shell) run(ctx context.Context) error {
	fmt.Fprintln(s.out, "Type 'help' for commands.")
	for {
		line, ok := s.prompt(s.promptText())
		if !ok {
			fmt.Fprintln(s.out)
			return s.in.Err()
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if quit := s.dispatch(ctx, fields[0], fields[1:]); quit {
			return nil
		}
	}
}

func (s *shell) promptText() string {
	if s.app.session.AdminMode() {
		return "folio[admin]> "
	}
	return "folio> "
}

func (s *shell) dispatch(ctx context.Context, cmd string, args []string) bool {
	session := s.app.session

	switch strings.ToLower(cmd) {
	case "quit", "exit":
		return true
	case "help", "?":
		fmt.Fprintln(s.out, shellHelp)
	case "logo":
		if session.Admin.LogoClick() {
			if session.AdminMode() {
				fmt.Fprintln(s.out, "Admin mode on.")
			} else {
				fmt.Fprintln(s.out, "Admin mode off.")
			}
		}
	case "status":
		s.status()
	case "connect":
		if err := s.app.connect(ctx); err != nil {
			s.app.term.Error("Could not reach the backend.")
		} else {
			fmt.Fprintln(s.out, "Connected.")
		}
	case "posts", "ls":
		posts, err := session.Blog.Posts(ctx)
		if err != nil {
			s.report(err)
			return false
		}
		printPostList(s.out, posts)
	case "open":
		id, err := parseID(args, 0)
		if err != nil {
			fmt.Fprintln(s.out, "usage: open <id>")
			return false
		}
		post, err := session.Blog.Open(ctx, id)
		if err != nil {
			s.report(err)
			return false
		}
		printPost(s.out, post)
	case "back":
		session.Blog.Back()
	case "new":
		s.newPost(ctx)
	case "delete", "rm":
		s.deletePost(ctx, args)
	case "contact":
		s.contact(ctx)
	default:
		fmt.Fprintf(s.out, "unknown command %q, type 'help'\n", cmd)
	}
	return false
}

func (s *shell) status() {
	connected := s.app.handle.Current() != nil
	fmt.Fprintf(s.out, "connected: %v\nadmin mode: %v\n", connected, s.app.session.AdminMode())
	if post, ok := s.app.session.Blog.Selected(); ok {
		fmt.Fprintf(s.out, "open post: %d %s\n", post.ID, post.Title)
	}
}

func (s *shell) newPost(ctx context.Context) {
	blog := s.app.session.Blog
	if !blog.FormOpen() {
		if err := blog.ToggleForm(); err != nil {
			s.report(err)
			return
		}
	}

	var draft blogsync.PostDraft
	var ok bool
	if draft.Title, ok = s.prompt("Title: "); !ok {
		return
	}
	if draft.Excerpt, ok = s.prompt("Excerpt: "); !ok {
		return
	}
	fmt.Fprintf(s.out, "Categories: %s\n", strings.Join(category.All, ", "))
	picked, ok := s.prompt(fmt.Sprintf("Category [%s]: ", category.Default))
	if !ok {
		return
	}
	draft.Category = resolveCategory(picked)
	fmt.Fprintln(s.out, "Content (blank line between paragraphs, '.' alone to finish):")
	if draft.Content, ok = s.readBlock(); !ok {
		return
	}

	id, err := blog.Publish(ctx, draft)
	if err != nil {
		s.reportMutation(err)
		return
	}
	fmt.Fprintf(s.out, "Published as #%d.\n", id)
}

func (s *shell) deletePost(ctx context.Context, args []string) {
	blog := s.app.session.Blog

	var id uint64
	if len(args) > 0 {
		parsed, err := parseID(args, 0)
		if err != nil {
			fmt.Fprintln(s.out, "usage: delete [id]")
			return
		}
		id = parsed
	} else if post, ok := blog.Selected(); ok {
		id = post.ID
	} else {
		fmt.Fprintln(s.out, "usage: delete [id]")
		return
	}

	if err := blog.Delete(ctx, id); err != nil {
		s.reportMutation(err)
	}
}

func (s *shell) contact(ctx context.Context) {
	form := s.app.session.Contact
	current := form.Values()

	name, ok := s.promptDefault("Name", current.Name)
	if !ok {
		return
	}
	form.SetName(name)
	email, ok := s.promptDefault("Email", current.Email)
	if !ok {
		return
	}
	form.SetEmail(email)
	fmt.Fprintln(s.out, "Message ('.' alone to finish):")
	message, ok := s.readBlock()
	if !ok {
		return
	}
	if strings.TrimSpace(message) == "" {
		message = current.Message
	}
	form.SetMessage(message)

	if err := form.Submit(ctx); err != nil {
		s.reportMutation(err)
	}
}

// report prints errors of read operations, which the synchronizer does not announce.
func (s *shell) report(err error) {
	switch {
	case errors.Is(err, blogsync.ErrNotConnected):
		s.app.term.Error("Not connected to the backend. Try 'connect'.")
	case errors.Is(err, blogsync.ErrRemote):
		s.app.term.Error("Could not load from the backend.")
	default:
		s.reportMutation(err)
	}
}

// reportMutation prints errors the synchronizer did not already announce.
func (s *shell) reportMutation(err error) {
	var verr *blogsync.ValidationError
	switch {
	case errors.As(err, &verr):
		s.app.term.Error("Please fill in: " + strings.Join(verr.Fields, ", "))
	case errors.Is(err, client.ErrAdminRequired):
		s.app.term.Error("Admin mode is off.")
	case errors.Is(err, blogsync.ErrPostNotFound):
		s.app.term.Error("Post not found.")
	case errors.Is(err, blogsync.ErrRemote), errors.Is(err, blogsync.ErrNotConnected):
		// already notified
	default:
		s.app.term.Error(err.Error())
	}
}

func (s *shell) prompt(label string) (string, bool) {
	fmt.Fprint(s.out, label)
	if !s.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}

func (s *shell) promptDefault(label, current string) (string, bool) {
	if current != "" {
		label = fmt.Sprintf("%s [%s]", label, current)
	}
	value, ok := s.prompt(label + ": ")
	if ok && value == "" {
		value = current
	}
	return value, ok
}

func (s *shell) readBlock() (string, bool) {
	var lines []string
	for s.in.Scan() {
		line := s.in.Text()
		if strings.TrimSpace(line) == "." {
			return strings.Join(lines, "\n"), true
		}
		lines = append(lines, line)
	}
	return "", false
}

func parseID(args []string, index int) (uint64, error) {
	if len(args) <= index {
		return 0, errors.New("missing id")
	}
	return strconv.ParseUint(args[index], 10, 64)
}
