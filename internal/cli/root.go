// Package cli implements the folio terminal client.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/folio/internal/admin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Streams are the standard streams a command reads from and writes to.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

type rootOptions struct {
	streams    Streams
	configFile string
	scheduler  admin.Scheduler
	cfg        Config
}

// Execute runs the folio command line against the process streams.
func Execute() error {
	return NewRootCommand(Streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}).Execute()
}

// NewRootCommand builds the folio command tree.
func NewRootCommand(streams Streams) *cobra.Command {
	return newRootCommand(&rootOptions{streams: streams})
}

func newRootCommand(opts *rootOptions) *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:           "folio",
		Short:         "Terminal client for the folio portfolio and blog",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(v, cmd, opts.configFile)
			if err != nil {
				return err
			}
			opts.cfg = cfg
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runShell(cmd.Context(), opts)
		},
	}
	cmd.SetIn(opts.streams.In)
	cmd.SetOut(opts.streams.Out)
	cmd.SetErr(opts.streams.Err)

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "config file (default ./folio.yaml)")
	flags.String("server", "http://localhost:8080", "backend base URL")
	flags.Duration("timeout", 10*time.Second, "timeout for each backend request")
	flags.String("database", "", "use a local sqlite database instead of a server")
	flags.Bool("no-color", false, "disable colored output")
	flags.BoolP("verbose", "v", false, "log debug output to stderr")

	cmd.AddCommand(
		newShellCommand(opts),
		newPostsCommand(opts),
		newContactCommand(opts),
	)
	return cmd
}

func newShellCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start the interactive client",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runShell(cmd.Context(), opts)
		},
	}
}

func runShell(ctx context.Context, opts *rootOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := newApp(opts.cfg, opts.streams.Out, opts.scheduler)
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.connect(ctx); err != nil {
		a.term.Error("Backend unavailable, starting offline. Use 'connect' to retry.")
	}
	return newShell(a, opts.streams.In, a.term).run(ctx)
}

func newPostsCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "posts",
		Short: "Read blog posts",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List every post",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withConnectedApp(cmd.Context(), opts, func(ctx context.Context, a *app) error {
				posts, err := a.session.Blog.Posts(ctx)
				if err != nil {
					return err
				}
				printPostList(opts.streams.Out, posts)
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show <id>",
		Short: "Show one post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid post id %q", args[0])
			}
			return withConnectedApp(cmd.Context(), opts, func(ctx context.Context, a *app) error {
				post, err := a.session.Blog.Open(ctx, id)
				if err != nil {
					return err
				}
				printPost(opts.streams.Out, post)
				return nil
			})
		},
	})
	return cmd
}

func newContactCommand(opts *rootOptions) *cobra.Command {
	var name, email, message string

	cmd := &cobra.Command{
		Use:   "contact",
		Short: "Send a contact message",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withConnectedApp(cmd.Context(), opts, func(ctx context.Context, a *app) error {
				form := a.session.Contact
				form.SetName(name)
				form.SetEmail(email)
				form.SetMessage(message)
				return form.Submit(ctx)
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "your name")
	cmd.Flags().StringVar(&email, "email", "", "your email address")
	cmd.Flags().StringVar(&message, "message", "", "the message")
	return cmd
}

var errBackendUnavailable = errors.New("backend unavailable")

func withConnectedApp(ctx context.Context, opts *rootOptions, fn func(context.Context, *app) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := newApp(opts.cfg, opts.streams.Out, opts.scheduler)
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.connect(ctx); err != nil {
		return fmt.Errorf("%w: %w", errBackendUnavailable, err)
	}
	return fn(ctx, a)
}
