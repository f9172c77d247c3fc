package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/octofit/octofit-views/internal/config"
	"github.com/octofit/octofit-views/internal/logging"
	"github.com/octofit/octofit-views/internal/render"
	"github.com/octofit/octofit-views/internal/resource"
	"github.com/octofit/octofit-views/internal/tui"
)

func main() {
	useTUI := flag.Bool("tui", false, "Start the interactive terminal UI")
	base := flag.String("base", "", "API base URL (overrides API_BASE_URL)")
	strict := flag.Bool("strict", false, "Treat a response without a list as an error (overrides STRICT_SHAPE)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: octofit [-tui] [-base url] [-strict] [%s|all]\n",
			strings.Join(names(), "|"))
		flag.PrintDefaults()
	}
	flag.Parse()

	if *base != "" {
		os.Setenv("API_BASE_URL", *base)
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}
	if *strict {
		cfg.StrictShape = true
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *useTUI {
		start := resource.Activities
		if flag.NArg() > 0 {
			if start, err = resource.Parse(flag.Arg(0)); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
		}
		// The terminal belongs to the UI; logs would corrupt it.
		opts := resource.Options{Logger: zap.NewNop(), StrictShape: cfg.StrictShape}
		m := tui.New(ctx, cfg.APIBaseURL, start, opts)
		defer m.Close()
		if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
			fmt.Fprintf(os.Stderr, "tui: %v\n", err)
			os.Exit(1)
		}
		return
	}

	logger, err := logging.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(2)
	}
	defer logger.Sync()

	targets := resource.All()
	if arg := flag.Arg(0); arg != "" && arg != "all" {
		r, err := resource.Parse(arg)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			flag.Usage()
			os.Exit(2)
		}
		targets = []resource.Resource{r}
	}

	opts := resource.Options{Logger: logger, StrictShape: cfg.StrictShape}
	failed, err := printViews(ctx, os.Stdout, cfg.APIBaseURL, targets, opts)
	if err != nil {
		logger.Sugar().Errorw("Failed to render views", "error", err)
		os.Exit(1)
	}
	if failed > 0 {
		os.Exit(1)
	}
}

// printViews mounts one view per target concurrently and prints their final
// states in target order. It returns how many views ended in Failed.
func printViews(ctx context.Context, w io.Writer, baseURL string, targets []resource.Resource, opts resource.Options) (int, error) {
	states := make([]resource.FetchState, len(targets))

	g, gctx := errgroup.WithContext(ctx)
	for i, r := range targets {
		i, r := i, r
		g.Go(func() error {
			v := resource.NewView(baseURL, r, opts)
			defer v.Destroy()

			stream, err := v.Observe(gctx)
			if err != nil {
				return fmt.Errorf("mount %s: %w", r, err)
			}
			states[i] = resource.Final(stream)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	failed := 0
	for i, r := range targets {
		if states[i].Status == resource.StatusFailed {
			failed++
		}
		n, err := render.State(states[i], r)
		if err != nil {
			return failed, err
		}
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprint(w, render.Text(n))
	}
	return failed, nil
}

func names() []string {
	var out []string
	for _, r := range resource.All() {
		out = append(out, r.String())
	}
	return out
}
