package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"flicksy/internal/api"
	"flicksy/internal/dom"
	"flicksy/internal/logging"
	"flicksy/internal/page"
	"flicksy/internal/render"
	"flicksy/internal/timer"
	"flicksy/pkg/models"
	"flicksy/pkg/utils"
)

type app struct {
	cfg         utils.Config
	client      *api.Client
	sessionPath string
	win         *dom.HeadlessWindow
	sched       *timer.Manual
	renderer    *render.Renderer
}

func main() {
	global := flag.NewFlagSet("flicksy", flag.ExitOnError)
	configPath := global.String("config", "", "config file (default $"+utils.ConfigPathEnvVar+")")
	baseURL := global.String("api", "", "backend base URL (overrides config)")
	sessionPath := global.String("session", "", "session file path (overrides config)")
	if err := global.Parse(os.Args[1:]); err != nil {
		logging.Fatal().Err(err).Msg("parse flags")
	}
	args := global.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := utils.LoadConfig(*configPath)
	if err != nil {
		logging.Fatal().Err(err).Msg("load config")
	}
	if *baseURL != "" {
		cfg.API.BaseURL = *baseURL
	}
	if *sessionPath != "" {
		cfg.API.SessionPath = *sessionPath
	}
	logging.Init(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})

	client, err := api.New(api.Options{BaseURL: cfg.API.BaseURL, Timeout: cfg.API.Timeout})
	if err != nil {
		logging.Fatal().Err(err).Msg("api client")
	}
	a := &app{
		cfg:         cfg,
		client:      client,
		sessionPath: cfg.API.SessionPath,
		win:         &dom.HeadlessWindow{Out: os.Stderr},
		sched:       timer.NewManual(),
		renderer:    render.New(render.Images{Base: cfg.Images.BaseURL}),
	}

	ctx := logging.WithRequestID(context.Background(), "")
	cmd := args[0]
	sub := ""
	rest := args[1:]
	if len(args) > 1 {
		sub = args[1]
		rest = args[2:]
	}

	switch cmd {
	case "auth":
		a.handleAuth(ctx, sub, rest)
	case "watchlist":
		a.handleWatchlist(ctx, sub, rest)
	case "search":
		a.handleSearch(ctx, args[1:])
	case "details":
		a.handleDetails(ctx, args[1:])
	case "review":
		a.handleReview(ctx, args[1:])
	default:
		printUsage()
		os.Exit(1)
	}
}

func (a *app) handleAuth(ctx context.Context, sub string, args []string) {
	switch sub {
	case "login":
		fs := flag.NewFlagSet("auth login", flag.ExitOnError)
		email := fs.String("email", "", "email address")
		password := fs.String("password", "", "password")
		_ = fs.Parse(args)
		if *email == "" || *password == "" {
			logging.Fatal().Msg("email and password are required")
		}

		if err := a.client.Login(ctx, *email, *password); err != nil {
			logging.Fatal().Err(err).Msg("login failed")
		}
		if err := a.client.SaveSession(a.sessionPath); err != nil {
			logging.Fatal().Err(err).Msg("save session")
		}
		fmt.Println("logged in")
	case "logout":
		if err := api.ClearSession(a.sessionPath); err != nil {
			logging.Fatal().Err(err).Msg("logout failed")
		}
		fmt.Println("logged out")
	default:
		logging.Fatal().Msg("usage: flicksy auth <login|logout>")
	}
}

func (a *app) handleWatchlist(ctx context.Context, sub string, args []string) {
	a.mustSession()
	switch sub {
	case "show":
		doc := a.parse(watchlistShell, "/watchlist")
		a.mount(ctx, doc).Close()
		fmt.Println(doc.GetElementByID("watchlist-container").InnerHTML())
	case "add", "remove":
		fs := flag.NewFlagSet("watchlist "+sub, flag.ExitOnError)
		key := keyFlags(fs)
		_ = fs.Parse(args)

		doc := a.parse(buttonShell(key(), sub), "/")
		p := a.mount(ctx, doc)
		defer p.Close()
		btn := doc.QuerySelector(".watchlist-btn")
		btn.Click(ctx)
		a.sched.Advance(a.cfg.UI.RemovalDelay)
		if len(a.win.Alerts()) > 0 {
			os.Exit(1)
		}
		fmt.Println(btn.OuterHTML())
	default:
		logging.Fatal().Msg("usage: flicksy watchlist <show|add|remove>")
	}
}

func (a *app) handleSearch(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	query := fs.String("q", "", "search query")
	_ = fs.Parse(args)

	doc := a.parse(homeShell, "/")
	p := a.mount(ctx, doc)
	defer p.Close()
	doc.QuerySelector(".search-input").Input(ctx, *query)
	if !p.Search.Visible() {
		fmt.Fprintln(os.Stderr, "query too short or search failed")
		return
	}
	fmt.Println(p.Search.Panel().InnerHTML())
}

func (a *app) handleDetails(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("details", flag.ExitOnError)
	key := keyFlags(fs)
	_ = fs.Parse(args)

	k := key()
	doc := a.parse(detailsShell(k), k.Path())
	a.mount(ctx, doc).Close()
	fmt.Println(doc.GetElementByID("cast-container").InnerHTML())
	fmt.Println(doc.GetElementByID("platform-container").InnerHTML())
}

func (a *app) handleReview(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("review", flag.ExitOnError)
	key := keyFlags(fs)
	rating := fs.Int("rating", 0, "stars, 1-5")
	text := fs.String("text", "", "review text")
	_ = fs.Parse(args)
	a.mustSession()

	k := key()
	doc := a.parse(detailsShell(k), k.Path())
	p := a.mount(ctx, doc)
	defer p.Close()

	doc.GetElementByID("reviewText").SetValue(*text)
	if star := doc.GetElementByID("star" + strconv.Itoa(*rating)); star != nil {
		star.SetChecked(true)
	}
	doc.GetElementByID("submitReviewBtn").Click(ctx)

	fmt.Println(doc.GetElementByID("review-message").InnerHTML())
	if children := doc.GetElementByID("reviews-container").Children(); len(children) > 0 {
		fmt.Println(children[0].OuterHTML())
	}
}

func (a *app) parse(html, path string) *dom.Document {
	doc, err := dom.ParseString(html, a.cfg.API.BaseURL+path)
	if err != nil {
		logging.Fatal().Err(err).Msg("parse page")
	}
	return doc
}

func (a *app) mount(ctx context.Context, doc *dom.Document) *page.Page {
	return page.Mount(ctx, doc, page.Deps{
		API:       a.client,
		Window:    a.win,
		Renderer:  a.renderer,
		Scheduler: a.sched,
		UI:        a.cfg.UI,
	})
}

func (a *app) mustSession() {
	err := a.client.LoadSession(a.sessionPath)
	if errors.Is(err, api.ErrNoSession) {
		logging.Fatal().Msg("no session, please run: flicksy auth login")
	}
	if err != nil {
		logging.Fatal().Err(err).Msg("load session")
	}
}

// keyFlags registers -type and -id; the returned func validates them after
// parsing.
func keyFlags(fs *flag.FlagSet) func() models.MediaKey {
	mt := fs.String("type", "movie", "movie or tv")
	id := fs.Int("id", 0, "TMDB id")
	return func() models.MediaKey {
		t, ok := models.ParseMediaType(*mt)
		if !ok {
			logging.Fatal().Str("type", *mt).Msg("type must be movie or tv")
		}
		if *id <= 0 {
			logging.Fatal().Msg("id is required")
		}
		return models.MediaKey{TMDBID: *id, MediaType: t}
	}
}

func printUsage() {
	fmt.Println("flicksy [-config file] [-api url] [-session file] <command> [subcommand] [flags]")
	fmt.Println("commands:")
	fmt.Println("  auth login|logout")
	fmt.Println("  watchlist show|add|remove")
	fmt.Println("  search -q")
	fmt.Println("  details -type -id")
	fmt.Println("  review -type -id -rating -text")
}
