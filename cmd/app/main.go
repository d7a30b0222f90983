package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/akyairhashvil/everyride/internal/catalog"
	"github.com/akyairhashvil/everyride/internal/challenge"
	"github.com/akyairhashvil/everyride/internal/config"
	"github.com/akyairhashvil/everyride/internal/database"
	"github.com/akyairhashvil/everyride/internal/models"
	"github.com/akyairhashvil/everyride/internal/report"
	"github.com/akyairhashvil/everyride/internal/session"
	"github.com/akyairhashvil/everyride/internal/tui"
	"github.com/akyairhashvil/everyride/internal/util"
)

const usage = `usage: everyride [command]

commands:
  (none)              open the tracker
  status              print the current run
  history [-saved]    list past runs for every resort
  report [-o dir] [id]
                      write a PDF summary of the current run, or of a past run
`

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Alas, there's been an error: %v\n", err)
		os.Exit(1)
	}
	if err := run(context.Background(), cfg, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Alas, there's been an error: %v\n", err)
		os.Exit(1)
	}
}

type app struct {
	cfg  config.Config
	log  *zap.Logger
	db   *database.Database
	sess *session.Session
}

func run(ctx context.Context, cfg config.Config, args []string, stdout io.Writer) error {
	cmd := ""
	if len(args) > 0 {
		cmd, args = args[0], args[1:]
	}
	switch cmd {
	case "", "status", "history", "report":
	case "help", "-h", "--help":
		fmt.Fprint(stdout, usage)
		return nil
	default:
		return fmt.Errorf("unknown command %q\n\n%s", cmd, usage)
	}

	a, err := openApp(ctx, cfg, stdout)
	if err != nil {
		return err
	}
	defer a.close()

	switch cmd {
	case "status":
		return a.status(ctx, stdout)
	case "history":
		return a.history(args, stdout)
	case "report":
		return a.report(args, stdout)
	}
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return a.status(ctx, stdout)
	}
	return a.runTUI(ctx)
}

func openApp(ctx context.Context, cfg config.Config, stdout io.Writer) (*app, error) {
	if cfg.DataDir == "" {
		cfg.DataDir = util.DataDir(config.AppName)
	}
	if cfg.ReportDir == "" {
		cfg.ReportDir = util.ReportsDir(config.AppName)
	}
	log, err := util.NewLogger(cfg.LogLevel, cfg.LogPath())
	if err != nil {
		return nil, err
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	cat, err := loadCatalog(cfg.CatalogPath)
	if err != nil {
		return nil, err
	}
	db, err := database.Open(ctx, cfg.DBPath())
	if err != nil {
		return nil, err
	}
	sess, err := session.Open(ctx, db, cat,
		session.WithLocation(loc),
		session.WithCutoffHour(cfg.CutoffHour),
		session.WithLogger(log),
	)
	if sess == nil {
		_ = db.Close()
		return nil, err
	}
	if err != nil {
		// Startup cleanup could not be written back; the run is still usable.
		fmt.Fprintf(stdout, "warning: %v\n", err)
	}
	log.Info("started", zap.String("db", db.Path()), zap.Int("rides", cat.Len()))
	return &app{cfg: cfg, log: log, db: db, sess: sess}, nil
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default()
	}
	return catalog.LoadFile(path)
}

func (a *app) close() {
	util.LogError(a.log, "close database", a.db.Close())
	_ = a.log.Sync()
}

func (a *app) runTUI(ctx context.Context) error {
	model := tui.NewModel(ctx, a.sess, tui.Options{
		ReportDir: a.cfg.ReportDir,
		Theme:     a.cfg.Theme,
		Logger:    a.log,
	})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func (a *app) status(ctx context.Context, w io.Writer) error {
	rec, ok := a.sess.Active()
	if !ok {
		fmt.Fprintln(w, "No challenge in progress.")
	} else {
		counts := a.sess.Counts()
		fmt.Fprintf(w, "%s #EveryRide, %s\n", catalog.Resort(rec.ResortID).Name, challenge.LongDayLabel(rec.DayKey))
		fmt.Fprintf(w, "%d rides logged, %d to go, %d excluded\n", len(rec.Events), counts.Remaining(), counts.Excluded)
		if n := len(rec.Events); n > 0 {
			fmt.Fprintf(w, "Last: %s\n", describeEvent(n, rec.Events[n-1]))
		}
	}

	keys, err := a.db.Keys(ctx, config.DraftExclusionPrefix)
	if err != nil {
		return err
	}
	for _, key := range keys {
		resortID := strings.TrimPrefix(key, config.DraftExclusionPrefix)
		drafts, err := a.sess.DraftExclusions(ctx, resortID)
		if err != nil {
			return err
		}
		if len(drafts) == 0 {
			continue
		}
		count, total := challenge.ExclusionCounts(a.sess.Catalog().RidesByResort(resortID), drafts)
		fmt.Fprintf(w, "Next %s run: excluded %d of %d rides\n", catalog.Resort(resortID).Name, count, total)
	}
	return nil
}

func describeEvent(number int, ev models.RideEvent) string {
	out := fmt.Sprintf("Ride %d. %s", number, ev.RideName)
	if abbrev := ev.QueueType.Abbrev(); abbrev != "" {
		out += " (" + abbrev + ")"
	}
	return out + " at " + challenge.FormatClock(ev.Timestamp)
}

func (a *app) history(args []string, w io.Writer) error {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	fs.SetOutput(w)
	savedOnly := fs.Bool("saved", false, "only list saved runs")
	if err := fs.Parse(args); err != nil {
		return err
	}

	entries := a.sess.History()
	if len(entries) == 0 {
		fmt.Fprintln(w, "No past runs.")
		return nil
	}
	for _, e := range entries {
		if *savedOnly && !e.Saved {
			continue
		}
		mark := " "
		if e.Saved {
			mark = "*"
		}
		ended := "open"
		if t := util.Deref(e.EndedAt); !t.IsZero() {
			ended = t.Format("2006-01-02 15:04")
		}
		fmt.Fprintf(w, "%s %s  %s  %-4s %3d rides  ended %s\n", mark, e.ID, e.DayKey, e.ResortID, len(e.Events), ended)
	}
	return nil
}

func (a *app) report(args []string, w io.Writer) error {
	fs := flag.NewFlagSet("report", flag.ContinueOnError)
	fs.SetOutput(w)
	dir := fs.String("o", a.cfg.ReportDir, "output directory")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var rec models.Challenge
	if id := fs.Arg(0); id != "" {
		entry, ok := a.sess.HistoryEntry(id)
		if !ok {
			return &challenge.NotFoundError{Kind: "challenge", ID: id}
		}
		rec = entry
	} else {
		active, ok := a.sess.Active()
		if !ok {
			return session.ErrNoActiveChallenge
		}
		rec = active
	}

	path, err := report.Save(*dir, rec, a.sess.Catalog(), a.sess.Now())
	if err != nil {
		return err
	}
	a.log.Info("report written", zap.String("path", path), zap.String("challenge", rec.ID))
	fmt.Fprintln(w, path)
	return nil
}
