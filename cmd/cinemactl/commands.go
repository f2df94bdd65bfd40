package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/samber/do/v2"

	"github.com/marczakjulia/BYT-PROJECT/internal/backup"
	"github.com/marczakjulia/BYT-PROJECT/internal/config"
	"github.com/marczakjulia/BYT-PROJECT/internal/di"
	"github.com/marczakjulia/BYT-PROJECT/internal/di/providers"
	"github.com/marczakjulia/BYT-PROJECT/internal/domain"
	domainerrors "github.com/marczakjulia/BYT-PROJECT/internal/errors"
	"github.com/marczakjulia/BYT-PROJECT/internal/pass"
	"github.com/marczakjulia/BYT-PROJECT/internal/search"
	"github.com/marczakjulia/BYT-PROJECT/internal/seed"
	"github.com/marczakjulia/BYT-PROJECT/internal/store"
)

type command struct {
	usage   string
	mutates bool // the graph is saved after a successful run
	run     func(a *app, ctx context.Context, args []string) error
}

var commands = map[string]command{
	"seed":      {usage: "add the demo cinemas, movies, screenings and staff", mutates: true, run: (*app).seed},
	"summary":   {usage: "print entity counts and upcoming screenings", run: (*app).summary},
	"search":    {usage: "search <query>: find movies by title, director or description", run: (*app).search},
	"tickets":   {usage: "tickets <screening-id>: list a screening's tickets", run: (*app).tickets},
	"sell":      {usage: "sell <ticket-id> <Cash|CreditCard|Blik>", mutates: true, run: (*app).sell},
	"refund":    {usage: "refund <ticket-id> <reason>", mutates: true, run: (*app).refund},
	"pass":      {usage: "pass <ticket-id> <out.png>: write a ticket's QR pass", run: (*app).pass},
	"scan":      {usage: "scan <payload>: admit the holder of a pass", mutates: true, run: (*app).scan},
	"snapshot":  {usage: "snapshot [name]: archive the current graph", run: (*app).snapshot},
	"snapshots": {usage: "list archived snapshots", run: (*app).snapshots},
	"restore":   {usage: "restore <id|slug>: replace the graph with a snapshot", mutates: true, run: (*app).restore},
}

func commandNames() []string {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

type app struct {
	injector *do.RootScope
	cfg      *config.Config
	catalog  *store.Catalog
	backups  *backup.Service
	out      io.Writer
	now      func() time.Time
}

func newApp(injector *do.RootScope, out io.Writer) *app {
	return &app{
		injector: injector,
		cfg:      do.MustInvoke[*config.Config](injector),
		catalog:  do.MustInvoke[*store.Catalog](injector),
		backups:  do.MustInvoke[*backup.Service](injector),
		out:      out,
		now:      time.Now,
	}
}

func (a *app) save(ctx context.Context) error {
	_, err := a.backups.Save(ctx, a.cfg.Data.GraphFile)
	return err
}

func needArgs(args []string, n int, form string) error {
	if len(args) < n {
		return domainerrors.InvalidArgumentf("usage: %s", form)
	}
	return nil
}

func (a *app) ticket(id string) (*domain.Ticket, error) {
	return a.catalog.Tickets.Get(id)
}

func (a *app) seed(ctx context.Context, _ []string) error {
	res, err := seed.Populate(ctx, a.catalog, a.now(), a.cfg.Tickets.DefaultPrice)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "seeded %d cinemas, %d movies, %d screenings, %d employees\n",
		len(res.Cinemas), len(res.Movies), len(res.Screenings), len(res.Employees))
	return nil
}

func (a *app) summary(_ context.Context, _ []string) error {
	c := a.catalog.Counts()
	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "cinemas\t%d\n", c.Cinemas)
	fmt.Fprintf(tw, "auditoriums\t%d\n", c.Auditoriums)
	fmt.Fprintf(tw, "seats\t%d\n", c.Seats)
	fmt.Fprintf(tw, "movies\t%d\n", c.Movies)
	fmt.Fprintf(tw, "screenings\t%d\n", c.Screenings)
	fmt.Fprintf(tw, "tickets\t%d\n", c.Tickets)
	fmt.Fprintf(tw, "reviews\t%d\n", c.Reviews)
	fmt.Fprintf(tw, "employees\t%d\n", c.Employees)
	if err := tw.Flush(); err != nil {
		return err
	}

	screenings := a.catalog.Screenings.All()
	slices.SortFunc(screenings, func(x, y *domain.Screening) int {
		return x.StartsAt().Compare(y.StartsAt())
	})

	fmt.Fprintln(a.out)
	tw = tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SCREENING\tSTARTS\tMOVIE\tAUDITORIUM\tSTATUS\tFREE")
	for _, s := range screenings {
		title, room := "-", "-"
		if s.Movie() != nil {
			title = s.Movie().Title()
		}
		if s.Auditorium() != nil {
			room = s.Auditorium().Name()
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\n",
			s.ID(), s.StartsAt().Format("2006-01-02 15:04"), title, room, s.Status(), len(s.AvailableSeats()))
	}
	return tw.Flush()
}

func (a *app) search(ctx context.Context, args []string) error {
	if err := needArgs(args, 1, "search <query>"); err != nil {
		return err
	}
	index := do.MustInvoke[*providers.MovieIndexHandle](a.injector)

	params := search.DefaultParams()
	params.Query = strings.Join(args, " ")
	res, err := index.Search(ctx, params)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%d movies match %q\n", res.Total, res.Query)
	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	for _, h := range res.Hits {
		fmt.Fprintf(tw, "%s\t%s\t%d min\t%s\n", h.ID, h.Title, h.Length, strings.Join(h.Genres, ", "))
	}
	return tw.Flush()
}

func (a *app) tickets(_ context.Context, args []string) error {
	if err := needArgs(args, 1, "tickets <screening-id>"); err != nil {
		return err
	}
	s, err := a.catalog.Screenings.Get(args[0])
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SEAT\tTICKET\tPRICE\tSTATUS")
	for _, code := range s.SeatCodes() {
		t, ok := s.Ticket(code)
		if !ok {
			fmt.Fprintf(tw, "%s\t-\t-\t-\n", code)
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", code, t.ID(), t.Price().StringFixed(2), t.Status())
	}
	return tw.Flush()
}

func (a *app) sell(_ context.Context, args []string) error {
	if err := needArgs(args, 2, "sell <ticket-id> <Cash|CreditCard|Blik>"); err != nil {
		return err
	}
	t, err := a.ticket(args[0])
	if err != nil {
		return err
	}
	if err := t.Sell(domain.PaymentType(args[1])); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "sold %s seat %s for %s\n", t.ID(), t.SeatCode(), t.Price().StringFixed(2))
	return nil
}

func (a *app) refund(_ context.Context, args []string) error {
	if err := needArgs(args, 2, "refund <ticket-id> <reason>"); err != nil {
		return err
	}
	t, err := a.ticket(args[0])
	if err != nil {
		return err
	}
	if t.Screening() == nil {
		return domainerrors.InvalidOperation("ticket has no screening")
	}
	if err := t.Refund(a.now(), t.Screening().StartsAt(), strings.Join(args[1:], " ")); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s is %s: %s\n", t.ID(), t.Status(), t.Reason())
	return nil
}

func (a *app) pass(_ context.Context, args []string) error {
	if err := needArgs(args, 2, "pass <ticket-id> <out.png>"); err != nil {
		return err
	}
	t, err := a.ticket(args[0])
	if err != nil {
		return err
	}
	enc, err := di.Passes(a.injector)
	if err != nil {
		return err
	}

	payload, err := enc.Payload(t)
	if err != nil {
		return err
	}
	png, err := pass.Render(payload, a.cfg.Tickets.PassSize)
	if err != nil {
		return err
	}
	if err := os.WriteFile(args[1], png, 0o644); err != nil {
		return fmt.Errorf("write pass: %w", err)
	}
	fmt.Fprintln(a.out, payload)
	return nil
}

func (a *app) scan(_ context.Context, args []string) error {
	if err := needArgs(args, 1, "scan <payload>"); err != nil {
		return err
	}
	enc, err := di.Passes(a.injector)
	if err != nil {
		return err
	}
	claims, err := enc.ParsePayload(args[0])
	if err != nil {
		return err
	}

	t, err := a.ticket(claims.TicketID)
	if err != nil {
		return err
	}
	if t.Screening() == nil || t.Screening().ID() != claims.ScreeningID {
		return domainerrors.InvalidOperation("pass does not match the ticket's screening")
	}
	if err := t.Scan(a.now(), t.Screening().StartsAt()); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s: %s, %s seat %s\n", t.Status(), claims.Movie, claims.Auditorium, claims.Seat)
	return nil
}

func (a *app) snapshot(ctx context.Context, args []string) error {
	name := strings.Join(args, " ")
	if name == "" {
		name = "snapshot " + a.now().Format("2006-01-02 15:04:05")
	}
	snap, err := a.backups.Snapshot(ctx, name)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s\t%s\t%d entities\n", snap.ID, snap.Slug, snap.Counts.Total())
	return nil
}

func (a *app) snapshots(ctx context.Context, _ []string) error {
	snaps, err := a.backups.Snapshots(ctx)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSLUG\tCREATED\tENTITIES\tSIZE")
	for _, s := range snaps {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\n",
			s.ID, s.Slug, s.CreatedAt.Local().Format(time.DateTime), s.Counts.Total(), s.Size)
	}
	return tw.Flush()
}

func (a *app) restore(ctx context.Context, args []string) error {
	if err := needArgs(args, 1, "restore <id|slug>"); err != nil {
		return err
	}
	snap, err := a.backups.Restore(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "restored %s (%s), %d entities\n", snap.ID, snap.Name, snap.Counts.Total())
	return nil
}
