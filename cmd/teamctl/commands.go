package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"

	"github.com/infernalwolves/clan-dashboard/internal/core/domain"
	"github.com/infernalwolves/clan-dashboard/internal/core/service"
	"github.com/infernalwolves/clan-dashboard/internal/poller"
	"github.com/infernalwolves/clan-dashboard/internal/session"
)

var (
	errUsage       = errors.New("invalid arguments")
	errNotSignedIn = errors.New("not signed in, run teamctl login first")
)

func cmdLogin(ctx context.Context, a *cli, args []string) error {
	var password string
	fs, err := parseFlags("login", args, func(fs *flag.FlagSet) {
		fs.StringVar(&password, "password", "", "password (read from stdin when empty)")
	})
	if err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errUsage
	}
	if password == "" {
		password, err = readLine(a.stdin)
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}
	}

	res, err := a.client.Login(ctx, fs.Arg(0), password)
	if err != nil {
		return err
	}
	s := session.New(res.User, res.Token, time.Now())
	if err := a.identity.Save(s); err != nil {
		return err
	}
	a.printf("signed in as %s (%s)\n", s.User.DisplayName, s.User.Role)
	return nil
}

func cmdLogout(_ context.Context, a *cli, _ []string) error {
	if err := a.identity.Clear(); err != nil {
		return err
	}
	a.printf("signed out\n")
	return nil
}

func cmdWhoami(ctx context.Context, a *cli, _ []string) error {
	s, err := a.signedIn()
	if err != nil {
		return err
	}
	owner, _ := s.OwnerKey()
	a.printf("%s (%s), team %s, signed in %s\n", s.User.DisplayName, s.User.Role, owner, s.IssuedAt.Format(time.RFC3339))
	if err := a.client.Health(ctx); err != nil {
		a.printf("roster store %s: unreachable (%v)\n", a.cfg.ServerURL, err)
	} else {
		a.printf("roster store %s: ok\n", a.cfg.ServerURL)
	}
	return nil
}

func cmdTeams(ctx context.Context, a *cli, _ []string) error {
	all, err := a.client.GetAll(ctx)
	if err != nil {
		return err
	}
	printTeams(a.out, all, domain.FindConflicts(all))
	a.printStatus(ctx)
	return nil
}

func cmdAdd(ctx context.Context, a *cli, args []string) error {
	var owner string
	fs, err := parseFlags("add", args, func(fs *flag.FlagSet) {
		fs.StringVar(&owner, "owner", "", "team owner (default: your own team)")
	})
	if err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errUsage
	}
	id, err := parseAccountID(fs.Arg(0))
	if err != nil {
		return err
	}

	editor, err := a.editor(ctx)
	if err != nil {
		return err
	}
	member, err := a.client.Member(ctx, id)
	if err != nil {
		return fmt.Errorf("look up player %d: %w", id, err)
	}

	var res *service.MutationResult
	if owner == "" {
		res, err = editor.Add(ctx, *member)
	} else {
		res, err = editor.AddTo(ctx, owner, *member)
	}
	if err != nil {
		return err
	}
	a.report(res, fmt.Sprintf("added %s", member.AccountName))
	return nil
}

func cmdRemove(ctx context.Context, a *cli, args []string) error {
	var owner string
	fs, err := parseFlags("remove", args, func(fs *flag.FlagSet) {
		fs.StringVar(&owner, "owner", "", "team owner (default: your own team)")
	})
	if err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errUsage
	}
	id, err := parseAccountID(fs.Arg(0))
	if err != nil {
		return err
	}

	editor, err := a.editor(ctx)
	if err != nil {
		return err
	}
	if owner == "" {
		if owner, err = editor.Session().OwnerKey(); err != nil {
			return err
		}
	}
	res, err := editor.Remove(ctx, owner, id)
	if err != nil {
		return err
	}
	a.report(res, fmt.Sprintf("removed %d from %s", id, owner))
	return nil
}

func cmdClear(ctx context.Context, a *cli, args []string) error {
	var owner string
	fs, err := parseFlags("clear", args, func(fs *flag.FlagSet) {
		fs.StringVar(&owner, "owner", "", "team owner (default: your own team)")
	})
	if err != nil {
		return err
	}
	if fs.NArg() != 0 {
		return errUsage
	}

	editor, err := a.editor(ctx)
	if err != nil {
		return err
	}
	if owner == "" {
		if owner, err = editor.Session().OwnerKey(); err != nil {
			return err
		}
	}
	res, err := editor.Clear(ctx, owner)
	if err != nil {
		return err
	}
	a.report(res, "cleared team "+owner)
	return nil
}

func cmdMove(ctx context.Context, a *cli, args []string) error {
	if len(args) != 3 {
		return errUsage
	}
	id, err := parseAccountID(args[0])
	if err != nil {
		return err
	}

	editor, err := a.editor(ctx)
	if err != nil {
		return err
	}
	res, err := editor.Move(ctx, id, args[1], args[2])
	if err != nil {
		return err
	}
	a.report(res, fmt.Sprintf("moved %d from %s to %s", id, args[1], args[2]))
	return nil
}

// cmdWatch prints every roster snapshot as it arrives. Pressing Enter or
// sending SIGUSR1 forces an immediate refetch.
func cmdWatch(ctx context.Context, a *cli, _ []string) error {
	syncer := poller.New(a.client, a.cfg.PollInterval, a.log)
	updates, unsubscribe := syncer.Subscribe()
	defer unsubscribe()

	focus := make(chan os.Signal, 1)
	signal.Notify(focus, syscall.SIGUSR1)
	defer signal.Stop(focus)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return syncer.Run(gctx) })
	go func() {
		sc := bufio.NewScanner(a.stdin)
		for sc.Scan() {
			syncer.Focus()
		}
	}()
	g.Go(func() error {
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-focus:
				syncer.Focus()
			case snap := <-updates:
				a.printf("--- %s (#%d)\n", snap.FetchedAt.Format(time.TimeOnly), snap.Seq)
				printTeams(a.out, snap.Teams, snap.Conflicts)
				a.printStatus(gctx)
			}
		}
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func cmdHash(_ context.Context, a *cli, args []string) error {
	if len(args) != 1 || args[0] == "" {
		return errUsage
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(args[0]), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	a.printf("%s\n", hash)
	return nil
}

// editor signs in from the persisted session, loads every roster and waits
// for the settle gate.
func (a *cli) editor(ctx context.Context) (*session.Editor, error) {
	s, err := a.signedIn()
	if err != nil {
		return nil, err
	}
	view := poller.New(a.client, a.cfg.PollInterval, a.log)
	svc := service.NewTeamService(a.client, a.log)
	svc.StampReloads(view.Begin)
	e := session.NewEditor(*s, svc, view, a.cfg.SettleDelay, a.log)
	if err := e.Load(ctx); err != nil {
		return nil, err
	}
	if err := e.WaitReady(ctx); err != nil {
		return nil, err
	}
	return e, nil
}

func (a *cli) report(res *service.MutationResult, what string) {
	if !res.Changed {
		a.printf("nothing to do\n")
		return
	}
	a.printf("%s\n", what)
	if res.Degraded {
		a.printf("warning: roster store unreachable, change kept locally only\n")
	}
}

// printStatus checks the store and reports an outage or writes that only
// reached the local copy.
func (a *cli) printStatus(ctx context.Context) {
	if err := a.client.Health(ctx); err != nil {
		since := "now"
		if st := a.client.Status(); !st.Since.IsZero() {
			since = st.Since.Format(time.TimeOnly)
		}
		a.printf("warning: roster store unreachable, showing local copy since %s: %v\n", since, err)
	}
	if st := a.client.Status(); len(st.Unsynced) > 0 {
		a.printf("warning: saved locally only, not on the roster store: %s\n", strings.Join(st.Unsynced, ", "))
	}
}

func printTeams(w io.Writer, all domain.RosterCollection, conflicts []domain.Conflict) {
	owners := all.Owners()
	if len(owners) == 0 {
		fmt.Fprintln(w, "no teams yet")
	}
	for _, owner := range owners {
		t := all[owner]
		fmt.Fprintf(w, "%s (%d players, v%d)\n", strings.ToUpper(owner), len(t.Members), t.Version)
		members := append([]domain.Member(nil), t.Members...)
		sort.SliceStable(members, func(i, j int) bool { return members[i].Role.Rank() < members[j].Role.Rank() })

		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, m := range members {
			fmt.Fprintf(tw, "  %d\t%s\t%s\n", m.AccountID, m.AccountName, m.Role.Label())
		}
		tw.Flush()
	}
	for _, c := range conflicts {
		fmt.Fprintf(w, "conflict: player %d is on %s\n", c.AccountID, strings.Join(c.Owners, ", "))
	}
}

func parseAccountID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: account id must be a positive integer, got %q", errUsage, raw)
	}
	return id, nil
}

func readLine(r io.Reader) (string, error) {
	sc := bufio.NewScanner(r)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return "", err
		}
		return "", io.ErrUnexpectedEOF
	}
	return strings.TrimSpace(sc.Text()), nil
}

// describe turns domain errors into messages an officer can act on.
func describe(err error) string {
	var onTeam *domain.AlreadyOnAnotherTeamError
	var partial *domain.PartialMoveError
	switch {
	case errors.As(err, &partial):
		return fmt.Sprintf("move %s failed halfway: player %d was removed from %s but could not be added to %s; add them back manually",
			partial.OperationID, partial.AccountID, partial.From, partial.To)
	case errors.As(err, &onTeam):
		return fmt.Sprintf("player %d is already on the team of %s", onTeam.AccountID, onTeam.Owner)
	case errors.Is(err, domain.ErrRestrictedRole):
		return "that player's clan role cannot be placed on a team"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid username or password"
	case errors.Is(err, domain.ErrForbidden):
		return "you are not allowed to edit that team"
	case errors.Is(err, domain.ErrTransport):
		return "roster store unreachable: " + err.Error()
	}
	return err.Error()
}
