// Command teamctl is the officer client of the clan dashboard: sign in, review
// every team, and edit rosters from a terminal.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/infernalwolves/clan-dashboard/internal/client/teams"
	"github.com/infernalwolves/clan-dashboard/internal/pkg/config"
	"github.com/infernalwolves/clan-dashboard/internal/session"
	"github.com/infernalwolves/clan-dashboard/pkg/logger"
)

type command struct {
	usage string
	run   func(ctx context.Context, a *cli, args []string) error
}

var commands = map[string]command{
	"login":  {"login <username> [-password p]", cmdLogin},
	"logout": {"logout", cmdLogout},
	"whoami": {"whoami", cmdWhoami},
	"teams":  {"teams", cmdTeams},
	"add":    {"add <account_id> [-owner o]", cmdAdd},
	"remove": {"remove <account_id> [-owner o]", cmdRemove},
	"clear":  {"clear [-owner o]", cmdClear},
	"move":   {"move <account_id> <from> <to>", cmdMove},
	"watch":  {"watch", cmdWatch},
	"hash":   {"hash <password>", cmdHash},
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("teamctl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	server := fs.String("server", "", "roster store URL (default $TEAMS_URL)")
	dir := fs.String("dir", "", "state directory (default $CLIENT_DIR)")
	verbose := fs.Bool("v", false, "debug logging")
	fs.Usage = func() { printUsage(stderr) }
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		printUsage(stderr)
		return 2
	}

	cmd, ok := commands[fs.Arg(0)]
	if !ok {
		fmt.Fprintf(stderr, "unknown command %q\n", fs.Arg(0))
		printUsage(stderr)
		return 2
	}

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	if *server != "" {
		cfg.Client.ServerURL = *server
	}
	if *dir != "" {
		cfg.Client.StateDir = *dir
	}
	level := "warn"
	if *verbose {
		level = "debug"
	}
	log := logger.New(logger.Options{Level: level, Pretty: true, Output: stderr})

	a, err := newCLI(cfg.Client, log, stdin, stdout)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	if err := cmd.run(ctx, a, fs.Args()[1:]); err != nil {
		fmt.Fprintln(stderr, describe(err))
		if errors.Is(err, errUsage) {
			fmt.Fprintln(stderr, "usage: teamctl "+cmd.usage)
			return 2
		}
		return 1
	}
	return 0
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "usage: teamctl [-server url] [-dir path] [-v] <command> [args]")
	fmt.Fprintln(w, "commands:")
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintln(w, "  "+commands[name].usage)
	}
}

// cli is the state shared by every command.
type cli struct {
	cfg      config.ClientConfig
	log      zerolog.Logger
	client   *teams.Client
	identity session.IdentityStore
	stdin    io.Reader
	out      io.Writer
}

func newCLI(cfg config.ClientConfig, log zerolog.Logger, stdin io.Reader, out io.Writer) (*cli, error) {
	cache, err := teams.NewLocalCache(filepath.Join(cfg.StateDir, "cache"))
	if err != nil {
		return nil, err
	}
	client := teams.NewClient(teams.Config{BaseURL: cfg.ServerURL, Timeout: cfg.Timeout}, cache, log)
	return &cli{
		cfg:      cfg,
		log:      log,
		client:   client,
		identity: session.NewFileIdentityStore(cfg.StateDir),
		stdin:    stdin,
		out:      out,
	}, nil
}

func (a *cli) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// signedIn loads the persisted session and hands its token to the client.
func (a *cli) signedIn() (*session.Session, error) {
	s, err := a.identity.Load()
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, errNotSignedIn
	}
	a.client.SetToken(s.Token)
	return s, nil
}

func parseFlags(name string, args []string, define func(fs *flag.FlagSet)) (*flag.FlagSet, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	if define != nil {
		define(fs)
	}
	if err := fs.Parse(interleave(args)); err != nil {
		return nil, fmt.Errorf("%w: %v", errUsage, err)
	}
	return fs, nil
}

// interleave moves flags ahead of positional arguments so "add 7 -owner x"
// parses like "add -owner x 7".
func interleave(args []string) []string {
	var flags, positional []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if strings.HasPrefix(arg, "-") && len(arg) > 1 {
			flags = append(flags, arg)
			if !strings.Contains(arg, "=") && i+1 < len(args) {
				flags = append(flags, args[i+1])
				i++
			}
			continue
		}
		positional = append(positional, arg)
	}
	return append(flags, positional...)
}
