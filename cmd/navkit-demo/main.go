// Command navkit-demo drives a Navigator interactively from stdin.
// Type "help" for the command list. It demonstrates scope-aware
// pushes, tree-aware back, tab and pane operations, and the
// predictive-back gesture protocol, rendering the tree after every
// applied intent.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/odvcencio/navkit/pkg/journal"
	"github.com/odvcencio/navkit/pkg/logging"
	"github.com/odvcencio/navkit/pkg/navigator"
	"github.com/odvcencio/navkit/pkg/navtree"
	"github.com/odvcencio/navkit/pkg/scope"
	"github.com/odvcencio/navkit/pkg/snapshot"
)

func main() {
	logDir := flag.String("log-dir", "", "directory for JSONL navigation logs (disabled when empty)")
	journalPath := flag.String("journal", "", "path to the SQLite intent journal (disabled when empty)")
	configPath := flag.String("scopes", "", "YAML scope configuration (permissive when empty)")
	flag.Parse()

	if err := run(*logDir, *journalPath, *configPath); err != nil {
		fmt.Fprintln(os.Stderr, "navkit-demo:", err)
		os.Exit(1)
	}
}

func run(logDir, journalPath, configPath string) error {
	opts := []navigator.Option{navigator.WithID("demo")}

	if logDir != "" {
		logger, err := logging.NewLogger(logDir, "demo")
		if err != nil {
			return err
		}
		defer logger.Close()
		opts = append(opts, navigator.WithLogger(logger))
	}
	if journalPath != "" {
		j, err := journal.Open(journalPath, "demo")
		if err != nil {
			return err
		}
		defer j.Close()
		opts = append(opts, navigator.WithRecorder(j))
	}
	if configPath != "" {
		cfg, err := scope.LoadConfig(configPath)
		if err != nil {
			return err
		}
		// The demo registers no builders in code, so only the scope
		// table is taken from the file.
		opts = append(opts, navigator.WithScopeRegistry(scope.NewTable(cfg.Scopes)))
	}

	nav := navigator.New(seedTree(), opts...)
	return repl(context.Background(), nav, os.Stdin, os.Stdout)
}

// seedTree is the demo's starting point: a root stack with a home
// screen, a two-tab library section, and a list/detail pane.
func seedTree() navtree.Node {
	songs := navtree.NewStack("library-songs", "library",
		navtree.NewScreen("songs-root", "library-songs", navtree.BasicDestination{Name: "songs"}))
	albums := navtree.NewStack("library-albums", "library",
		navtree.NewScreen("albums-root", "library-albums", navtree.BasicDestination{Name: "albums"}))
	library := navtree.NewTab("library", "root", []*navtree.Stack{songs, albums}, 0).
		WithScopeKey("library")

	listStack := navtree.NewStack("browse-list", "browse",
		navtree.NewScreen("list-root", "browse-list", navtree.BasicDestination{Name: "list"}))
	detailStack := navtree.NewStack("browse-detail", "browse")
	browse := navtree.NewPane("browse", "root", map[navtree.PaneRole]navtree.Slot{
		navtree.RolePrimary:    {Stack: listStack},
		navtree.RoleSupporting: {Stack: detailStack, Adapt: navtree.AdaptHide},
	}, navtree.RolePrimary, navtree.PopUntilContentChange)

	return navtree.NewStack("root", "",
		navtree.NewScreen("home", "root", navtree.BasicDestination{Name: "home"}),
		library,
		browse,
	)
}

// repl runs the render loop and the command loop until the input ends
// or the user quits.
func repl(ctx context.Context, nav *navigator.Navigator, in io.Reader, out io.Writer) error {
	snapshots, cancelWatch := nav.Watch()
	defer cancelWatch()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case snap, ok := <-snapshots:
				if !ok {
					return nil
				}
				fmt.Fprintln(out, renderSnapshot(snap))
			}
		}
	})

	g.Go(func() error {
		defer cancel()
		fmt.Fprintln(out, renderSnapshot(navigator.Snapshot{Tree: nav.Tree(), Transition: nav.TransitionState()}))
		fmt.Fprint(out, prompt)

		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "quit" || line == "exit" {
				return nil
			}
			if line != "" {
				if err := dispatch(nav, out, line); err != nil {
					fmt.Fprintln(out, errStyle.Render("error: "+err.Error()))
				}
			}
			fmt.Fprint(out, prompt)

			select {
			case <-ctx.Done():
				return nil
			default:
			}
		}
		return scanner.Err()
	})

	return g.Wait()
}

// dispatch applies one command line to the navigator.
func dispatch(nav *navigator.Navigator, out io.Writer, line string) error {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "help":
		fmt.Fprint(out, helpText)

	case "push":
		if len(args) < 1 {
			return fmt.Errorf("usage: push <destination> [transition]")
		}
		transition := ""
		if len(args) > 1 {
			transition = args[1]
		}
		key, err := nav.Navigate(navtree.BasicDestination{Name: args[0]},
			navigator.WithTransition(transition))
		if err != nil {
			return err
		}
		fmt.Fprintln(out, dimStyle.Render("pushed "+key))

	case "replace":
		if len(args) < 1 {
			return fmt.Errorf("usage: replace <destination>")
		}
		_, err := nav.NavigateAndReplace(navtree.BasicDestination{Name: args[0]})
		return err

	case "clearall":
		if len(args) < 1 {
			return fmt.Errorf("usage: clearall <destination>")
		}
		_, err := nav.NavigateAndClearAll(navtree.BasicDestination{Name: args[0]})
		return err

	case "back":
		kind := nav.NavigateBack()
		fmt.Fprintln(out, dimStyle.Render("back: "+backKindName(kind)))

	case "tab":
		if len(args) < 2 {
			return fmt.Errorf("usage: tab <tabKey> <index>")
		}
		index, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("index must be a number: %w", err)
		}
		return nav.SwitchTab(args[0], index)

	case "pane":
		if len(args) < 3 {
			return fmt.Errorf("usage: pane <paneKey> <role> <destination> [focus]")
		}
		focus := len(args) > 3 && args[3] == "focus"
		_, err := nav.NavigateToPane(args[0], navtree.PaneRole(args[1]),
			navtree.BasicDestination{Name: args[2]}, focus)
		return err

	case "focus":
		if len(args) < 2 {
			return fmt.Errorf("usage: focus <paneKey> <role>")
		}
		return nav.SwitchActivePane(args[0], navtree.PaneRole(args[1]))

	case "gesture":
		return runGesture(nav, out, args)

	case "entries":
		for _, e := range nav.Entries() {
			fmt.Fprintf(out, "  %s  %s\n", e.ID, e.Destination.Kind())
		}

	case "save":
		if len(args) < 1 {
			return fmt.Errorf("usage: save <path>")
		}
		data, err := snapshot.Encode(nav.Tree())
		if err != nil {
			return err
		}
		return os.WriteFile(args[0], data, 0o644)

	default:
		return fmt.Errorf("unknown command %q (try help)", cmd)
	}
	return nil
}

// runGesture demonstrates the predictive-back protocol in one shot:
// begin, drive progress, then commit or cancel.
func runGesture(nav *navigator.Navigator, out io.Writer, args []string) error {
	if len(args) < 1 || (args[0] != "commit" && args[0] != "cancel") {
		return fmt.Errorf("usage: gesture commit|cancel")
	}

	if !nav.BeginBackGesture() {
		return fmt.Errorf("back cannot be handled here")
	}
	for _, p := range []float64{0.2, 0.5, 0.8} {
		nav.UpdateBackGesture(p)
	}

	if args[0] == "cancel" {
		nav.CancelBackGesture()
		fmt.Fprintln(out, dimStyle.Render("gesture cancelled; tree unchanged"))
		return nil
	}
	nav.CommitBackGesture()
	nav.CompleteBackAnimation()
	fmt.Fprintln(out, dimStyle.Render("gesture committed"))
	return nil
}

const prompt = "> "

const helpText = `commands:
  push <dest> [transition]   scope-aware push
  replace <dest>             replace the top entry
  clearall <dest>            clear the active stack, push dest
  back                       tree-aware back
  tab <tabKey> <index>       switch tab
  pane <key> <role> <dest> [focus]
  focus <key> <role>         switch pane focus
  gesture commit|cancel      predictive back gesture
  entries                    flat back-stack view
  save <path>                write a YAML snapshot
  quit
`
