// Command gopar is the place-and-route toolchain's command-line front end:
// build the netlist and device graphs, run the placement search, commit the
// result, run the post-PAR DRC, and report.
//
// A flag-based, banner-printing entry point with subcommands rather than a
// REPL, since gopar is a one-shot batch tool.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/parforge/gopar/pkg/build"
	"github.com/parforge/gopar/pkg/commit"
	"github.com/parforge/gopar/pkg/config"
	"github.com/parforge/gopar/pkg/device"
	"github.com/parforge/gopar/pkg/diag"
	"github.com/parforge/gopar/pkg/drc"
	"github.com/parforge/gopar/pkg/metrics"
	"github.com/parforge/gopar/pkg/netlist"
	"github.com/parforge/gopar/pkg/pargraph"
	"github.com/parforge/gopar/pkg/par"
	"github.com/parforge/gopar/pkg/report"
	"github.com/parforge/gopar/pkg/snapshot"
)

const banner = `
   ____  ___  ____   __ ____
  / ___|/ _ \|  _ \ / _ \ ___|
 | |  _| | | | |_) | |_| |__ \
 | |_| | |_| |  __/|  _  |__) |
  \____|\___/|_|   |_| |_|___/

  gopar - GreenPAK-class place and route
`

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	// Label allocation skew, mate asymmetry and similar internal invariant
	// violations panic with a *pargraph.InternalError from deep inside the
	// engine. That is the one class of error this tool recovers, converting
	// it into a diagnostic instead of a raw stack trace, since it is never
	// something a valid input can trigger.
	defer func() {
		if r := recover(); r != nil {
			if ie, ok := r.(*pargraph.InternalError); ok {
				fmt.Fprintf(os.Stderr, "internal error: %v\n", ie)
				os.Exit(3)
			}
			panic(r)
		}
	}()

	switch os.Args[1] {
	case "place":
		runPlace(os.Args[2:])
	case "snapshot":
		runSnapshotShow(os.Args[2:])
	case "-h", "-help", "--help", "help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "gopar: unknown command %q\n", os.Args[1])
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprint(os.Stderr, banner)
	fmt.Fprintln(os.Stderr, "usage:")
	fmt.Fprintln(os.Stderr, "  gopar place [flags] <netlist.yaml> <part.yaml>")
	fmt.Fprintln(os.Stderr, "  gopar snapshot <file>")
}

func runPlace(args []string) {
	fs := flag.NewFlagSet("place", flag.ExitOnError)
	cfgPath := fs.String("config", "", "path to a config YAML overriding the defaults")
	seed := fs.Uint64("seed", 0, "override the search seed (0 = use config value)")
	maxIter := fs.Int("max-iterations", 0, "override the iteration budget (0 = use config value)")
	tui := fs.Bool("tui", false, "show an interactive report viewer instead of printing plain text")
	snapOut := fs.String("snapshot", "", "write a compressed snapshot of the committed device state to this path")
	fs.Parse(args)

	if fs.NArg() < 2 {
		usage()
		os.Exit(2)
	}
	netlistPath, partPath := fs.Arg(0), fs.Arg(1)

	fmt.Fprint(os.Stderr, banner)

	cfg := config.Default()
	if *cfgPath != "" {
		loaded, err := config.LoadFile(*cfgPath)
		if err != nil {
			fatal(err)
		}
		cfg = loaded
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if *maxIter != 0 {
		cfg.MaxIterations = *maxIter
	}

	mod, err := netlist.LoadFile(netlistPath)
	if err != nil {
		fatal(err)
	}
	part, err := device.LoadPartFile(partPath)
	if err != nil {
		fatal(err)
	}

	reg := metrics.NewRegistry()
	sink := metrics.Wrap(diag.NewStderrSink(), reg)

	prog := build.NewProgram(part)
	if err := build.BuildDevice(prog); err != nil {
		fatal(err)
	}
	if _, err := build.BuildNetlist(mod, prog); err != nil {
		fatal(err)
	}

	result, err := par.Run(prog.N, prog.D, par.Config{Seed: cfg.Seed, MaxIterations: cfg.MaxIterations}, sink)
	if err != nil {
		fatal(err)
	}
	reg.RecordPlacement(result.Score, result.Iterations, result.Solved)

	if !result.Solved {
		fmt.Fprintf(os.Stderr, "ERROR: search failed to converge: score %d after %d iterations\n", result.Score, result.Iterations)
		os.Exit(1)
	}

	tally, err := commit.Run(prog.N, part, prog.Ports)
	if err != nil {
		fatal(err)
	}
	reg.RecordRouteUsage(tally.MatrixUsage)

	if err := drc.Run(prog.N, part, sink); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}

	rpt := report.Build(prog.N, part, result.Score, result.Iterations, result.Solved, tally.MatrixUsage)
	if *tui {
		if err := report.RunTUI(rpt); err != nil {
			fatal(err)
		}
	} else {
		report.WriteText(os.Stdout, rpt)
	}

	if *snapOut != "" {
		snap := snapshot.Capture(prog.N, part)
		if err := snapshot.WriteFile(*snapOut, snap); err != nil {
			fatal(err)
		}
	}
}

func runSnapshotShow(args []string) {
	fs := flag.NewFlagSet("snapshot", flag.ExitOnError)
	fs.Parse(args)
	if fs.NArg() < 1 {
		usage()
		os.Exit(2)
	}
	snap, err := snapshot.ReadFile(fs.Arg(0))
	if err != nil {
		fatal(err)
	}
	fmt.Printf("part: %s\n\n", snap.Part)
	fmt.Println("PLACEMENT")
	for _, p := range snap.Placement {
		fmt.Printf("  %-20s -> %s\n", p.Entity, p.Site)
	}
	fmt.Println("\nSITES")
	for _, s := range snap.Sites {
		if !s.Enabled {
			continue
		}
		fmt.Printf("  %-16s mode=%-8s routes=%d\n", s.Name, s.Mode, s.RoutesUsed)
	}
}

// fatal reports a user-facing error and exits non-zero: a precise
// diagnostic naming the offending entity, a non-zero exit code, and no
// local recovery.
func fatal(err error) {
	fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
	os.Exit(1)
}
