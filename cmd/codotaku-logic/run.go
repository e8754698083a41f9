package main

import (
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	logic "github.com/ilyas-taouaou/codotaku-logic"
)

// A demo is a canned circuit: build wires it into a fresh graph and returns
// the probes to print; script, if set, pokes Input payloads as ticks pass.
type demo struct {
	about  string
	build  func(g *logic.Graph) []probe
	script func(tick uint64, g *logic.Graph)
}

type probe struct {
	name string
	id   logic.NodeID
}

var demos = map[string]demo{
	"nand": {
		about: "two inputs through a single Nand gate",
		build: func(g *logic.Graph) []probe {
			a := g.Insert(logic.Position{X: 0, Y: 0}, logic.KindInput)
			b := g.Insert(logic.Position{X: 0, Y: 1}, logic.KindInput)
			nand := g.Insert(logic.Position{X: 1, Y: 0}, logic.KindNand)
			out := g.Insert(logic.Position{X: 2, Y: 0}, logic.KindOutput)
			must(g.Connect(a, nand, 0))
			must(g.Connect(b, nand, 1))
			must(g.Connect(nand, out, 0))
			must(g.SetPayload(a, true))
			return []probe{{"out", out}}
		},
		// flip b halfway through to show the output reacting.
		script: func(tick uint64, g *logic.Graph) {
			if tick == 5 {
				for _, id := range g.IDs() {
					if k, _ := g.Kind(id); k == logic.KindInput {
						_ = g.TogglePayload(id)
						return
					}
				}
			}
		},
	},
	"blinker": {
		about: "a free running Clock wired straight to an Output",
		build: func(g *logic.Graph) []probe {
			clk := g.Insert(logic.Position{}, logic.KindClock)
			out := g.Insert(logic.Position{X: 1}, logic.KindOutput)
			must(g.Connect(clk, out, 0))
			return []probe{{"out", out}}
		},
	},
	"srlatch": {
		about: "two cross-coupled Nand gates forming an SR latch",
		build: func(g *logic.Graph) []probe {
			s := g.Insert(logic.Position{X: 0, Y: 0}, logic.KindInput)
			r := g.Insert(logic.Position{X: 0, Y: 2}, logic.KindInput)
			na := g.Insert(logic.Position{X: 1, Y: 0}, logic.KindNand)
			nb := g.Insert(logic.Position{X: 1, Y: 2}, logic.KindNand)
			q := g.Insert(logic.Position{X: 2, Y: 0}, logic.KindOutput)
			qn := g.Insert(logic.Position{X: 2, Y: 2}, logic.KindOutput)
			must(g.Connect(s, na, 0))
			must(g.Connect(nb, na, 1))
			must(g.Connect(r, nb, 0))
			must(g.Connect(na, nb, 1))
			must(g.Connect(na, q, 0))
			must(g.Connect(nb, qn, 0))
			must(g.SetPayload(s, true))
			must(g.SetPayload(r, true))
			return []probe{{"q", q}, {"qn", qn}}
		},
	},
}

var runCmd = &cobra.Command{
	Use:   "run [circuit]",
	Short: "Run a built-in demo circuit and print its outputs per tick",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := "nand"
		if len(args) > 0 {
			name = args[0]
		}
		d, ok := demos[name]
		if !ok {
			return fmt.Errorf("unknown circuit %q, have: %s", name, strings.Join(demoNames(), ", "))
		}

		hz, _ := cmd.Flags().GetFloat64("hz")
		frames, _ := cmd.Flags().GetInt("frames")
		debug, _ := cmd.Flags().GetBool("debug")

		opts := []logic.Option{logic.WithRate(hz)}
		if debug {
			opts = append(opts, logic.WithLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}))))
		}

		g := logic.NewGraph()
		probes := d.build(g)
		sim := logic.NewSimulation(g, opts...)

		fmt.Printf("%s: %s (%.3g Hz, %d frames)\n", name, d.about, hz, frames)
		const frame = 16 * time.Millisecond
		for i := 0; i < frames; i++ {
			time.Sleep(frame)
			if !sim.Advance(frame) {
				continue
			}
			if d.script != nil {
				d.script(sim.Tick(), g)
			}
			line := fmt.Sprintf("tick %3d:", sim.Tick())
			for _, p := range probes {
				v, _ := g.Payload(p.id)
				line += fmt.Sprintf(" %s=%v", p.name, v)
			}
			fmt.Println(line)
		}
		return nil
	},
}

func demoNames() []string {
	names := make([]string, 0, len(demos))
	for n := range demos {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

func init() {
	runCmd.Flags().Float64("hz", logic.DefaultRate, "Tick rate in Hz (0 ticks every frame)")
	runCmd.Flags().Int("frames", 120, "Number of 16ms host frames to drive")
	rootCmd.AddCommand(runCmd)
}
