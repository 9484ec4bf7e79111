// Package main measures drain timelines for the absorption policies: how many
// frames a packet of charge needs to reach ground and be fully absorbed, as a
// function of distance, packet size, and absorb rate. Results go to CSV for
// offline comparison against the analytic bound d + c + ceil(c/rate) + 2.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/groundflow/config"
	"github.com/pthm-cable/groundflow/sim"
)

// drainRun is one CSV row of the calibration sweep.
type drainRun struct {
	Policy        string  `csv:"policy"`
	Rate          int     `csv:"rate"`
	Distance      int     `csv:"distance"`
	Charge        int     `csv:"charge"`
	Frames        int64   `csv:"frames"`
	FramesPerUnit float64 `csv:"frames_per_unit"`
	Bound         int     `csv:"bound"`
}

// policyCase is one absorb configuration to sweep.
type policyCase struct {
	policy string
	rate   int
}

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	outputDir := flag.String("output", "", "Output directory for results")
	maxFrames := flag.Int64("max-frames", 100000, "Abort a run after this many frames")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	baseCfg := config.Cfg()

	cases := []policyCase{
		{policy: "decay", rate: 1},
		{policy: "decay", rate: 2},
		{policy: "decay", rate: 4},
		{policy: "instant", rate: 1},
	}
	distances := []int{4, 8, 16, 32, 64}
	charges := []int{baseCfg.Field.MaxCharge / 2, baseCfg.Field.MaxCharge}

	var runs []drainRun
	for _, pc := range cases {
		for _, d := range distances {
			for _, c := range charges {
				frames := measureDrain(baseCfg, pc, d, c, *maxFrames)
				runs = append(runs, drainRun{
					Policy:        pc.policy,
					Rate:          pc.rate,
					Distance:      d,
					Charge:        c,
					Frames:        frames,
					FramesPerUnit: float64(frames) / float64(c),
					Bound:         drainBound(pc, d, c),
				})
			}
		}
		summarize(pc, runs)
	}

	path := filepath.Join(*outputDir, "calibration.csv")
	f, err := os.Create(path)
	if err != nil {
		log.Fatalf("failed to create %s: %v", path, err)
	}
	defer f.Close()
	if err := gocsv.Marshal(runs, f); err != nil {
		log.Fatalf("failed to write calibration CSV: %v", err)
	}
	fmt.Printf("wrote %d runs to %s\n", len(runs), path)
}

// measureDrain runs a single line-grid scenario: ground at the left end, a
// charge packet at the given distance, and counts frames until the system is
// empty.
func measureDrain(base *config.Config, pc policyCase, distance, charge int, maxFrames int64) int64 {
	cfg := *base
	cfg.Grid.Width = distance + 1
	cfg.Grid.Height = 1
	cfg.Field.CostModel = "uniform"
	cfg.Field.AbsorbPolicy = pc.policy
	cfg.Field.AbsorbRate = pc.rate
	cfg.Sim.Workers = 1

	e := sim.NewEngine(&cfg)
	defer e.Close()

	e.PaintGround(0, 0)
	e.InjectCharge(distance, 0, int32(charge))

	for e.TotalCharge() > 0 {
		e.Step()
		if e.Frame() >= maxFrames {
			log.Fatalf("run %s/r%d d=%d c=%d did not drain within %d frames",
				pc.policy, pc.rate, distance, charge, maxFrames)
		}
	}
	return e.Frame()
}

// drainBound is the analytic upper bound on drain time for a single packet.
// Instant absorption removes the whole arrival in one frame.
func drainBound(pc policyCase, distance, charge int) int {
	if pc.policy == "instant" {
		return distance + charge + 2
	}
	return distance + (charge+pc.rate-1)/pc.rate + charge + 2
}

// summarize logs mean and spread of frames-per-unit for one policy case.
func summarize(pc policyCase, runs []drainRun) {
	var series []float64
	for _, r := range runs {
		if r.Policy == pc.policy && r.Rate == pc.rate {
			series = append(series, r.FramesPerUnit)
		}
	}
	if len(series) == 0 {
		return
	}
	mean, std := stat.MeanStdDev(series, nil)
	if len(series) < 2 {
		std = 0
	}
	fmt.Printf("%s rate=%d: frames/unit mean=%.2f std=%.2f over %d runs\n",
		pc.policy, pc.rate, mean, std, len(series))
}
