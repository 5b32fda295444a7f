// Command frostline is the thin CLI over the calculation engine: read a
// JSON spec, run the named tool, render the result. No engineering
// logic lives here.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"Frostline/internal/calc/pipestress"
	"Frostline/internal/calc/purge"
	"Frostline/internal/calc/report"
	"Frostline/internal/calc/riser"
	"Frostline/internal/calc/roomload"
	"Frostline/internal/calc/srv"
	"Frostline/internal/calc/sump"
	"Frostline/internal/calc/support"
	"Frostline/internal/calc/underfloor"
	"Frostline/internal/compliance"
	"Frostline/internal/config"
	"Frostline/internal/props"
	"Frostline/internal/solver"
)

func main() {
	_ = godotenv.Load()

	tool := flag.String("tool", "", "roomload|pipestress|srv|riser|support|underfloor|sump|purge")
	inPath := flag.String("in", "", "input spec JSON (default stdin)")
	format := flag.String("format", "text", "text|json|pdf")
	outPath := flag.String("out", "", "output file (default stdout)")
	tables := flag.String("tables", "", "property table directory override")
	cfgPath := flag.String("config", "", "engine tuning ini file")
	project := flag.String("project", "", "project name for reports")
	author := flag.String("author", "", "author name for reports")
	flag.Parse()

	if lvl, err := log.ParseLevel(os.Getenv("FROSTLINE_LOG_LEVEL")); err == nil {
		log.SetLevel(lvl)
	}

	cfg := config.Load(*cfgPath)
	dir := *tables
	if dir == "" {
		dir = cfg.TableDir
	}
	if dir == "" {
		dir = os.Getenv("FROSTLINE_DATA_DIR")
	}
	cat, err := props.Load(dir)
	if err != nil {
		log.WithError(err).Fatal("property tables failed to load")
	}

	raw, err := readInput(*inPath)
	if err != nil {
		log.WithError(err).Fatal("spec not read")
	}

	result, err := dispatch(*tool, raw, cat, cfg)
	if err != nil {
		log.WithError(err).Fatal("calculation failed")
	}

	out := os.Stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			log.WithError(err).Fatal("output file not created")
		}
		defer f.Close()
		out = f
	}
	if err := render(out, *format, *tool, *project, *author, result); err != nil {
		log.WithError(err).Fatal("render failed")
	}
}

func readInput(path string) ([]byte, error) {
	if path == "" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

// dispatch decodes the spec for the named tool and runs it. Tuning-file
// values fill only spec fields the caller left at zero; a field set in
// the spec always wins.
func dispatch(tool string, raw []byte, cat *props.Catalog, cfg config.Config) (any, error) {
	iter := solver.Config{RelTol: cfg.SolverRelTol, MaxIter: cfg.SolverMaxIter}
	switch tool {
	case "roomload":
		return run(raw, func(in roomload.Input) (roomload.Result, error) {
			if in.SafetyFactor == 0 {
				in.SafetyFactor = cfg.SafetyFactor
			}
			if in.RunFraction == 0 {
				in.RunFraction = cfg.RunFraction
			}
			return roomload.Calculate(in, cat)
		})
	case "pipestress":
		return run(raw, func(in pipestress.Input) (pipestress.Result, error) { return pipestress.Calculate(in, cat) })
	case "srv":
		return run(raw, func(in srv.Input) (srv.Result, error) {
			if in.BackPressureFraction == 0 {
				in.BackPressureFraction = cfg.BackPressureFraction
			}
			if in.DiffusionMinutes == 0 {
				in.DiffusionMinutes = cfg.DiffusionMinutes
			}
			in.Solver = iter
			return srv.Size(in, cat)
		})
	case "riser":
		return run(raw, func(in riser.Input) (riser.Result, error) {
			if in.FloorFPM == 0 {
				in.FloorFPM = cfg.RiserFloorFPM
			}
			if in.CeilingFPM == 0 {
				in.CeilingFPM = cfg.RiserCeilingFPM
			}
			in.Solver = iter
			return riser.Size(in, cat)
		})
	case "support":
		return run(raw, func(in support.Input) (support.Result, error) { return support.Calculate(in, cat) })
	case "underfloor":
		return run(raw, underfloor.Calculate)
	case "sump":
		return run(raw, sump.Calculate)
	case "purge":
		return run(raw, func(in purge.Input) (purge.Result, error) { return purge.Calculate(in, cat) })
	default:
		return nil, fmt.Errorf("unknown tool %q", tool)
	}
}

func run[I, R any](raw []byte, calc func(I) (R, error)) (any, error) {
	var in I
	if err := json.Unmarshal(raw, &in); err != nil {
		return nil, fmt.Errorf("spec decode: %w", err)
	}
	return calc(in)
}

// resultFlags pulls the compliance flags back out of an arbitrary
// result record through its JSON shape.
func resultFlags(result any) compliance.Flags {
	raw, err := json.Marshal(result)
	if err != nil {
		return nil
	}
	var probe struct {
		Flags compliance.Flags `json:"flags"`
	}
	_ = json.Unmarshal(raw, &probe)
	return probe.Flags
}

func render(w io.Writer, format, tool, project, author string, result any) error {
	body, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	switch format {
	case "json":
		_, err := fmt.Fprintln(w, string(body))
		return err
	case "text":
		fmt.Fprintln(w, string(body))
		for _, fl := range resultFlags(result) {
			fmt.Fprintf(w, "%-8s %-24s %s\n", fl.Severity, fl.Ref, fl.Message)
		}
		return nil
	case "pdf":
		return report.Generate(w, report.Doc{
			Title:   "Frostline " + tool + " calculation",
			Project: project,
			Author:  author,
			Body:    string(body),
			Flags:   resultFlags(result),
		})
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
