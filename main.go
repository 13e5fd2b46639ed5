package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/gookit/color"
	"github.com/leonelquinteros/gotext"

	"dungeongen/pkg/engine/random"
	"dungeongen/pkg/engine/terminal"
	"dungeongen/pkg/engine/world"
	"dungeongen/pkg/game/config"
	"dungeongen/pkg/game/devtools"
	"dungeongen/pkg/game/generator"
)

func initGettext(locales, lang string) {
	gotext.Configure(locales, lang, "default")
}

// useColor resolves the -color flag
func useColor(mode string) bool {
	switch mode {
	case "always":
		color.ForceColor()
		return true
	case "never":
		color.Disable()
		return false
	default:
		return terminal.IsTerminal(os.Stdout)
	}
}

func main() {
	configFile := flag.String("config", "configs/example.yaml", "dungeon YAML file")
	seed := flag.Int64("seed", 0, "random seed (0 picks one from the clock)")
	players := flag.Int("players", 1, "number of players")
	tutorial := flag.Bool("tutorial", false, "check the tutorial start conditions")
	colorMode := flag.String("color", "auto", "colour the map: auto, always or never")
	locales := flag.String("locales", "locales", "directory holding translations")
	lang := flag.String("lang", "en_GB", "translation language")
	verbose := flag.Bool("v", false, "log every generation attempt")
	dumpFile := flag.String("dump", "", "also write a plain text dump to this file")
	snapshot := flag.Bool("html", false, "also save an HTML snapshot")
	flag.Parse()

	initGettext(*locales, *lang)

	setup, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("Cannot load %s: %v", *configFile, err)
	}
	if *tutorial {
		setup.Quest.Tutorial = true
	}

	logOut := io.Discard
	if *verbose {
		logOut = os.Stderr
	}
	setup.Generator.Logger = log.New(logOut, "dungeongen ", log.Ltime)

	gen, err := generator.New(setup.Generator)
	if err != nil {
		log.Fatalf("Cannot create generator: %v", err)
	}

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	dmap := world.NewMap(0, 0)
	rng := random.New(*seed)
	res, err := gen.Generate(rng, dmap, world.NewMonsterManager(), setup.Quest, *players)
	if err != nil {
		fmt.Fprintln(os.Stderr, gotext.Get("Could not generate a dungeon for \"%s\": %v", setup.Quest.Name, err))
		os.Exit(1)
	}
	if res.Warning != "" {
		fmt.Fprintln(os.Stderr, res.Warning)
	}

	width, _ := terminal.Size(os.Stdout)
	opts := devtools.DumpOptions{Color: useColor(*colorMode), Width: width, Seed: rng.Seed()}
	if err := devtools.WriteDump(os.Stdout, dmap, res, opts); err != nil {
		log.Fatalf("Cannot write map: %v", err)
	}

	if terminal.IsTerminal(os.Stdout) && !terminal.Fits(os.Stdout, dmap.Width(), dmap.Height(), 1) && *dumpFile == "" {
		fmt.Fprintln(os.Stderr, gotext.Get("The map is larger than the terminal, use -dump to write it to a file"))
	}

	if *dumpFile != "" {
		path, err := devtools.DumpToFile(*dumpFile, dmap, res, rng.Seed())
		if err != nil {
			log.Fatalf("Cannot write %s: %v", *dumpFile, err)
		}
		fmt.Fprintln(os.Stderr, gotext.Get("Map written to %s", path))
	}
	if *snapshot {
		name, err := devtools.SaveSnapshot(dmap, res, setup.Quest.Name)
		if err != nil {
			log.Fatalf("Cannot save snapshot: %v", err)
		}
		fmt.Fprintln(os.Stderr, gotext.Get("Snapshot saved to %s", name))
	}
}
