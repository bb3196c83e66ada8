/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"drivechart/internal/archive"
	"drivechart/internal/boxscore"
	"drivechart/internal/config"
	"drivechart/internal/crash"
	"drivechart/internal/domain"
	"drivechart/internal/layout"
	applog "drivechart/internal/log"
	"drivechart/internal/render"
	"drivechart/internal/teams"
	"drivechart/internal/version"
)

func usage() {
	fmt.Println("drivechart — football drive chart generator")
	fmt.Printf("Version: %s\n", version.String())
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  drivechart [flags] ROAD,HOME       Render a drive chart for one game")
	fmt.Println("  drivechart version|-v|--version    Show version")
	fmt.Println("  drivechart games                   List archived games")
	fmt.Println()
	fmt.Println("Flags:")
	fmt.Println("  -drivedata road.csv,home.csv  drive table files, road first (required)")
	fmt.Println("  -out PATH                     output file (default <road>-at-<home>.<format>)")
	fmt.Println("  -format png|svg|pdf           output format (default png)")
	fmt.Println("  -exchangecolor ABBR           swap that team's primary/secondary colors")
	fmt.Println("  -text                         also print the text chart to stdout")
	fmt.Println("  -teamfile PATH                JSON file with team profile overrides")
	fmt.Println("  -archive                      record the game in the per-user archive")
}

func main() {
	applog.Init(applog.FromEnv())
	defer crash.Recover()

	args := os.Args
	if len(args) > 1 {
		switch args[1] {
		case "version", "--version", "-v":
			fmt.Println(version.String())
			return
		case "games":
			os.Exit(listGames())
		case "help", "--help", "-h":
			usage()
			return
		}
	}
	os.Exit(run(args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("drivechart", flag.ContinueOnError)
	fs.Usage = usage
	var (
		driveData     = fs.String("drivedata", "", "comma-separated drive table files, road first")
		exchangeColor = fs.String("exchangecolor", "", "team abbreviation whose colors are swapped")
		outPath       = fs.String("out", "", "output file path")
		format        = fs.String("format", "png", "output format: png, svg, or pdf")
		textChart     = fs.Bool("text", false, "print the text chart to stdout")
		teamFile      = fs.String("teamfile", "", "JSON file with team profile overrides")
		useArchive    = fs.Bool("archive", false, "record the game in the per-user archive")
	)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	l := applog.WithComponent("cli")

	cfg, err := config.Load()
	if err != nil {
		l.Warn("config load failed, using defaults", slog.Any("err", err))
		cfg = config.Defaults()
	}
	applog.Init(applog.Options{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		AddSource: cfg.Logging.Source,
		File:      cfg.Logging.File,
	})
	l = applog.WithComponent("cli")

	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: team abbreviations required, e.g. SEA,NWE")
		usage()
		return 2
	}
	road, home, ok := splitPair(fs.Arg(0))
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: teams %q: want ROAD,HOME\n", fs.Arg(0))
		return 2
	}
	roadFile, homeFile, ok := splitPair(*driveData)
	if !ok {
		fmt.Fprintln(os.Stderr, "Error: -drivedata requires road.csv,home.csv")
		return 2
	}

	table := teams.NewTable()
	if *teamFile != "" {
		if err := table.LoadOverrides(*teamFile); err != nil {
			l.Error("team file rejected", slog.String("path", *teamFile), slog.Any("err", err))
			fmt.Fprintln(os.Stderr, "Error:", err)
			return 1
		}
	}
	roadProfile, err := table.Lookup(road)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	homeProfile, err := table.Lookup(home)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}

	game := &domain.Game{Road: roadProfile.Info(), Home: homeProfile.Info()}
	switch strings.ToUpper(*exchangeColor) {
	case "":
	case game.Road.Abbrev:
		game.Road.SwapColors()
	case game.Home.Abbrev:
		game.Home.SwapColors()
	default:
		fmt.Fprintf(os.Stderr, "Error: -exchangecolor %s matches neither team\n", *exchangeColor)
		return 2
	}

	roadDrives, roadErrs, err := boxscore.ReadFile(roadFile, game.Road.Abbrev, game.Home.Abbrev, domain.Road)
	if err != nil {
		l.Error("read road drives failed", slog.Any("err", err))
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	homeDrives, homeErrs, err := boxscore.ReadFile(homeFile, game.Road.Abbrev, game.Home.Abbrev, domain.Home)
	if err != nil {
		l.Error("read home drives failed", slog.Any("err", err))
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	for _, re := range append(roadErrs, homeErrs...) {
		l.Warn("skipping malformed row", slog.String("file", re.File), slog.Int("line", re.Line), slog.String("reason", re.Msg))
	}

	game.Drives, err = boxscore.Merge(roadDrives, homeDrives)
	if err != nil {
		l.Error("merge failed", slog.Any("err", err))
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	l.Info("game loaded",
		slog.String("road", game.Road.Abbrev), slog.String("home", game.Home.Abbrev),
		slog.Int("drives", len(game.Drives)))

	geo := layout.Geometry{
		PixelsPerYard:  cfg.Chart.PixelsPerYard,
		BoxHeight:      cfg.Chart.BoxHeight,
		BoxGap:         cfg.Chart.BoxGap,
		BorderYards:    cfg.Chart.BorderYards,
		MarkerInset:    cfg.Chart.MarkerInset,
		MarkerHeight:   cfg.Chart.MarkerHeight,
		MinFieldHeight: cfg.Chart.MinFieldHeight,
	}
	chart := layout.Build(game, geo, render.Measurer())

	out := *outPath
	if out == "" {
		out = fmt.Sprintf("%s-at-%s.%s", strings.ToLower(game.Road.Abbrev), strings.ToLower(game.Home.Abbrev), *format)
	}
	switch *format {
	case "png":
		err = render.WritePNG(chart, game, out)
	case "svg":
		err = render.WriteSVG(chart, game, out)
	case "pdf":
		err = render.WritePDF(chart, game, out)
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown format %q (want png, svg, or pdf)\n", *format)
		return 2
	}
	if err != nil {
		l.Error("render failed", slog.String("out", out), slog.Any("err", err))
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	l.Info("chart written", slog.String("out", out), slog.String("format", *format))
	fmt.Println("Wrote", out)

	if *textChart {
		fmt.Println()
		fmt.Print(render.TableText(game))
		fmt.Println()
		fmt.Print(render.TextChart(game))
	}

	if *useArchive {
		if err := recordGame(game, out); err != nil {
			l.Error("archive failed", slog.Any("err", err))
			fmt.Fprintln(os.Stderr, "Error:", err)
			return 1
		}
	}
	return 0
}

func recordGame(g *domain.Game, out string) error {
	path, err := archive.DefaultPath()
	if err != nil {
		return err
	}
	a, err := archive.Open(path)
	if err != nil {
		return err
	}
	defer a.Close()
	_, err = a.Record(context.Background(), g, out)
	return err
}

func listGames() int {
	path, err := archive.DefaultPath()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	a, err := archive.Open(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	defer a.Close()
	games, err := a.List(context.Background())
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	if len(games) == 0 {
		fmt.Println("No archived games.")
		return 0
	}
	for _, g := range games {
		fmt.Printf("%4d  %s at %s  %d drives  %s  %s\n", g.ID, g.Road, g.Home, g.DriveCount, g.CreatedAt, g.OutputPath)
	}
	return 0
}

// splitPair splits "a,b" into its two non-empty halves.
func splitPair(s string) (string, string, bool) {
	parts := strings.SplitN(s, ",", 2)
	if len(parts) != 2 {
		return "", "", false
	}
	a := strings.TrimSpace(parts[0])
	b := strings.TrimSpace(parts[1])
	if a == "" || b == "" {
		return "", "", false
	}
	return a, b, true
}
