package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/alitto/pond"
	"github.com/urfave/cli/v2"

	"github.com/sixy6e/go-rigdef/builder"
	"github.com/sixy6e/go-rigdef/config"
	"github.com/sixy6e/go-rigdef/encode"
	"github.com/sixy6e/go-rigdef/rig"
	"github.com/sixy6e/go-rigdef/rigstore"
)

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, scanner.Err()
}

func splitSelected(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// parseFile runs the parser alone and reports its diagnostics; no Rig
// is materialized (grounded: cmd/main.go's convert_gsf "metadata-only"
// split between cheap and expensive processing).
func parseFile(path string) error {
	lines, err := readLines(path)
	if err != nil {
		return err
	}
	_, diags := rig.Parse(rig.NewSliceLineIterator(lines))
	fmt.Println(diags.String())
	if diags.HasErrors() {
		return fmt.Errorf("%s: parse produced errors", path)
	}
	return nil
}

// buildFile parses and builds a single rig-def file, writing the
// finalized rig plus its diagnostics as JSON to outdirUri.
func buildFile(path, selected, outdirUri, configUri string) error {
	log.Println("Processing rig-def:", path)
	lines, err := readLines(path)
	if err != nil {
		return err
	}

	registry, parseDiags := rig.Parse(rig.NewSliceLineIterator(lines))
	diags := append(rig.Diagnostics{}, parseDiags...)

	r, err := builder.Build(registry, splitSelected(selected), builder.DefaultSinks(), config.Default(), &diags)
	if err != nil {
		return err
	}

	dir, file := filepath.Split(path)
	if outdirUri == "" {
		outdirUri = dir
	}
	outUri := filepath.Join(outdirUri, file+".json")

	log.Println("Writing rig:", outUri)
	_, err = encode.WriteJson(outUri, configUri, encode.Document{Rig: r, Diagnostics: diags})
	return err
}

// buildTrawl finds every rig-def file under uri and builds each one on
// a fixed worker pool, cancelled on Ctrl+C (grounded: cmd/main.go's
// convert_gsf_list).
func buildTrawl(uri, selected, outdirUri, configUri string) error {
	log.Println("Searching uri:", uri)
	items, err := rigstore.Find(uri, configUri)
	if err != nil {
		return err
	}
	log.Println("Number of rig-def files to process:", len(items))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	n := runtime.NumCPU() * 2
	pool := pond.New(n, 0, pond.MinWorkers(n), pond.Context(ctx))
	defer pool.StopAndWait()

	for _, name := range items {
		itemPath := name
		pool.Submit(func() {
			if err := buildFile(itemPath, selected, outdirUri, configUri); err != nil {
				log.Println("error building", itemPath, ":", err)
			}
		})
	}

	return nil
}

func main() {
	app := &cli.App{
		Name:  "rigc",
		Usage: "parse and build rig-def vehicle files",
		Commands: []*cli.Command{
			{
				Name:  "parse",
				Usage: "parse a rig-def file and print its diagnostics",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "path", Usage: "pathname to a rig-def file", Required: true},
				},
				Action: func(cCtx *cli.Context) error {
					return parseFile(cCtx.String("path"))
				},
			},
			{
				Name:  "build",
				Usage: "parse and build a rig-def file, writing the finalized rig as JSON",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "path", Usage: "pathname to a rig-def file", Required: true},
					&cli.StringFlag{Name: "selected", Usage: "comma-separated module (section) names to include"},
					&cli.StringFlag{Name: "outdir-uri", Usage: "URI or pathname to an output directory"},
					&cli.StringFlag{Name: "config-uri", Usage: "URI or pathname to a TileDB config file"},
				},
				Action: func(cCtx *cli.Context) error {
					return buildFile(cCtx.String("path"), cCtx.String("selected"), cCtx.String("outdir-uri"), cCtx.String("config-uri"))
				},
			},
			{
				Name:  "build-trawl",
				Usage: "find and build every rig-def file under a directory or object-store URI",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "uri", Usage: "URI or pathname to a directory containing rig-def files", Required: true},
					&cli.StringFlag{Name: "selected", Usage: "comma-separated module (section) names to include"},
					&cli.StringFlag{Name: "outdir-uri", Usage: "URI or pathname to an output directory"},
					&cli.StringFlag{Name: "config-uri", Usage: "URI or pathname to a TileDB config file"},
				},
				Action: func(cCtx *cli.Context) error {
					return buildTrawl(cCtx.String("uri"), cCtx.String("selected"), cCtx.String("outdir-uri"), cCtx.String("config-uri"))
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
