// Copyright 2025 The Corpusminer Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the corpusminer CLI application.

corpusminer mines frequent contiguous phrases from a corpus of text
documents, either a directory of files or a CSV of rows, using one of two
strategies: a seed-and-extend greedy max-phrase miner, or a contiguous
PrefixSpan miner with ALL/CLOSED/MAXIMAL output filters.

# Usage

Mine a directory of .txt files with the greedy strategy (default):

	corpusminer ./docs --mask "*.txt"

Mine a CSV file with PrefixSpan in closed-pattern mode, keeping the
corpus fully in memory as PrefixSpan requires:

	corpusminer rows.csv --algo prefixspan --mode closed --in-mem

# Configuration

Runtime defaults are managed through a TOML file with mining, loader, and
CLI sections:

	[mining]
	min_docs = 10
	ngrams = 4

	[loader]
	sampling = 1.0
	threads = 0
	mem_limit_mb = 0
	cache_size = 1000
	csv_delim = ","

The config file is automatically created with defaults if it doesn't
exist. CLI flags always override config file values.

# Command Line Flags

	--n int          Minimum distinct-document support (default from config)
	--ngrams int     Seed length / minimum pattern length (default from config)
	--mask string    File mask for directory input (e.g. "*.txt")
	--sampling float Fraction of input documents to retain
	--threads int    Upper bound on worker threads (0 = implementation default)
	--mem int        Advisory memory cap in MiB (0 = unlimited)
	--cache int      Max entries in the on-disk doc cache
	--in-mem         Force full in-memory corpus (required by PrefixSpan)
	--preload        Populate the on-disk cache during load
	--csv-delim char CSV delimiter; accepts literal "\t" or "\n"
	--algo string    "greedy" or "prefixspan" (default "greedy")
	--mode string    PrefixSpan filter: "all", "closed", or "maximal" (default "closed")
	--out string     Output CSV path (default "results_max.csv")
	-d               Enable debug logging

Positional argument 1 is the input path: a directory, or a file treated as
CSV when its name contains ".csv" or lacks ".txt".
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/phrasemine/corpusminer/internal/cli"
	"github.com/phrasemine/corpusminer/pkg/config"
	"github.com/phrasemine/corpusminer/pkg/corpus"
	"github.com/phrasemine/corpusminer/pkg/miner"
	"github.com/phrasemine/corpusminer/pkg/writer"
)

const (
	Version = "0.1.0"
	gh      = "https://github.com/phrasemine/corpusminer"
)

func main() {
	cfg, activeConfigPath, err := config.LoadConfigWithPriority("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "[ERROR] failed to load config: %v\n", err)
		os.Exit(1)
	}

	showVersion := flag.Bool("version", false, "Show current version")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	minDocs := flag.Int("n", cfg.Mining.MinDocs, "Minimum distinct-document support")
	ngrams := flag.Int("ngrams", cfg.Mining.Ngrams, "Seed length / minimum pattern length")
	mask := flag.String("mask", "", "File mask for directory scan (e.g. \"*.txt\")")
	sampling := flag.Float64("sampling", cfg.Loader.Sampling, "Fraction of input documents to retain (0.0-1.0)")
	threads := flag.Int("threads", cfg.Loader.Threads, "Max worker threads (0 for implementation default)")
	memLimit := flag.Int("mem", cfg.Loader.MemLimitMB, "Advisory memory limit in MiB (0 for unlimited)")
	cacheSize := flag.Int("cache", cfg.Loader.CacheSize, "Max entries in the on-disk doc cache")
	inMem := flag.Bool("in-mem", cfg.CLI.InMemory, "Keep entire corpus in RAM (required for PrefixSpan)")
	preload := flag.Bool("preload", cfg.CLI.Preload, "Preload cache while loading")
	csvDelim := flag.String("csv-delim", cfg.Loader.CSVDelim, "CSV delimiter (accepts literal \\t or \\n)")
	algo := flag.String("algo", "greedy", "Mining strategy: \"greedy\" or \"prefixspan\"")
	mode := flag.String("mode", "closed", "PrefixSpan output filter: \"all\", \"closed\", or \"maximal\"")
	out := flag.String("out", "results_max.csv", "Output CSV path")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s <dir_or_csv> [options]\n\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	// Options may also follow the input path, as in the usage examples
	// above; keep parsing after each positional argument.
	var positional []string
	for flag.NArg() > 0 {
		positional = append(positional, flag.Arg(0))
		_ = flag.CommandLine.Parse(flag.Args()[1:])
	}

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.InfoLevel)
	}
	log.Debugf("using config file: %s", activeConfigPath)

	if len(positional) < 1 {
		flag.Usage()
		os.Exit(1)
	}
	inputPath := positional[0]

	info, err := os.Stat(inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[ERROR] path does not exist: %s\n", inputPath)
		os.Exit(1)
	}

	delim := resolveCSVDelim(*csvDelim)

	miningMode, err := miner.ParseMode(*mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[ERROR] %v\n", err)
		os.Exit(1)
	}

	canceler := miner.NewCanceler()
	installSignalHandler(canceler)

	ctx := context.Background()
	opts := corpus.LoadOptions{
		Sampling:  *sampling,
		Mask:      *mask,
		CSVDelim:  delim,
		Threads:   *threads,
		InMemory:  *inMem,
		Preload:   *preload,
		CacheSize: *cacheSize,
		BinPath:   "corpus.bin",
	}

	log.Info("[START] Initializing Miner...")
	loadPhase := cli.StartPhase("Loading corpus")
	c, err := loadCorpus(ctx, inputPath, info, opts)
	loadPhase.Stop()
	if err != nil {
		log.Fatalf("failed to load corpus: %v", err)
		os.Exit(1)
	}
	_ = memLimit // advisory only, no hard enforcement

	if *algo == "prefixspan" && !*inMem {
		log.Info("[MODE] Running in On-Disk mode. PrefixSpan will trigger full load.")
		if err := c.LoadAll(); err != nil {
			log.Fatalf("failed to load corpus.bin for PrefixSpan: %v", err)
			os.Exit(1)
		}
	}

	log.Infof("[START] Beginning mining (min_docs=%d, ngrams=%d, algo=%s)...", *minDocs, *ngrams, *algo)
	minePhase := cli.StartPhase("Mining")
	start := time.Now()
	var phrases []miner.Phrase
	switch *algo {
	case "greedy":
		phrases, err = miner.RunGreedy(c, *minDocs, *ngrams, canceler)
	case "prefixspan":
		phrases, err = miner.RunPrefixSpan(c, *minDocs, *ngrams, miningMode, canceler)
		writer.SortBySupportThenLength(phrases)
	default:
		fmt.Fprintf(os.Stderr, "[ERROR] unknown --algo %q (want greedy or prefixspan)\n", *algo)
		os.Exit(1)
	}
	minePhase.Stop()
	if err != nil {
		log.Fatalf("mining failed: %v", err)
		os.Exit(1)
	}
	elapsed := time.Since(start)

	writePhase := cli.StartPhase("Saving results")
	outFile, err := os.Create(*out)
	if err != nil {
		log.Fatalf("failed to create output file %s: %v", *out, err)
		os.Exit(1)
	}
	defer outFile.Close()
	if err := writer.Write(outFile, phrases, c.Dict, c.FilePaths); err != nil {
		log.Fatalf("failed to write results: %v", err)
		os.Exit(1)
	}
	writePhase.Stop()

	cli.ReportSummary(len(phrases), *out, elapsed)
	log.Info("[DONE] Process finished successfully.")
}

// loadCorpus sniffs the input type from path: a regular file whose name
// contains ".csv" or lacks ".txt" is treated as CSV; a directory (or any
// other existing path) is walked.
func loadCorpus(ctx context.Context, path string, info os.FileInfo, opts corpus.LoadOptions) (*corpus.Corpus, error) {
	if !info.IsDir() {
		name := strings.ToLower(filepath.Base(path))
		if strings.Contains(name, ".csv") || !strings.Contains(name, ".txt") {
			return corpus.LoadCSV(ctx, path, opts)
		}
	}
	return corpus.LoadDirectory(ctx, path, opts)
}

// resolveCSVDelim recovers the escaped "\t"/"\n" delimiter spellings,
// since a shell can't easily pass a literal tab or newline as a flag
// argument.
func resolveCSVDelim(raw string) byte {
	switch raw {
	case "\\t":
		return '\t'
	case "\\n":
		return '\n'
	}
	if len(raw) > 0 {
		return raw[0]
	}
	return ','
}

func installSignalHandler(c *miner.Canceler) {
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigc
		fmt.Fprintln(os.Stderr, "\n[LOG] interrupt received, finishing current step and writing partial results...")
		c.Cancel()
	}()
}

func printVersion() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"}).
		Background(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#26233a"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	logger.SetStyles(styles)

	logger.Print("")
	logger.Print("[ corpusminer ] Mines frequent contiguous phrases from a text corpus")
	logger.Print("", "version", Version)
	logger.Print("")
	logger.Print("use -h or --help to see available options")
	logger.Print("Github Repo", "gh", gh)
}
