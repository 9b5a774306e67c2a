package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go-frontier/internal/extractor/dto"
	"go-frontier/internal/extractor/models"
	"go-frontier/internal/extractor/services"
	"go-frontier/pkg/config"
	"go-frontier/pkg/dataset"
)

func runExtract(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("extract", flag.ExitOnError)
	gameDir := fs.String("game", config.GetEnv("FRONTIER_GAME_DIR", ""), "Game installation directory")
	outDir := fs.String("out", config.GetEnv("FRONTIER_OUTPUT_DIR", "extracted_data"), "Directory extracted JSON files are written to")
	prefixes := fs.String("prefix", "", "Comma-separated res:/ prefixes to walk, defaults to res:/staticdata/")
	if err := fs.Parse(args); err != nil {
		return err
	}

	req := &dto.StartRunRequest{
		GameDir:   *gameDir,
		OutputDir: *outDir,
	}
	if *prefixes != "" {
		for _, p := range strings.Split(*prefixes, ",") {
			if p = strings.TrimSpace(p); p != "" {
				req.Prefixes = append(req.Prefixes, p)
			}
		}
	}

	// No Mongo or Redis for the CLI, run history stays in memory
	svc := services.NewService(nil, nil)

	run, err := svc.RunSync(ctx, req)
	if err != nil {
		return err
	}

	fmt.Printf("\nExtraction run %s: %s\n", run.ID, run.Status)
	fmt.Printf("  Extracted: %d\n", run.Extracted)
	fmt.Printf("  Skipped:   %d (binary FSD payloads)\n", run.Skipped)
	fmt.Printf("  Failed:    %d\n", run.Failed)

	for _, file := range run.Files {
		if file.Outcome == models.OutcomeFailed {
			fmt.Printf("  ❌ %s: %s\n", file.LogicalPath, file.Detail)
		}
	}

	if run.Status == models.StatusFailed {
		return fmt.Errorf("extraction failed: %s", run.Error)
	}

	fmt.Printf("\n✅ Output written to %s\n", run.OutputDir)
	return nil
}

func runConvert(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("convert", flag.ExitOnError)
	output := fs.String("o", "", "Output file, defaults to the input name with a .json extension")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return errors.New("usage: convert [-o FILE] <file.static|blueprints.json>")
	}
	input := fs.Arg(0)

	outFile := *output
	if outFile == "" {
		base := filepath.Base(input)
		outFile = strings.TrimSuffix(base, filepath.Ext(base)) + ".json"
	}

	data, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", input, err)
	}

	var payload any
	if services.IsSQLite(data) {
		tables, err := services.DecodeStaticDB(input)
		if err != nil {
			return fmt.Errorf("failed to decode %s: %w", input, err)
		}
		payload = tables
		fmt.Printf("Decoded SQLite database with %d table(s)\n", len(tables))
	} else {
		blueprints, shape, err := dataset.ParseBlueprints(data)
		if err != nil {
			return fmt.Errorf("failed to parse %s: %w", input, err)
		}
		payload = blueprints
		fmt.Printf("Re-shaped %q blueprints payload: %d blueprints\n", shape, len(blueprints))
	}

	encoded, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	if err := os.WriteFile(outFile, encoded, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outFile, err)
	}

	fmt.Printf("✅ Written to %s\n", outFile)
	return nil
}
