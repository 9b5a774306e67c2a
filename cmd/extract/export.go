package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	industryDto "go-frontier/internal/industry/dto"
	industry "go-frontier/internal/industry/services"
	"go-frontier/pkg/dataset"
)

// writeJSON writes an indented payload and reports the file size
func writeJSON(path string, payload any) error {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode export: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	fmt.Printf("\n✅ Exported to %s (%.1f KB)\n", path, float64(len(data))/1024)
	return nil
}

func runExport(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	dataDir := dataDirFlag(fs)
	output := fs.String("o", "selected_types.json", "Output file")
	noDeps := fs.Bool("no-deps", false, "Export without dependency expansion")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return errors.New("usage: export [-data DIR] [-o FILE] [-no-deps] <typeID,typeID,...>")
	}

	var typeIDs []int
	for _, arg := range fs.Args() {
		for _, part := range strings.Split(arg, ",") {
			if part = strings.TrimSpace(part); part == "" {
				continue
			}
			id, err := parseTypeID(part)
			if err != nil {
				return err
			}
			typeIDs = append(typeIDs, id)
		}
	}
	if len(typeIDs) == 0 {
		return errors.New("no type ids given")
	}

	engine, err := openEngine(ctx, *dataDir)
	if err != nil {
		return err
	}

	export, err := engine.ExportSelection(typeIDs, !*noDeps)
	if err != nil {
		return err
	}

	fmt.Printf("Selected %d ids, %d with dependencies\n",
		export.Meta.SelectedCount, export.Meta.TotalWithDependencies)
	fmt.Printf("  Types:      %d\n", len(export.Types))
	fmt.Printf("  Ships:      %d\n", len(export.Ships))
	fmt.Printf("  Blueprints: %d\n", len(export.Blueprints))

	return writeJSON(*output, export)
}

func runExportCategory(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("export-category", flag.ExitOnError)
	dataDir := dataDirFlag(fs)
	output := fs.String("o", "", "Output file, defaults to <Category>.json")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("usage: export-category [-data DIR] [-o FILE] <category>, one of: %s", categoryNames())
	}

	category, err := industry.ParseCategory(fs.Arg(0))
	if err != nil {
		return err
	}

	outFile := *output
	if outFile == "" {
		outFile = categoryFileName(category)
	}

	engine, err := openEngine(ctx, *dataDir)
	if err != nil {
		return err
	}

	payload, err := engine.ExportCategory(category)
	if err != nil {
		return err
	}

	fmt.Printf("Category %s: %d entries\n", category, categorySize(payload))

	return writeJSON(outFile, payload)
}

// categoryFileName capitalizes a category for its export file, for
// example ships becomes Ships.json
func categoryFileName(category industry.Category) string {
	name := string(category)
	return strings.ToUpper(name[:1]) + name[1:] + ".json"
}

// categorySize counts the entries of a category-specific payload
func categorySize(payload any) int {
	switch v := payload.(type) {
	case map[int]*dataset.Blueprint:
		return len(v)
	case map[int]any:
		return len(v)
	case map[int]*industryDto.TypeExport:
		return len(v)
	default:
		return 0
	}
}

func runExportBlueprints(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("export-blueprints", flag.ExitOnError)
	dataDir := dataDirFlag(fs)
	output := fs.String("o", "all_blueprints.json", "Output file")
	noDeps := fs.Bool("no-deps", false, "Export without dependency expansion")
	if err := fs.Parse(args); err != nil {
		return err
	}

	engine, err := openEngine(ctx, *dataDir)
	if err != nil {
		return err
	}

	export, err := engine.ExportAllBlueprints(!*noDeps)
	if err != nil {
		return err
	}

	fmt.Printf("Blueprints: %d, referenced types: %d\n",
		export.Meta.BlueprintCount, export.Meta.TotalTypes)
	fmt.Printf("  Types: %d\n", len(export.Types))
	fmt.Printf("  Ships: %d\n", len(export.Ships))

	return writeJSON(*output, export)
}
