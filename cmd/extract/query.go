package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strconv"
	"strings"

	industry "go-frontier/internal/industry/services"
	"go-frontier/pkg/config"
	"go-frontier/pkg/dataset"
)

// openEngine builds the query engine over the extracted data directory.
// Loading is lazy and missing files degrade to empty mappings, so this
// only fails when the dataset is present but unreadable.
func openEngine(ctx context.Context, dataDir string) (*industry.Engine, error) {
	ds := dataset.NewService(dataDir)
	engine := industry.NewEngine(ds)
	if err := engine.Rebuild(ctx); err != nil {
		return nil, fmt.Errorf("failed to build engine over %s: %w", dataDir, err)
	}
	return engine, nil
}

// dataDirFlag registers the shared -data flag on a command's flag set
func dataDirFlag(fs *flag.FlagSet) *string {
	return fs.String("data", config.GetEnv("FRONTIER_DATA_DIR", "extracted_data"), "Extracted data directory")
}

// parseTypeID converts one positional argument to a type id
func parseTypeID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid typeID %q", arg)
	}
	return id, nil
}

func runSearch(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	dataDir := dataDirFlag(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return errors.New("usage: search [-data DIR] <query>")
	}
	query := strings.Join(fs.Args(), " ")

	engine, err := openEngine(ctx, *dataDir)
	if err != nil {
		return err
	}

	hits, err := engine.Search(query)
	if err != nil {
		return err
	}

	fmt.Printf("\nSearch results for %q: %d\n", query, len(hits))
	for _, hit := range hits {
		fmt.Printf("  %6d: %s [%s]\n", hit.TypeID, hit.TypeName, hit.Source)
	}
	return nil
}

func runDeps(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("deps", flag.ExitOnError)
	dataDir := dataDirFlag(fs)
	depth := fs.Int("depth", industry.DefaultMaxDepth, "Maximum recursion depth")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return errors.New("usage: deps [-data DIR] [-depth N] <typeID>")
	}
	typeID, err := parseTypeID(fs.Arg(0))
	if err != nil {
		return err
	}

	engine, err := openEngine(ctx, *dataDir)
	if err != nil {
		return err
	}

	deps, err := engine.Dependencies(typeID, *depth)
	if err != nil {
		return err
	}

	fmt.Printf("\nDependencies for %s (ID: %d):\n", deps.TypeName, deps.TypeID)
	fmt.Printf("Total: %d types needed\n\n", deps.Count)
	for _, t := range deps.Types {
		fmt.Printf("  %6d: %s\n", t.TypeID, t.TypeName)
	}
	return nil
}

func runChain(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("chain", flag.ExitOnError)
	dataDir := dataDirFlag(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return errors.New("usage: chain [-data DIR] <typeID>")
	}
	typeID, err := parseTypeID(fs.Arg(0))
	if err != nil {
		return err
	}

	engine, err := openEngine(ctx, *dataDir)
	if err != nil {
		return err
	}

	chain, err := engine.FullChain(typeID)
	if err != nil {
		return err
	}

	fmt.Printf("\nManufacturing chain for %s:\n", chain.TargetName)
	for i, level := range chain.Levels {
		if i == 0 {
			fmt.Println("\nTARGET:")
		} else {
			fmt.Printf("\nLEVEL %d (materials):\n", i)
		}
		for _, entry := range level {
			fmt.Printf("  %s %6d: %s\n", craftMark(entry.Craftable), entry.TypeID, entry.TypeName)
		}
	}
	return nil
}

// craftMark returns the marker the chain and list views use for
// craftable versus raw types
func craftMark(craftable bool) string {
	if craftable {
		return "📦"
	}
	return "⛏️"
}

func runCategories(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("categories", flag.ExitOnError)
	dataDir := dataDirFlag(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	engine, err := openEngine(ctx, *dataDir)
	if err != nil {
		return err
	}

	counts, err := engine.CategoryCounts()
	if err != nil {
		return err
	}

	total := 0
	fmt.Println("\nCategories:")
	for _, cat := range industry.AllCategories() {
		fmt.Printf("  %-12s %d types\n", cat, counts[cat])
		total += counts[cat]
	}
	fmt.Printf("  %-12s %d types\n", "total", total)
	return nil
}

func runList(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	dataDir := dataDirFlag(fs)
	limit := fs.Int("limit", 0, "Rows to print, 0 for all")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("usage: list [-data DIR] <category>, one of: %s", categoryNames())
	}

	category, err := industry.ParseCategory(fs.Arg(0))
	if err != nil {
		return err
	}

	engine, err := openEngine(ctx, *dataDir)
	if err != nil {
		return err
	}

	items, err := engine.ListCategory(category)
	if err != nil {
		return err
	}

	fmt.Printf("\n%s (%d items):\n", strings.ToUpper(string(category)), len(items))
	for i, item := range items {
		if *limit > 0 && i >= *limit {
			fmt.Printf("  ... and %d more\n", len(items)-i)
			break
		}
		fmt.Printf("  %6d: %s\n", item.TypeID, item.TypeName)
	}
	return nil
}

// categoryNames joins every valid category for usage messages
func categoryNames() string {
	cats := industry.AllCategories()
	names := make([]string, len(cats))
	for i, c := range cats {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}
