package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"go-frontier/pkg/logging"
	"go-frontier/pkg/version"

	"github.com/joho/godotenv"
)

func main() {
	if len(os.Args) < 2 {
		showHelp()
		os.Exit(1)
	}

	// .env is optional for CLI use
	_ = godotenv.Load()

	ctx := context.Background()

	telemetry := logging.NewTelemetryManager()
	if err := telemetry.Initialize(ctx); err != nil {
		log.Printf("Warning: Failed to initialize telemetry: %v", err)
	}
	defer telemetry.Shutdown(ctx)

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "index", "idx":
		err = runIndex(ctx, args)
	case "lookup":
		err = runLookup(ctx, args)
	case "extract", "x":
		err = runExtract(ctx, args)
	case "convert":
		err = runConvert(ctx, args)
	case "search", "s":
		err = runSearch(ctx, args)
	case "deps", "d":
		err = runDeps(ctx, args)
	case "chain":
		err = runChain(ctx, args)
	case "categories", "cats":
		err = runCategories(ctx, args)
	case "list", "l":
		err = runList(ctx, args)
	case "export", "e":
		err = runExport(ctx, args)
	case "export-category", "ec":
		err = runExportCategory(ctx, args)
	case "export-blueprints", "eb":
		err = runExportBlueprints(ctx, args)
	case "version", "v", "--version":
		fmt.Println(version.GetBuildInfo())
	case "help", "h", "--help", "-h":
		showHelp()
	default:
		fmt.Printf("Error: unknown command '%s'\n", command)
		showHelp()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
}

func showHelp() {
	fmt.Println("Go Frontier Extraction Tool")
	fmt.Println("")
	fmt.Println("Usage: extract <command> [options]")
	fmt.Println("")
	fmt.Println("Resource store commands:")
	fmt.Println("  index, idx             Print resource index entries (-filter, -prefix, -limit)")
	fmt.Println("  lookup <res-path>      Resolve one logical path to its payload file")
	fmt.Println("  extract, x             Run the extraction pipeline into the output dir")
	fmt.Println("  convert <file>         Decode a .static database or re-shape a blueprints JSON")
	fmt.Println("")
	fmt.Println("Query commands (read the extracted data dir):")
	fmt.Println("  search, s <query>      Search types and ships by name")
	fmt.Println("  deps, d <typeID>       Show the dependency closure for a type")
	fmt.Println("  chain <typeID>         Show the full manufacturing chain")
	fmt.Println("  categories, cats       Show category counts")
	fmt.Println("  list, l <category>     List the members of a category")
	fmt.Println("")
	fmt.Println("Export commands:")
	fmt.Println("  export, e <ids...>     Export selected type ids with dependencies")
	fmt.Println("  export-category <cat>  Export one whole category")
	fmt.Println("  export-blueprints      Export every blueprint with referenced types")
	fmt.Println("")
	fmt.Println("Other commands:")
	fmt.Println("  version, v             Show build information")
	fmt.Println("  help, h                Show this help message")
	fmt.Println("")
	fmt.Println("Examples:")
	fmt.Println("  extract index -game \"C:/frontier/stillness\" -filter blueprints")
	fmt.Println("  extract extract -game \"C:/frontier/stillness\" -out extracted_data")
	fmt.Println("  extract search \"TADES\"")
	fmt.Println("  extract deps 91101")
	fmt.Println("  extract export 91101,91102 -o selected.json")
	fmt.Println("  extract export-category ships")
}
