package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"path/filepath"

	"go-frontier/pkg/config"
	"go-frontier/pkg/resfile"
)

// loadManifest reads resfileindex.txt from the game directory
func loadManifest(gameDir string) (*resfile.Manifest, error) {
	if gameDir == "" {
		return nil, errors.New("no game directory given, set FRONTIER_GAME_DIR or pass -game")
	}
	return resfile.LoadManifest(filepath.Join(gameDir, "resfileindex.txt"))
}

func runIndex(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("index", flag.ExitOnError)
	gameDir := fs.String("game", config.GetEnv("FRONTIER_GAME_DIR", ""), "Game installation directory")
	filter := fs.String("filter", "", "Only entries whose logical path contains this term")
	prefix := fs.String("prefix", "", "Only entries whose logical path starts with this prefix")
	suffix := fs.String("suffix", "", "Only entries whose logical path ends with this suffix")
	limit := fs.Int("limit", 50, "Entries to print, 0 for all")
	if err := fs.Parse(args); err != nil {
		return err
	}

	manifest, err := loadManifest(*gameDir)
	if err != nil {
		return err
	}

	entries := manifest.Entries()
	switch {
	case *prefix != "":
		entries = manifest.FilterPrefix(*prefix)
	case *suffix != "":
		entries = manifest.FilterSuffix(*suffix)
	case *filter != "":
		entries = manifest.Find(*filter)
	}

	fmt.Printf("Resource index: %d entries, %d matched\n\n", manifest.Len(), len(entries))

	shown := 0
	for _, entry := range entries {
		if *limit > 0 && shown >= *limit {
			fmt.Printf("  ... and %d more\n", len(entries)-shown)
			break
		}
		fmt.Printf("  %s\n    -> %s (%d bytes at offset %d)\n",
			entry.LogicalPath, entry.StorePath, entry.Size, entry.Offset)
		shown++
	}

	return nil
}

func runLookup(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("lookup", flag.ExitOnError)
	gameDir := fs.String("game", config.GetEnv("FRONTIER_GAME_DIR", ""), "Game installation directory")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return errors.New("usage: lookup [-game DIR] <res-path>")
	}
	logicalPath := fs.Arg(0)

	manifest, err := loadManifest(*gameDir)
	if err != nil {
		return err
	}

	entry, ok := manifest.Lookup(logicalPath)
	if !ok {
		return fmt.Errorf("resource %s not in index", logicalPath)
	}

	fmt.Printf("Logical path: %s\n", entry.LogicalPath)
	fmt.Printf("Store path:   %s\n", entry.StorePath)
	fmt.Printf("Hash:         %s\n", entry.FileHash)
	fmt.Printf("Offset:       %d\n", entry.Offset)
	fmt.Printf("Size:         %d bytes\n", entry.Size)

	store := resfile.NewStore(resfile.DefaultRoots(*gameDir)...)
	payloadPath, err := store.Locate(entry)
	if err != nil {
		fmt.Printf("Payload:      not present in any store root\n")
		return nil
	}
	fmt.Printf("Payload:      %s\n", payloadPath)

	return nil
}
