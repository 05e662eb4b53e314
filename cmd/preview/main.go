// Command preview browses the portfolio catalog in the terminal.
package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"casamanduva.com/web/internal/gallery"
	"casamanduva.com/web/internal/preview"
)

func main() {
	catalogFile := flag.String("catalog", os.Getenv("CASA_WEB_CATALOG_FILE"), "catalog seed YAML (defaults to the built-in projects)")
	flag.Parse()

	if err := run(*catalogFile); err != nil {
		fmt.Fprintln(os.Stderr, "preview:", err)
		os.Exit(1)
	}
}

func run(catalogFile string) error {
	seed := gallery.DefaultSeed()
	if catalogFile != "" {
		s, err := gallery.LoadSeedFile(catalogFile)
		if err != nil {
			return err
		}
		seed = s
	}
	catalog, opts, err := seed.Build()
	if err != nil {
		return err
	}

	final, err := tea.NewProgram(preview.New(catalog, opts), tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}
	if m, ok := final.(preview.Model); ok {
		if dest, ok := m.Navigator().Last(); ok {
			fmt.Printf("next stop: %s\n", dest)
		}
	}
	return nil
}
