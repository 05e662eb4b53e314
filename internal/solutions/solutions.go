// Package solutions describes the interior solutions grid shown on the home
// page and loads the inline icon art for each entry.
package solutions

import (
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"casamanduva.com/web/internal/motion"
)

// Solution is one tile of the grid.
type Solution struct {
	Key   string
	Title string
	Icon  template.HTML
	Delay time.Duration
}

type definition struct {
	key   string
	title string
}

var definitions = []definition{
	{"modular-kitchen", "Modular Kitchen"},
	{"storage-wardrobe", "Storage and Wardrobe"},
	{"crockery-units", "Crockery Units"},
	{"space-saving-furniture", "Space Saving Furniture"},
	{"tv-units", "TV Units"},
	{"study-tables", "Study Tables"},
	{"false-ceiling", "False Ceiling"},
	{"lights", "Lights"},
	{"wallpaper", "Wallpaper"},
	{"wall-paint", "Wall Paint"},
	{"bathroom", "Bathroom"},
	{"pooja-unit", "Pooja Unit"},
	{"foyer-designs", "Foyer Designs"},
	{"movable-furniture", "Movable Furniture"},
	{"kids-bedroom", "Kids Bedroom"},
}

// Keys lists the solution keys in display order.
func Keys() []string {
	out := make([]string, len(definitions))
	for i, d := range definitions {
		out[i] = d.key
	}
	return out
}

// Load builds the grid, reading <iconDir>/<key>.svg for each solution. A
// missing icon leaves Icon empty; a malformed one is an error. An empty
// iconDir skips icon loading.
func Load(iconDir string) ([]Solution, error) {
	out := make([]Solution, 0, len(definitions))
	for i, d := range definitions {
		s := Solution{Key: d.key, Title: d.title, Delay: motion.SolutionsGrid.Delay(i)}
		if iconDir != "" {
			icon, err := loadIcon(filepath.Join(iconDir, d.key+".svg"))
			if err != nil {
				return nil, fmt.Errorf("solutions: icon %s: %w", d.key, err)
			}
			s.Icon = icon
		}
		out = append(out, s)
	}
	return out, nil
}

func loadIcon(path string) (template.HTML, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", err
	}
	defer f.Close()
	return SanitizeSVG(f)
}
