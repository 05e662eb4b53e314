package gallery

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Seed is the static configuration a catalog is built from.
type Seed struct {
	Filters  []string `yaml:"filters"`
	Projects []Item   `yaml:"projects"`
}

// ParseSeed decodes a YAML seed document. Unknown keys are rejected.
func ParseSeed(data []byte) (Seed, error) {
	var s Seed
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return Seed{}, fmt.Errorf("gallery: parse seed: %w", err)
	}
	return s, nil
}

// LoadSeedFile reads and decodes a seed file.
func LoadSeedFile(path string) (Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Seed{}, fmt.Errorf("gallery: read seed %s: %w", path, err)
	}
	return ParseSeed(data)
}

// Build constructs the catalog and option set. When the seed lists no
// filters the catalog's own categories are offered.
func (s Seed) Build() (*Catalog, Options, error) {
	c, err := NewCatalog(s.Projects)
	if err != nil {
		return nil, Options{}, err
	}
	if len(s.Filters) == 0 {
		return c, NewOptions(c.Categories()...), nil
	}
	return c, NewOptions(s.Filters...), nil
}

// DefaultSeed is the built-in project list used when no seed file is configured.
func DefaultSeed() Seed {
	return Seed{
		Filters: []string{AllFilter, "residential", "commercial", "hospitality"},
		Projects: []Item{
			{ID: 1, Title: "Modern Minimalist Villa", Category: "residential", Location: "Jubilee Hills", Area: "4500 sq.ft", Year: "2024", ImageRef: "https://images.unsplash.com/photo-1600210492493-0946911123ea"},
			{ID: 2, Title: "Luxury 3BHK Apartment", Category: "residential", Location: "Gachibowli", Area: "1800 sq.ft", Year: "2024", ImageRef: "https://images.unsplash.com/photo-1600585154340-be6161a56a0c"},
			{ID: 3, Title: "Tech Startup Office", Category: "commercial", Location: "HITEC City", Area: "5000 sq.ft", Year: "2024", ImageRef: "https://images.unsplash.com/photo-1497366216548-37526070297c"},
			{ID: 4, Title: "Boutique Hotel Lobby", Category: "hospitality", Location: "Banjara Hills", Area: "3000 sq.ft", Year: "2023", ImageRef: "https://images.unsplash.com/photo-1618221195710-dd6b41faaea6"},
			{ID: 5, Title: "Contemporary 2BHK", Category: "residential", Location: "Kondapur", Area: "1200 sq.ft", Year: "2024", ImageRef: "https://images.unsplash.com/photo-1616486338812-3dadae4b4ace"},
			{ID: 6, Title: "Corporate Headquarters", Category: "commercial", Location: "Financial District", Area: "15000 sq.ft", Year: "2023", ImageRef: "https://images.unsplash.com/photo-1600607687939-ce8a6c25118c"},
			{ID: 7, Title: "Scandinavian 1BHK", Category: "residential", Location: "Madhapur", Area: "650 sq.ft", Year: "2024", ImageRef: "https://images.unsplash.com/photo-1600585154526-990dced4db0d"},
			{ID: 8, Title: "Fine Dining Restaurant", Category: "hospitality", Location: "Jubilee Hills", Area: "2500 sq.ft", Year: "2023", ImageRef: "https://images.unsplash.com/photo-1600566753086-00f18fb6b3ea"},
			{ID: 9, Title: "Premium Penthouse", Category: "residential", Location: "Film Nagar", Area: "3500 sq.ft", Year: "2024", ImageRef: "https://images.unsplash.com/photo-1600121848594-d8644e57abab"},
		},
	}
}
