// Package seo models page metadata and schema.org JSON-LD payloads.
package seo

type OpenGraph struct {
	Title       string
	Description string
	Image       string
	Type        string
	URL         string
	SiteName    string
}

type Twitter struct {
	Card  string
	Site  string
	Image string
}

// Alternate is a hreflang link.
type Alternate struct {
	Lang string
	Href string
}

type Meta struct {
	Title       string
	Description string
	Keywords    string
	Canonical   string
	Robots      string
	OG          OpenGraph
	Twitter     Twitter
	Alternates  []Alternate
	JSONLD      []string
}

// Complete fills Open Graph and Twitter fields that were left empty from the
// base title, description and canonical URL.
func (m Meta) Complete(siteName string) Meta {
	if m.OG.Title == "" {
		m.OG.Title = m.Title
	}
	if m.OG.Description == "" {
		m.OG.Description = m.Description
	}
	if m.OG.Type == "" {
		m.OG.Type = "website"
	}
	if m.OG.URL == "" {
		m.OG.URL = m.Canonical
	}
	if m.OG.SiteName == "" {
		m.OG.SiteName = siteName
	}
	if m.Twitter.Card == "" {
		m.Twitter.Card = "summary_large_image"
	}
	if m.Twitter.Image == "" {
		m.Twitter.Image = m.OG.Image
	}
	return m
}

// AddJSONLD appends a marshalled payload, skipping values that fail to encode.
func (m *Meta) AddJSONLD(v any) {
	if s := JSON(v); s != "" {
		m.JSONLD = append(m.JSONLD, s)
	}
}
