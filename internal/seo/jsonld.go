package seo

import (
	"encoding/json"
)

// JSON marshals v to a compact JSON string. It returns an empty string on error.
func JSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// Organization returns a minimal Organization schema.
func Organization(name, url, logoURL string) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "Organization",
		"name":     name,
	}
	if url != "" {
		m["url"] = url
	}
	if logoURL != "" {
		m["logo"] = logoURL
	}
	return m
}

// LocalBusiness describes the studio with its service area.
func LocalBusiness(name, url, city, region string, areas []string) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "HomeAndConstructionBusiness",
		"name":     name,
		"address": map[string]any{
			"@type":           "PostalAddress",
			"addressLocality": city,
			"addressRegion":   region,
			"addressCountry":  "IN",
		},
	}
	if url != "" {
		m["url"] = url
	}
	if len(areas) > 0 {
		served := make([]map[string]any, 0, len(areas))
		for _, a := range areas {
			served = append(served, map[string]any{"@type": "Place", "name": a})
		}
		m["areaServed"] = served
	}
	return m
}

// WebSite returns a minimal WebSite schema.
func WebSite(name, url string) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "WebSite",
		"name":     name,
	}
	if url != "" {
		m["url"] = url
	}
	return m
}

// BreadcrumbItem maps name and absolute item URL.
type BreadcrumbItem struct {
	Name string
	Item string
}

// BreadcrumbList builds schema.org BreadcrumbList.
func BreadcrumbList(items []BreadcrumbItem) map[string]any {
	el := make([]map[string]any, 0, len(items))
	for i, it := range items {
		el = append(el, map[string]any{
			"@type":    "ListItem",
			"position": i + 1,
			"name":     it.Name,
			"item":     it.Item,
		})
	}
	return map[string]any{
		"@context":        "https://schema.org",
		"@type":           "BreadcrumbList",
		"itemListElement": el,
	}
}

// Work is one entry of a CollectionPage.
type Work struct {
	Name        string
	Description string
	Image       string
}

// CreativeWork returns a CreativeWork node without @context, for nesting.
func CreativeWork(w Work) map[string]any {
	m := map[string]any{
		"@type": "CreativeWork",
		"name":  w.Name,
	}
	if w.Description != "" {
		m["description"] = w.Description
	}
	if w.Image != "" {
		m["image"] = w.Image
	}
	return m
}

// CollectionPage lists works as an ItemList main entity.
func CollectionPage(name, description string, works []Work) map[string]any {
	el := make([]map[string]any, 0, len(works))
	for i, w := range works {
		el = append(el, map[string]any{
			"@type":    "ListItem",
			"position": i + 1,
			"item":     CreativeWork(w),
		})
	}
	return map[string]any{
		"@context":    "https://schema.org",
		"@type":       "CollectionPage",
		"name":        name,
		"description": description,
		"mainEntity": map[string]any{
			"@type":           "ItemList",
			"itemListElement": el,
		},
	}
}
