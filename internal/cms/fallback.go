package cms

import "time"

// builtin pages keep the site usable when the content directory is missing.
var builtin = map[string]Page{
	"pages|contact": {
		Kind:    "pages",
		Slug:    "contact",
		Lang:    "en",
		Title:   "Contact Us",
		Summary: "Visit our studio or tell us about your space.",
		Body: `Our design studio is in **Hyderabad**. Drop by for a walkthrough of material
samples, or send us the details of your home and we will call you back within a day.

- Studio hours: Monday to Saturday, 10am to 7pm
- Site visits across Hyderabad and Secunderabad

Planning a full home? [Request an estimate](/estimator) and we will share an indicative budget.`,
		UpdatedAt: time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC),
	},
}

func builtinPage(kind, slug string) (Page, bool) {
	page, ok := builtin[kind+"|"+slug]
	if !ok {
		return Page{}, false
	}
	page = clonePage(page)
	html, err := Render(page.Body)
	if err != nil {
		return Page{}, false
	}
	page.HTML = html
	return page, true
}
