package main

import (
	"errors"
	"maps"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"casamanduva.com/web/internal/estimate"
	"casamanduva.com/web/internal/format"
	mw "casamanduva.com/web/internal/middleware"
	"casamanduva.com/web/internal/observability"
)

// EstimatorView is the render model for the estimate form and its result.
type EstimatorView struct {
	Values   map[string]string
	Errors   map[string]string
	BHK      []estimate.Option
	Packages []estimate.Option
	Rooms    []RoomOption

	Source  string
	Project string

	Submitted bool
	Reference string
	Budget    string

	CSRFToken string
}

// RoomOption is one checkbox of the rooms list.
type RoomOption struct {
	Value   string
	Label   string
	Checked bool
}

var estimatorRooms = []estimate.Option{
	{Value: "living", Label: "Living Room"},
	{Value: "kitchen", Label: "Kitchen"},
	{Value: "master-bedroom", Label: "Master Bedroom"},
	{Value: "kids-bedroom", Label: "Kids Bedroom"},
	{Value: "dining", Label: "Dining"},
	{Value: "pooja", Label: "Pooja Room"},
	{Value: "study", Label: "Study"},
}

func (a *app) buildEstimatorView(r *http.Request, form url.Values) EstimatorView {
	v := EstimatorView{
		Values:    map[string]string{},
		Errors:    map[string]string{},
		BHK:       estimate.BHKOptions(),
		Packages:  estimate.PackageOptions(),
		CSRFToken: mw.CSRFToken(r),
	}
	for _, k := range []string{"name", "phone", "email", "location", "area", "bhkType", "packageType"} {
		v.Values[k] = strings.TrimSpace(form.Get(k))
	}
	checked := map[string]bool{}
	for _, raw := range form["selectedRooms"] {
		for _, room := range strings.Split(raw, ",") {
			checked[strings.TrimSpace(room)] = true
		}
	}
	for _, o := range estimatorRooms {
		v.Rooms = append(v.Rooms, RoomOption{Value: o.Value, Label: o.Label, Checked: checked[o.Value]})
	}

	v.Source = strings.TrimSpace(form.Get("source"))
	if id, err := strconv.Atoi(form.Get("project")); err == nil {
		if it, ok := a.catalog.Lookup(id); ok {
			v.Project = it.Title
			if v.Values["location"] == "" {
				v.Values["location"] = it.Location
			}
		}
	}
	return v
}

// EstimatorHandler renders the estimate form, prefilled when arriving from a
// portfolio project.
func (a *app) EstimatorHandler(w http.ResponseWriter, r *http.Request) {
	ev := a.buildEstimatorView(r, r.URL.Query())
	a.renderEstimator(w, r, http.StatusOK, ev)
}

// EstimatorSubmitHandler validates and records an estimate request.
func (a *app) EstimatorSubmitHandler(w http.ResponseWriter, r *http.Request) {
	logger := observability.FromContext(r.Context())
	if err := r.ParseForm(); err != nil {
		mw.WriteError(w, r, http.StatusBadRequest, "invalid form")
		return
	}
	ev := a.buildEstimatorView(r, r.PostForm)
	enquiry, err := estimate.Parse(r.PostForm, a.now())
	if err != nil {
		var verr *estimate.ValidationError
		if !errors.As(err, &verr) {
			a.serverError(w, r, "estimate parse error", err)
			return
		}
		ev.Errors = verr.Fields
		a.metrics.Enquiry("invalid")
		logger.Info("estimate request rejected", zap.Strings("fields", slices.Sorted(maps.Keys(verr.Fields))))
		a.renderEstimator(w, r, http.StatusUnprocessableEntity, ev)
		return
	}

	a.metrics.Enquiry("accepted")
	logger.Info("estimate request received", enquiry.Field())

	ev.Submitted = true
	ev.Reference = enquiry.Reference
	ev.Budget = format.FmtINR(enquiry.IndicativeBudget())
	mw.Trigger(w, "estimate-submitted")
	a.renderEstimator(w, r, http.StatusOK, ev)
}

func (a *app) renderEstimator(w http.ResponseWriter, r *http.Request, code int, ev EstimatorView) {
	if mw.IsHTMX(r.Context()) {
		a.renderTemplateStatus(w, r, code, "frag_estimator_form", ev)
		return
	}
	vm := a.basePage(r, "estimator.title")
	vm.SEO.Description = a.i18nOrDefault(vm.Lang, "estimator.subtitle")
	if r.Method != http.MethodGet {
		vm.SEO.Robots = "noindex"
	}
	vm.Estimator = ev
	a.finishSEO(&vm)
	a.renderPageStatus(w, r, code, "estimator", vm)
}
