package handlers

import (
	"net/http"
	"strconv"

	"smartpay/backend/listview"
	"smartpay/backend/models"
	"smartpay/backend/services"
)

// viewQuery reads filters, sort and page from the query string. A saved filter named
// by ?filter= supplies defaults that explicit parameters override.
func (h *Handler) viewQuery(r *http.Request, id models.Identity, view listview.View) (services.ViewQuery, error) {
	query := r.URL.Query()
	q := services.ViewQuery{
		Filters: listview.Criteria{},
		Sort:    listview.SortSpec{Field: listview.FieldNone, Direction: listview.Asc},
		Page:    1,
	}

	if filterID := query.Get("filter"); filterID != "" {
		criteria, sort, err := h.filters.Apply(r.Context(), id, filterID)
		if err != nil {
			return q, err
		}
		q.Filters, q.Sort = criteria, sort
	}

	for _, f := range view.Filterable {
		if query.Has(string(f)) {
			q.Filters[f] = query.Get(string(f))
		}
	}
	if query.Has("sort") {
		q.Sort.Field = listview.ParseField(query.Get("sort"))
	}
	if query.Has("dir") {
		q.Sort.Direction = listview.ParseDirection(query.Get("dir"))
	}
	q.Sort = view.SortOrNone(q.Sort)
	q.Filters = view.Restrict(q.Filters)

	if page, err := strconv.Atoi(query.Get("page")); err == nil && page > 0 {
		q.Page = page
	}
	return q, nil
}
