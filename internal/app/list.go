package app

import (
	"context"
	"strings"

	"github.com/dagimg/prdesk/internal/domain"
	"github.com/samber/lo"
)

// PageSize is the fixed client-side page size of the request list.
const PageSize = 10

// ListController owns the purchase-request list: one full fetch, then
// client-side search, type filtering, and pagination. Changing the search
// term or type filter deliberately leaves the current page alone, matching
// the shipped behavior.
type ListController struct {
	svc RequestService

	requests   []domain.PurchaseRequest
	search     string
	typeFilter string
	page       int
}

// NewListController creates a controller; call Load before reading from it.
func NewListController(svc RequestService) *ListController {
	return &ListController{svc: svc, page: 1}
}

// Load fetches the full collection from the server.
func (l *ListController) Load(ctx context.Context) error {
	requests, err := l.svc.ListRequests(ctx)
	if err != nil {
		return err
	}
	l.requests = requests
	return nil
}

// Requests returns the unfiltered collection.
func (l *ListController) Requests() []domain.PurchaseRequest {
	return l.requests
}

// SetSearch updates the search term. The current page is not reset.
func (l *ListController) SetSearch(term string) {
	l.search = term
}

// Search returns the active search term.
func (l *ListController) Search() string {
	return l.search
}

// SetTypeFilter updates the purchase-type filter; empty means all types.
// The current page is not reset.
func (l *ListController) SetTypeFilter(purchaseType string) {
	l.typeFilter = purchaseType
}

// TypeFilter returns the active purchase-type filter.
func (l *ListController) TypeFilter() string {
	return l.typeFilter
}

// TypeOptions derives the filter options from the loaded collection: the
// distinct purchase types present, in first-seen order.
func (l *ListController) TypeOptions() []string {
	return lo.Uniq(lo.Map(l.requests, func(r domain.PurchaseRequest, _ int) string {
		return r.PurchaseType
	}))
}

// Filtered returns the requests matching the active search and type filter.
// A request matches the search when its title or initiator name contains the
// term case-insensitively.
func (l *ListController) Filtered() []domain.PurchaseRequest {
	term := strings.ToLower(l.search)
	return lo.Filter(l.requests, func(r domain.PurchaseRequest, _ int) bool {
		matchesSearch := term == "" ||
			strings.Contains(strings.ToLower(r.Title), term) ||
			strings.Contains(strings.ToLower(r.InitiatorName), term)
		matchesType := l.typeFilter == "" || r.PurchaseType == l.typeFilter
		return matchesSearch && matchesType
	})
}

// PageCount returns ceil(filtered/PageSize); zero when nothing matches.
func (l *ListController) PageCount() int {
	return (len(l.Filtered()) + PageSize - 1) / PageSize
}

// CurrentPage returns the 1-based current page number.
func (l *ListController) CurrentPage() int {
	return l.page
}

// SetPage jumps to page k, clamped to [1, max(PageCount, 1)].
func (l *ListController) SetPage(k int) {
	max := l.PageCount()
	if max < 1 {
		max = 1
	}
	if k < 1 {
		k = 1
	}
	if k > max {
		k = max
	}
	l.page = k
}

// NextPage advances one page, clamped to the last page.
func (l *ListController) NextPage() {
	l.SetPage(l.page + 1)
}

// PrevPage goes back one page, clamped to the first page.
func (l *ListController) PrevPage() {
	l.SetPage(l.page - 1)
}

// Page returns the filtered slice for the current page. A page beyond the
// filtered range yields an empty slice.
func (l *ListController) Page() []domain.PurchaseRequest {
	filtered := l.Filtered()
	start := (l.page - 1) * PageSize
	if start >= len(filtered) {
		return nil
	}
	end := start + PageSize
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[start:end]
}

// ViewDetails fetches one full record, items included. List state is not
// touched.
func (l *ListController) ViewDetails(ctx context.Context, id int) (*domain.PurchaseRequest, error) {
	return l.svc.GetRequest(ctx, id)
}

// Delete removes a request, then reloads the whole view from scratch:
// filters and page reset and the collection is re-fetched, mirroring the
// full-reload-after-mutation behavior of the source system.
func (l *ListController) Delete(ctx context.Context, id int) error {
	if err := l.svc.DeleteRequest(ctx, id); err != nil {
		return err
	}
	l.search = ""
	l.typeFilter = ""
	l.page = 1
	return l.Load(ctx)
}
