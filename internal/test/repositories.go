package test

import (
	"cmp"
	"context"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	domainErrors "github.com/polkiloo/campusfood/internal/domain/errors"
	"github.com/polkiloo/campusfood/internal/domain/model"
	"github.com/polkiloo/campusfood/internal/domain/repository"
)

// MemoryStore is an in-memory implementation of every repository and the Transactor.
// Transactions are serialized and roll back by restoring a snapshot.
type MemoryStore struct {
	mu   sync.Mutex
	txMu sync.Mutex

	data memoryData

	// Fail makes the named operation ("Vendors.ApplySentiment", ...) return the error.
	Fail map[string]error
	// Now is used for timestamps; defaults to time.Now.
	Now func() time.Time

	Transactions int
}

type memoryData struct {
	nextID   int64
	students map[int64]model.Student
	vendors  map[int64]model.Vendor
	menu     map[int64]model.MenuItem
	orders   map[int64]model.Order
	reviews  map[int64]model.Review
	events   map[int64]memoryEvent
}

type memoryEvent struct {
	event     model.OrderEvent
	claimed   bool
	published bool
}

func (d memoryData) clone() memoryData {
	return memoryData{
		nextID:   d.nextID,
		students: maps.Clone(d.students),
		vendors:  maps.Clone(d.vendors),
		menu:     maps.Clone(d.menu),
		orders:   maps.Clone(d.orders),
		reviews:  maps.Clone(d.reviews),
		events:   maps.Clone(d.events),
	}
}

// NewMemoryStore constructs an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: memoryData{
			students: map[int64]model.Student{},
			vendors:  map[int64]model.Vendor{},
			menu:     map[int64]model.MenuItem{},
			orders:   map[int64]model.Order{},
			reviews:  map[int64]model.Review{},
			events:   map[int64]memoryEvent{},
		},
		Fail: map[string]error{},
	}
}

func (s *MemoryStore) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *MemoryStore) fail(op string) error {
	if s.Fail == nil {
		return nil
	}
	return s.Fail[op]
}

func (s *MemoryStore) id() int64 {
	s.data.nextID++
	return s.data.nextID
}

func (s *MemoryStore) Students() repository.StudentRepository { return memoryStudents{s} }
func (s *MemoryStore) Vendors() repository.VendorRepository   { return memoryVendors{s} }
func (s *MemoryStore) Menu() repository.MenuRepository         { return memoryMenu{s} }
func (s *MemoryStore) Orders() repository.OrderRepository      { return memoryOrders{s} }
func (s *MemoryStore) Reviews() repository.ReviewRepository    { return memoryReviews{s} }
func (s *MemoryStore) Events() repository.EventRepository      { return memoryEvents{s} }

// WithinTransaction runs fn and restores the previous state when it fails.
func (s *MemoryStore) WithinTransaction(ctx context.Context, fn func(repository.Factory) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	snapshot := s.data.clone()
	s.Transactions++
	s.mu.Unlock()

	if err := fn(s); err != nil {
		s.mu.Lock()
		s.data = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

// SeedVendor stores v and returns it with an assigned id.
func (s *MemoryStore) SeedVendor(v model.Vendor) model.Vendor {
	s.mu.Lock()
	defer s.mu.Unlock()
	v.ID = s.id()
	if v.CreatedAt.IsZero() {
		v.CreatedAt = s.now()
	}
	s.data.vendors[v.ID] = v
	return v
}

// SeedStudent stores st and returns it with an assigned id.
func (s *MemoryStore) SeedStudent(st model.Student) model.Student {
	s.mu.Lock()
	defer s.mu.Unlock()
	st.ID = s.id()
	s.data.students[st.ID] = st
	return st
}

// SeedMenuItem stores item and returns it with an assigned id.
func (s *MemoryStore) SeedMenuItem(item model.MenuItem) model.MenuItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	item.ID = s.id()
	s.data.menu[item.ID] = item
	return item
}

// SeedOrder stores o and returns it with an assigned id.
func (s *MemoryStore) SeedOrder(o model.Order) model.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	o.ID = s.id()
	if o.CreatedAt.IsZero() {
		o.CreatedAt = s.now()
	}
	s.data.orders[o.ID] = o
	return o
}

// Order returns the stored order.
func (s *MemoryStore) Order(id int64) (model.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.data.orders[id]
	return o, ok
}

// Vendor returns the stored vendor.
func (s *MemoryStore) Vendor(id int64) (model.Vendor, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data.vendors[id]
	return v, ok
}

// AllReviews returns stored reviews ordered by id.
func (s *MemoryStore) AllReviews() []model.Review {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedValues(s.data.reviews, func(r model.Review) int64 { return r.ID })
}

// AllEvents returns appended events ordered by id.
func (s *MemoryStore) AllEvents() []model.OrderEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.OrderEvent
	for _, e := range sortedValues(s.data.events, func(e memoryEvent) int64 { return e.event.ID }) {
		out = append(out, e.event)
	}
	return out
}

// Published reports whether the event was marked as published.
func (s *MemoryStore) Published(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.events[id].published
}

func sortedValues[T any](m map[int64]T, key func(T) int64) []T {
	out := slices.Collect(maps.Values(m))
	slices.SortFunc(out, func(a, b T) int { return cmp.Compare(key(a), key(b)) })
	return out
}

func window[T any](items []T, page model.Page) []T {
	start := page.Offset()
	if start >= len(items) {
		return nil
	}
	end := min(start+page.Limit, len(items))
	return items[start:end]
}

type memoryStudents struct{ s *MemoryStore }

func (r memoryStudents) Create(ctx context.Context, student *model.Student) (*model.Student, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("Students.Create"); err != nil {
		return nil, err
	}
	for _, existing := range r.s.data.students {
		if strings.EqualFold(existing.Email, student.Email) {
			return nil, domainErrors.ErrStudentExists
		}
	}
	created := *student
	created.ID = r.s.id()
	created.CreatedAt = r.s.now()
	r.s.data.students[created.ID] = created
	return &created, nil
}

func (r memoryStudents) GetByEmail(ctx context.Context, email string) (*model.Student, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, st := range r.s.data.students {
		if st.Email == email {
			return &st, nil
		}
	}
	return nil, domainErrors.ErrStudentNotFound
}

func (r memoryStudents) GetByID(ctx context.Context, id int64) (*model.Student, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	st, ok := r.s.data.students[id]
	if !ok {
		return nil, domainErrors.ErrStudentNotFound
	}
	return &st, nil
}

type memoryVendors struct{ s *MemoryStore }

func (r memoryVendors) Create(ctx context.Context, vendor *model.Vendor) (*model.Vendor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("Vendors.Create"); err != nil {
		return nil, err
	}
	for _, existing := range r.s.data.vendors {
		if strings.EqualFold(existing.Email, vendor.Email) {
			return nil, domainErrors.ErrVendorExists
		}
	}
	created := *vendor
	created.ID = r.s.id()
	created.ReviewSummary = model.ReviewSummary{}
	created.CreatedAt = r.s.now()
	r.s.data.vendors[created.ID] = created
	return &created, nil
}

func (r memoryVendors) GetByEmail(ctx context.Context, email string) (*model.Vendor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, v := range r.s.data.vendors {
		if v.Email == email {
			return &v, nil
		}
	}
	return nil, domainErrors.ErrVendorNotFound
}

func (r memoryVendors) GetByID(ctx context.Context, id int64) (*model.Vendor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.data.vendors[id]
	if !ok {
		return nil, domainErrors.ErrVendorNotFound
	}
	return &v, nil
}

func (r memoryVendors) List(ctx context.Context) ([]model.Vendor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("Vendors.List"); err != nil {
		return nil, err
	}
	return sortedValues(r.s.data.vendors, func(v model.Vendor) int64 { return v.ID }), nil
}

func (r memoryVendors) UpdateAvailability(ctx context.Context, vendorID int64, a model.Availability) (*model.Vendor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.data.vendors[vendorID]
	if !ok {
		return nil, domainErrors.ErrVendorNotFound
	}
	if a.IsOpen != nil {
		v.IsOpen = *a.IsOpen
	}
	if a.OpeningHours != nil {
		v.OpeningHours = *a.OpeningHours
	}
	if a.ClosingHours != nil {
		v.ClosingHours = *a.ClosingHours
	}
	r.s.data.vendors[vendorID] = v
	return &v, nil
}

func (r memoryVendors) ApplySentiment(ctx context.Context, vendorID int64, sentiment model.Sentiment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("Vendors.ApplySentiment"); err != nil {
		return err
	}
	v, ok := r.s.data.vendors[vendorID]
	if !ok {
		return domainErrors.ErrVendorNotFound
	}
	if !v.ReviewSummary.Apply(sentiment) {
		return domainErrors.Validation("unsupported sentiment " + string(sentiment))
	}
	r.s.data.vendors[vendorID] = v
	return nil
}

func (r memoryVendors) Stats(ctx context.Context, vendorID int64, since time.Time) (*model.VendorStats, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.data.vendors[vendorID]
	if !ok {
		return nil, domainErrors.ErrVendorNotFound
	}
	stats := model.VendorStats{ReviewSummary: v.ReviewSummary}
	for _, o := range r.s.data.orders {
		if o.VendorID != vendorID {
			continue
		}
		stats.TotalOrders++
		recent := !o.CreatedAt.Before(since)
		if recent {
			stats.RecentOrders++
		}
		switch o.Status {
		case model.OrderStatusPending:
			stats.PendingOrders++
		case model.OrderStatusRejected:
			stats.RejectedOrders++
		case model.OrderStatusCompleted:
			stats.CompletedOrders++
			stats.TotalIncome += o.TotalPrice
			if recent {
				stats.RecentIncome += o.TotalPrice
			}
		}
	}
	for _, m := range r.s.data.menu {
		if m.VendorID != vendorID {
			continue
		}
		stats.TotalMenuItems++
		if m.IsAvailable {
			stats.AvailableMenuItems++
		}
	}
	var sum, n int
	for _, rv := range r.s.data.reviews {
		if rv.VendorID == vendorID && rv.Sentiment.Determinate() {
			sum += rv.Rating
			n++
		}
	}
	if n > 0 {
		stats.AverageRating = float64(sum) / float64(n)
	}
	return &stats, nil
}

type memoryMenu struct{ s *MemoryStore }

func (r memoryMenu) Create(ctx context.Context, item *model.MenuItem) (*model.MenuItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	created := *item
	created.ID = r.s.id()
	created.CreatedAt = r.s.now()
	created.UpdatedAt = created.CreatedAt
	r.s.data.menu[created.ID] = created
	return &created, nil
}

func (r memoryMenu) Update(ctx context.Context, item *model.MenuItem) (*model.MenuItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.data.menu[item.ID]
	if !ok || existing.VendorID != item.VendorID {
		return nil, domainErrors.ErrMenuItemNotFound
	}
	updated := *item
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = r.s.now()
	r.s.data.menu[item.ID] = updated
	return &updated, nil
}

func (r memoryMenu) Delete(ctx context.Context, vendorID, itemID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.data.menu[itemID]
	if !ok || existing.VendorID != vendorID {
		return domainErrors.ErrMenuItemNotFound
	}
	delete(r.s.data.menu, itemID)
	return nil
}

func (r memoryMenu) GetByID(ctx context.Context, vendorID, itemID int64) (*model.MenuItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	item, ok := r.s.data.menu[itemID]
	if !ok || item.VendorID != vendorID {
		return nil, domainErrors.ErrMenuItemNotFound
	}
	return &item, nil
}

func (r memoryMenu) ListByVendor(ctx context.Context, vendorID int64, onlyAvailable bool) ([]model.MenuItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []model.MenuItem
	for _, item := range r.s.data.menu {
		if item.VendorID == vendorID && (!onlyAvailable || item.IsAvailable) {
			out = append(out, item)
		}
	}
	slices.SortFunc(out, func(a, b model.MenuItem) int {
		return cmp.Or(cmp.Compare(a.Category, b.Category), cmp.Compare(a.Name, b.Name), cmp.Compare(a.ID, b.ID))
	})
	return out, nil
}

func (r memoryMenu) FindByIDs(ctx context.Context, vendorID int64, ids []int64) ([]model.MenuItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []model.MenuItem
	seen := map[int64]bool{}
	for _, id := range ids {
		item, ok := r.s.data.menu[id]
		if ok && item.VendorID == vendorID && !seen[id] {
			seen[id] = true
			out = append(out, item)
		}
	}
	return out, nil
}

type memoryOrders struct{ s *MemoryStore }

func (r memoryOrders) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("Orders.Create"); err != nil {
		return nil, err
	}
	created := *order
	created.ID = r.s.id()
	created.CreatedAt = r.s.now()
	created.UpdatedAt = created.CreatedAt
	r.s.data.orders[created.ID] = created
	return &created, nil
}

func (r memoryOrders) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.data.orders[id]
	if !ok {
		return nil, domainErrors.ErrOrderNotFound
	}
	return &o, nil
}

func (r memoryOrders) list(match func(model.Order) bool, page model.Page) ([]model.Order, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var all []model.Order
	for _, o := range r.s.data.orders {
		if match(o) {
			all = append(all, o)
		}
	}
	slices.SortFunc(all, func(a, b model.Order) int {
		return cmp.Or(b.CreatedAt.Compare(a.CreatedAt), cmp.Compare(b.ID, a.ID))
	})
	return window(all, page), len(all), nil
}

func (r memoryOrders) ListByStudent(ctx context.Context, studentID int64, page model.Page) ([]model.Order, int, error) {
	return r.list(func(o model.Order) bool { return o.StudentID == studentID }, page)
}

func (r memoryOrders) ListByVendor(ctx context.Context, vendorID int64, page model.Page) ([]model.Order, int, error) {
	return r.list(func(o model.Order) bool { return o.VendorID == vendorID }, page)
}

func (r memoryOrders) UpdateStatus(ctx context.Context, change model.StatusChange) (*model.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("Orders.UpdateStatus"); err != nil {
		return nil, err
	}
	o, ok := r.s.data.orders[change.OrderID]
	if !ok || o.Status != change.From {
		return nil, domainErrors.ErrInvalidTransition
	}
	o.Status = change.To
	if change.TransactionID != "" {
		o.TransactionID = change.TransactionID
	}
	o.RejectionReason = change.RejectionReason
	o.UpdatedAt = r.s.now()
	r.s.data.orders[o.ID] = o
	return &o, nil
}

func (r memoryOrders) Delete(ctx context.Context, orderID int64, expected model.OrderStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.data.orders[orderID]
	if !ok || o.Status != expected {
		return domainErrors.ErrInvalidTransition
	}
	delete(r.s.data.orders, orderID)
	return nil
}

func (r memoryOrders) MarkReviewed(ctx context.Context, orderID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("Orders.MarkReviewed"); err != nil {
		return err
	}
	o, ok := r.s.data.orders[orderID]
	if !ok || o.IsReviewed || o.Status != model.OrderStatusCompleted {
		return domainErrors.ErrAlreadyReviewed
	}
	o.IsReviewed = true
	r.s.data.orders[orderID] = o
	return nil
}

type memoryReviews struct{ s *MemoryStore }

func (r memoryReviews) Create(ctx context.Context, review *model.Review) (*model.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("Reviews.Create"); err != nil {
		return nil, err
	}
	for _, existing := range r.s.data.reviews {
		if existing.OrderID == review.OrderID {
			return nil, domainErrors.ErrAlreadyReviewed
		}
	}
	created := *review
	if created.Sentiment == "" {
		created.Sentiment = model.SentimentPending
	}
	created.ID = r.s.id()
	created.CreatedAt = r.s.now()
	r.s.data.reviews[created.ID] = created
	return &created, nil
}

func (r memoryReviews) ExistsForOrder(ctx context.Context, orderID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.data.reviews {
		if existing.OrderID == orderID {
			return true, nil
		}
	}
	return false, nil
}

func (r memoryReviews) ListByVendor(ctx context.Context, vendorID int64, page model.Page) ([]model.Review, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var all []model.Review
	for _, rv := range r.s.data.reviews {
		if rv.VendorID != vendorID || !rv.Sentiment.Determinate() {
			continue
		}
		if st, ok := r.s.data.students[rv.StudentID]; ok {
			rv.StudentName = st.Name
		}
		all = append(all, rv)
	}
	slices.SortFunc(all, func(a, b model.Review) int {
		return cmp.Or(b.CreatedAt.Compare(a.CreatedAt), cmp.Compare(b.ID, a.ID))
	})
	return window(all, page), len(all), nil
}

type memoryEvents struct{ s *MemoryStore }

func (r memoryEvents) Append(ctx context.Context, event model.OrderEvent) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("Events.Append"); err != nil {
		return err
	}
	event.ID = r.s.id()
	r.s.data.events[event.ID] = memoryEvent{event: event}
	return nil
}

func (r memoryEvents) ClaimBatch(ctx context.Context, limit int) ([]model.OrderEvent, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("Events.ClaimBatch"); err != nil {
		return nil, err
	}
	var out []model.OrderEvent
	for _, e := range sortedValues(r.s.data.events, func(e memoryEvent) int64 { return e.event.ID }) {
		if len(out) >= limit {
			break
		}
		if e.claimed || e.published {
			continue
		}
		e.claimed = true
		r.s.data.events[e.event.ID] = e
		out = append(out, e.event)
	}
	return out, nil
}

func (r memoryEvents) MarkPublished(ctx context.Context, eventID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("Events.MarkPublished"); err != nil {
		return err
	}
	e, ok := r.s.data.events[eventID]
	if !ok {
		return domainErrors.New(domainErrors.ErrNotFound, "event not found")
	}
	e.published = true
	r.s.data.events[eventID] = e
	return nil
}

var (
	_ repository.Factory    = (*MemoryStore)(nil)
	_ repository.Transactor = (*MemoryStore)(nil)
)
