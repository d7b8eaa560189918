// Pizzarec - Pizza Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pizzarec

package api

import (
	"context"
	"errors"
	"io"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/pizzarec/internal/database"
	"github.com/tomtom215/pizzarec/internal/orders"
	"github.com/tomtom215/pizzarec/internal/recommend"
)

func testMenu() []recommend.MenuItem {
	return []recommend.MenuItem{
		{Name: "Margherita", Ingredients: "tomato mozzarella basil", Category: "classic", Diet: "veg"},
		{Name: "Diavola", Ingredients: "tomato mozzarella salami chili", Category: "spicy", Diet: "meat", Spicy: true},
		{Name: "Funghi", Ingredients: "tomato mozzarella mushroom", Category: "classic", Diet: "veg"},
		{Name: "Prosciutto", Ingredients: "tomato mozzarella ham", Category: "classic", Diet: "meat"},
		{Name: "Four Cheese", Ingredients: "mozzarella gorgonzola parmesan fontina", Category: "white", Diet: "veg"},
	}
}

// fakeStore implements recommend.CatalogStore.
type fakeStore struct {
	mu        sync.Mutex
	menu      []recommend.MenuItem
	orders    []recommend.OrderLineItem
	menuErr   error
	ordersErr error

	loadStarted chan struct{}
	loadRelease chan struct{}
}

func (f *fakeStore) LoadMenu(ctx context.Context) ([]recommend.MenuItem, error) {
	if f.loadStarted != nil {
		select {
		case f.loadStarted <- struct{}{}:
		default:
		}
	}
	if f.loadRelease != nil {
		select {
		case <-f.loadRelease:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.menuErr != nil {
		return nil, f.menuErr
	}
	return f.menu, nil
}

func (f *fakeStore) FetchOrderLineItems(_ context.Context, userID *string) ([]recommend.OrderLineItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ordersErr != nil {
		return nil, f.ordersErr
	}
	if userID == nil {
		return f.orders, nil
	}
	var out []recommend.OrderLineItem
	for _, item := range f.orders {
		if item.UserID == *userID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (f *fakeStore) setOrdersErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ordersErr = err
}

type fakeDB struct {
	pingErr error
	counts  *database.Counts
}

func (f *fakeDB) Ping(context.Context) error {
	return f.pingErr
}

func (f *fakeDB) GetCounts(context.Context) (*database.Counts, error) {
	if f.counts == nil {
		return nil, errors.New("no counts")
	}
	return f.counts, nil
}

type submitCall struct {
	userID string
	items  []orders.Item
	key    string
}

// fakeSubmitter implements OrderSubmitter. Keys seen before are reported as
// duplicates of the first reference.
type fakeSubmitter struct {
	mu    sync.Mutex
	calls []submitCall
	refs  map[string]string
	err   error
}

func (f *fakeSubmitter) Submit(_ context.Context, userID string, items []orders.Item, key string) (orders.Submission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return orders.Submission{}, f.err
	}
	if ref, ok := f.refs[key]; ok && key != "" {
		return orders.Submission{OrderRef: ref, Duplicate: true}, nil
	}
	f.calls = append(f.calls, submitCall{userID: userID, items: items, key: key})
	ref := "ref-" + userID
	if f.refs == nil {
		f.refs = make(map[string]string)
	}
	f.refs[key] = ref
	return orders.Submission{OrderRef: ref}, nil
}

func (f *fakeSubmitter) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type fakeBreaker struct{}

func (fakeBreaker) Name() string  { return "catalog-store" }
func (fakeBreaker) State() string { return "closed" }

type testServer struct {
	handler   http.Handler
	engine    *recommend.Engine
	store     *fakeStore
	db        *fakeDB
	submitter *fakeSubmitter
}

// newTestServer builds an engine over store and returns the full router.
// The index is built unless build is false.
func newTestServer(t *testing.T, store *fakeStore, build bool) *testServer {
	t.Helper()

	cfg := recommend.DefaultConfig()
	cfg.Timeouts.Build = 5 * time.Second
	engine, err := recommend.NewEngine(cfg, store, zerolog.Nop(), recommend.WithRand(rand.New(rand.NewSource(1))))
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	if build {
		if err := engine.Build(context.Background()); err != nil {
			t.Fatalf("Build() error = %v", err)
		}
	}

	db := &fakeDB{counts: &database.Counts{MenuItems: int64(len(store.menu))}}
	submitter := &fakeSubmitter{}
	h, err := NewHandler(Deps{
		Engine:  engine,
		Store:   store,
		DB:      db,
		Orders:  submitter,
		Breaker: fakeBreaker{},
	})
	if err != nil {
		t.Fatalf("NewHandler() error = %v", err)
	}

	mw := NewChiMiddleware(&ChiMiddlewareConfig{RateLimitDisabled: true})
	return &testServer{
		handler:   NewRouter(h, mw).SetupChi(),
		engine:    engine,
		store:     store,
		db:        db,
		submitter: submitter,
	}
}

func (s *testServer) do(t *testing.T, method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decodeNames(t *testing.T, rec *httptest.ResponseRecorder) []string {
	t.Helper()
	var names []string
	if err := json.Unmarshal(rec.Body.Bytes(), &names); err != nil {
		t.Fatalf("decode names %q: %v", rec.Body.String(), err)
	}
	return names
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error %q: %v", rec.Body.String(), err)
	}
	return body.Error
}

func orderLine(orderID int64, userID, pizza string, ts time.Time) recommend.OrderLineItem {
	return recommend.OrderLineItem{
		OrderID:   orderID,
		UserID:    userID,
		PizzaName: pizza,
		Quantity:  1,
		Timestamp: ts,
	}
}
