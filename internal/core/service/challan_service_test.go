package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/scholarspoint/coaching-admin/internal/core/domain"
	"github.com/scholarspoint/coaching-admin/internal/core/ports"
)

type stubChallanRepo struct {
	mu       sync.Mutex
	challans []*domain.Challan
	nextID   int
}

func (r *stubChallanRepo) Create(_ context.Context, c *domain.Challan) (*domain.Challan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	c.ID = "ch" + string(rune('0'+r.nextID))
	r.challans = append(r.challans, c)
	return c, nil
}

func (r *stubChallanRepo) FindByID(_ context.Context, id string) (*domain.Challan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.challans {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, domain.ErrChallanNotFound
}

func (r *stubChallanRepo) FindAll(_ context.Context, counsellorID string) ([]*domain.Challan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Challan
	for _, c := range r.challans {
		if counsellorID == "" || c.CounsellorID == counsellorID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *stubChallanRepo) MarkGiven(_ context.Context, id string) error {
	return r.mark(id, func(c *domain.Challan) { c.Given = true })
}

func (r *stubChallanRepo) MarkReceived(_ context.Context, id string) error {
	return r.mark(id, func(c *domain.Challan) { c.Received = true })
}

func (r *stubChallanRepo) mark(id string, apply func(*domain.Challan)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.challans {
		if c.ID == id {
			apply(c)
			return nil
		}
	}
	return domain.ErrChallanNotFound
}

func seedChallans(t *testing.T, repo *stubChallanRepo) {
	t.Helper()
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	fixtures := []*domain.Challan{
		{
			ChallanNumber: "CH-001", CounsellorID: "A", Centre: "Pune", CreatedAt: base,
			Items: []domain.ChallanItem{{Name: "Algebra", Category: domain.CategoryBook, Standard: "10th", Quantity: 3}},
		},
		{
			ChallanNumber: "CH-002", CounsellorID: "A", Centre: "Mumbai", CreatedAt: base.AddDate(0, 0, 1),
			Items: []domain.ChallanItem{{Name: "Admissions", Category: domain.CategoryPamphlet, Quantity: 5}},
		},
		{
			ChallanNumber: "CH-003", CounsellorID: "B", Centre: "Pune", CreatedAt: base.AddDate(0, 0, 2),
			Items: []domain.ChallanItem{{Name: "Geometry", Category: domain.CategoryBook, Standard: "12th", Quantity: 2}},
		},
	}
	for _, c := range fixtures {
		if _, err := repo.Create(context.Background(), c); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
}

func adminList() ports.ListInput {
	return ports.ListInput{Role: domain.RoleAdmin}
}

func TestChallanService_ListStats(t *testing.T) {
	repo := &stubChallanRepo{}
	seedChallans(t, repo)
	svc := NewChallanService(repo, zerolog.Nop())

	res, err := svc.List(context.Background(), adminList())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if res.Stats.Total != 3 {
		t.Fatalf("expected 3 challans, got %d", res.Stats.Total)
	}
	if res.Stats.CategoryQuantity["book"] != 5 || res.Stats.CategoryQuantity["pamphlet"] != 5 {
		t.Fatalf("unexpected category quantities %+v", res.Stats.CategoryQuantity)
	}
	if res.Stats.DistinctOwners != 2 {
		t.Fatalf("expected 2 distinct counsellors, got %d", res.Stats.DistinctOwners)
	}
}

func TestChallanService_ListScopesCounsellor(t *testing.T) {
	repo := &stubChallanRepo{}
	seedChallans(t, repo)
	svc := NewChallanService(repo, zerolog.Nop())

	res, err := svc.List(context.Background(), ports.ListInput{Role: domain.RoleCounsellor, CounsellorID: "A"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if res.Stats.Total != 2 {
		t.Fatalf("expected counsellor A to see 2 challans, got %d", res.Stats.Total)
	}
	for _, rec := range res.Page.Items {
		if rec.Owner != "A" {
			t.Fatalf("leaked record owned by %q", rec.Owner)
		}
	}
}

func TestChallanService_ListFilters(t *testing.T) {
	repo := &stubChallanRepo{}
	seedChallans(t, repo)
	svc := NewChallanService(repo, zerolog.Nop())

	input := adminList()
	input.Fields = map[string]string{"centre": "pune"}
	res, err := svc.List(context.Background(), input)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if res.Stats.Total != 2 {
		t.Fatalf("expected 2 matches for centre=pune, got %d", res.Stats.Total)
	}
}

func TestChallanService_MarkGivenRefetchesList(t *testing.T) {
	repo := &stubChallanRepo{}
	seedChallans(t, repo)
	svc := NewChallanService(repo, zerolog.Nop())

	res, err := svc.MarkGiven(context.Background(), "ch1", adminList())
	if err != nil {
		t.Fatalf("mark given: %v", err)
	}

	var status string
	for _, rec := range res.Page.Items {
		if rec.ID == "ch1" {
			status = rec.Fields["status"]
		}
	}
	if status != "given" {
		t.Fatalf("expected refetched list to show status given, got %q", status)
	}
}

func TestChallanService_MarkReceivedUnknownID(t *testing.T) {
	repo := &stubChallanRepo{}
	seedChallans(t, repo)
	svc := NewChallanService(repo, zerolog.Nop())

	if _, err := svc.MarkReceived(context.Background(), "nope", adminList()); !errors.Is(err, domain.ErrChallanNotFound) {
		t.Fatalf("expected ErrChallanNotFound, got %v", err)
	}
}

func TestChallanService_CreateNormalizesLegacyItems(t *testing.T) {
	repo := &stubChallanRepo{}
	svc := NewChallanService(repo, zerolog.Nop())

	created, err := svc.Create(context.Background(), ports.CreateChallanInput{
		CounsellorID: "A",
		Items: []domain.RawChallanItem{
			{Book: &domain.BookRef{Name: "Physics", Standard: "11th"}, Quantity: 4},
			{Name: "Flyers", Category: "leaflet", Quantity: 10},
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if got := created.Items[0]; got.Name != "Physics" || got.Category != domain.CategoryBook || got.Standard != "11th" {
		t.Fatalf("legacy item not normalized: %+v", got)
	}
	if got := created.Items[1]; got.Category != domain.CategoryOther {
		t.Fatalf("expected unknown category to fall back to other, got %+v", got)
	}
}

func TestChallanService_CreateGeneratesChallanNumber(t *testing.T) {
	repo := &stubChallanRepo{}
	svc := NewChallanService(repo, zerolog.Nop())

	created, err := svc.Create(context.Background(), ports.CreateChallanInput{CounsellorID: "A"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !strings.HasPrefix(created.ChallanNumber, "CH-") {
		t.Fatalf("expected generated challan number, got %q", created.ChallanNumber)
	}
}
