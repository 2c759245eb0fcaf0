package usecase

import (
	"context"
	"testing"
	"time"

	"venue-booking/internal/data/entity"
	"venue-booking/internal/data/repository"
	"venue-booking/internal/data/repository/memstore"
	"venue-booking/internal/events"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type bookingFixture struct {
	repo     *repository.Repository
	service  BookingService
	customer *entity.Customer
	pkg      *entity.Package
	cake     *entity.AddOn
	balloons *entity.AddOn
}

func newBookingFixture(t *testing.T, publisher events.Publisher) *bookingFixture {
	t.Helper()

	log := zap.NewNop()
	repo := memstore.NewRepository(memstore.NewStore(log))
	ctx := context.Background()
	now := time.Now().UTC()

	f := &bookingFixture{
		repo: repo,
		customer: &entity.Customer{
			Base:        entity.Base{ID: "c1", CreatedAt: now, UpdatedAt: now},
			FullName:    "Ada Lovelace",
			Email:       "ada@example.com",
			PhoneNumber: "555-0100",
		},
		pkg: &entity.Package{
			Base:        entity.Base{ID: "p1", CreatedAt: now, UpdatedAt: now},
			Name:        "Standard",
			Description: "Two hours in the main hall",
			Price:       100,
		},
		cake: &entity.AddOn{
			Base:     entity.Base{ID: "a1", CreatedAt: now, UpdatedAt: now},
			Name:     "Cake",
			Price:    20,
			Category: entity.AddOnCategoryFood,
		},
		balloons: &entity.AddOn{
			Base:     entity.Base{ID: "a2", CreatedAt: now.Add(time.Millisecond), UpdatedAt: now},
			Name:     "Balloons",
			Price:    15,
			Category: entity.AddOnCategoryDecoration,
		},
	}

	require.NoError(t, repo.Customer.Create(ctx, f.customer))
	require.NoError(t, repo.Package.Create(ctx, f.pkg))
	require.NoError(t, repo.AddOn.Create(ctx, f.cake))
	require.NoError(t, repo.AddOn.Create(ctx, f.balloons))

	availability := NewAvailabilityService(repo, log)
	validator := NewBookingValidator(repo, nil, log)
	f.service = NewBookingService(repo, validator, availability, publisher, time.Second, log)
	return f
}

func tomorrow() string {
	return time.Now().UTC().AddDate(0, 0, 1).Format("2006-01-02")
}

func strPtr(s string) *string {
	return &s
}

type recordingPublisher struct {
	published []*entity.Booking
	err       error
}

func (p *recordingPublisher) PublishBookingCreated(ctx context.Context, booking *entity.Booking) error {
	p.published = append(p.published, booking)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }
