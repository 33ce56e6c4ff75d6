package rating

import (
	"context"
	"errors"
	"testing"
	"watchwise/domain"
)

type fakeRatingRepo struct {
	saved   []domain.Rating
	reviews []*domain.Review
}

func (f *fakeRatingRepo) UpsertRating(ctx context.Context, r domain.Rating, review *domain.Review) error {
	f.saved = append(f.saved, r)
	f.reviews = append(f.reviews, review)
	return nil
}

func (f *fakeRatingRepo) FindByUser(ctx context.Context, userID string) ([]domain.Rating, error) {
	return f.saved, nil
}

type contentSet map[string]bool

func (c contentSet) FindByIDs(ctx context.Context, ids []string) ([]domain.ContentRecord, error) {
	var out []domain.ContentRecord
	for _, id := range ids {
		if c[id] {
			out = append(out, domain.ContentRecord{ID: id})
		}
	}
	return out, nil
}

func TestRateContentBounds(t *testing.T) {
	svc := NewRatingService(&fakeRatingRepo{}, contentSet{"m1": true})

	for _, v := range []int{0, 6, -1} {
		err := svc.RateContent(context.Background(), "u1", "m1", v, "")
		if !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("value %d: err = %v, want ErrInvalidInput", v, err)
		}
	}
}

func TestRateContentUnknownContent(t *testing.T) {
	svc := NewRatingService(&fakeRatingRepo{}, contentSet{})

	err := svc.RateContent(context.Background(), "u1", "m1", 4, "")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestRateContentReview(t *testing.T) {
	repo := &fakeRatingRepo{}
	svc := NewRatingService(repo, contentSet{"m1": true})

	if err := svc.RateContent(context.Background(), "u1", "m1", 5, "   "); err != nil {
		t.Fatalf("RateContent: %v", err)
	}
	if err := svc.RateContent(context.Background(), "u1", "m1", 4, " loved it "); err != nil {
		t.Fatalf("RateContent: %v", err)
	}

	if repo.reviews[0] != nil {
		t.Fatal("blank review should not be written")
	}
	if repo.reviews[1] == nil || repo.reviews[1].ReviewText != "loved it" {
		t.Fatalf("review = %+v", repo.reviews[1])
	}

	got, err := svc.UserRatings(context.Background(), "u1")
	if err != nil {
		t.Fatalf("UserRatings: %v", err)
	}
	if got["m1"] != 4 {
		t.Fatalf("rating = %d, want last write 4", got["m1"])
	}
}
