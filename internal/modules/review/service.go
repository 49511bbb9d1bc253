package review

import (
	"context"
	"strings"
	"time"

	"guesthouse/internal/domain"
	"guesthouse/internal/store"

	"go.uber.org/zap"
)

// ReviewFields is the review form as submitted.
type ReviewFields struct {
	Name     string
	Rating   int
	Comment  string
	Category string
}

type Service struct {
	tree store.Tree
	log  *zap.Logger
	now  func() time.Time
}

func NewService(tree store.Tree, log *zap.Logger) *Service {
	return &Service{tree: tree, log: log.Named("review"), now: time.Now}
}

// SubmitReview appends a review. The rating is stored exactly as given.
func (s *Service) SubmitReview(ctx context.Context, f ReviewFields) (*domain.Review, error) {
	name := strings.TrimSpace(f.Name)
	comment := strings.TrimSpace(f.Comment)

	var missing []string
	if name == "" {
		missing = append(missing, "name")
	}
	if comment == "" {
		missing = append(missing, "comment")
	}
	if len(missing) > 0 {
		return nil, &ValidationError{Missing: missing}
	}

	category := strings.TrimSpace(f.Category)
	if category == "" {
		category = domain.DefaultReviewCategory
	}

	now := s.now()
	r := domain.Review{
		Name:     name,
		Rating:   f.Rating,
		Comment:  comment,
		Category: category,
		Date:     now.Format("January 2006"),
	}

	id, err := s.tree.Push(ctx, store.Reviews, map[string]any{
		"name":      r.Name,
		"rating":    r.Rating,
		"comment":   r.Comment,
		"category":  r.Category,
		"date":      r.Date,
		"timestamp": now.UnixMilli(),
	})
	if err != nil {
		s.log.Error("review write failed", zap.Error(err))
		return nil, &RemoteWriteError{Err: err}
	}
	r.ID = id

	s.log.Info("review submitted", zap.String("review_id", id), zap.Int("rating", r.Rating), zap.String("category", r.Category))
	return &r, nil
}

// ListReviews reads the stored reviews once, in store order.
func (s *Service) ListReviews(ctx context.Context) ([]domain.Review, error) {
	snap, err := s.tree.List(ctx, store.Reviews)
	if err != nil {
		return nil, &RemoteReadError{Op: "list reviews", Err: err}
	}
	return decodeSnapshot(snap), nil
}

// SubscribeReviews delivers the stored reviews on every change.
func (s *Service) SubscribeReviews(ctx context.Context, fn func([]domain.Review, error)) (store.Subscription, error) {
	return s.tree.Watch(ctx, store.Reviews, func(snap store.Snapshot, err error) {
		if err != nil {
			fn(nil, &RemoteReadError{Op: "watch reviews", Err: err})
			return
		}
		fn(decodeSnapshot(snap), nil)
	})
}

func decodeSnapshot(snap store.Snapshot) []domain.Review {
	out := make([]domain.Review, 0, len(snap.Records))
	for _, rec := range snap.Records {
		out = append(out, toDomainReview(rec))
	}
	return out
}

func toDomainReview(rec store.Record) domain.Review {
	r := domain.Review{ID: rec.Key, Rating: 5, Category: domain.DefaultReviewCategory}
	r.Name, _ = rec.String("name")
	r.Comment, _ = rec.String("comment")
	r.Date, _ = rec.String("date")
	if v, ok := rec.Int64("rating"); ok {
		r.Rating = int(v)
	}
	if v, ok := rec.String("category"); ok && v != "" {
		r.Category = v
	}
	return r
}
