package performance

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"hrportal/internal/domain/records"
)

// OverallRating is the mean category rating rounded half-up to one decimal.
// A review without categories rates 0.
func OverallRating(categories []Category) float64 {
	if len(categories) == 0 {
		return 0
	}
	sum := decimal.Zero
	for _, c := range categories {
		sum = sum.Add(decimal.NewFromInt(int64(c.Rating)))
	}
	mean := sum.Div(decimal.NewFromInt(int64(len(categories)))).Round(1)
	return mean.InexactFloat64()
}

func validateCategories(categories []Category) error {
	if len(categories) == 0 {
		return records.Invalid("categories", "at least one category is required")
	}
	seen := make(map[string]struct{}, len(categories))
	for i, c := range categories {
		name := strings.ToLower(strings.TrimSpace(c.Name))
		if name == "" {
			return records.Invalid(fmt.Sprintf("categories[%d].name", i), "is required")
		}
		if _, dup := seen[name]; dup {
			return records.Invalid(fmt.Sprintf("categories[%d].name", i), "is duplicated")
		}
		seen[name] = struct{}{}
		if c.Rating < MinRating || c.Rating > MaxRating {
			return records.Invalid(fmt.Sprintf("categories[%d].rating", i), fmt.Sprintf("must be between %d and %d", MinRating, MaxRating))
		}
	}
	return nil
}

func normalizeCategories(categories []Category) []Category {
	out := make([]Category, len(categories))
	for i, c := range categories {
		out[i] = Category{Name: strings.TrimSpace(c.Name), Rating: c.Rating, Comments: strings.TrimSpace(c.Comments)}
	}
	return out
}

func buildSummary(reviews []PerformanceReview) Summary {
	summary := Summary{RatingDistribution: map[string]int{}}
	total := decimal.Zero
	for _, r := range reviews {
		summary.ReviewsTotal++
		if r.Status() == StatusCompleted {
			summary.ReviewsCompleted++
		}
		rating := decimal.NewFromFloat(r.OverallRating)
		total = total.Add(rating)
		summary.RatingDistribution[rating.Round(0).String()]++
	}
	if summary.ReviewsTotal > 0 {
		count := decimal.NewFromInt(int64(summary.ReviewsTotal))
		summary.CompletionRate = decimal.NewFromInt(int64(summary.ReviewsCompleted)).Div(count).Round(2).InexactFloat64()
		summary.AverageRating = total.Div(count).Round(1).InexactFloat64()
	}
	return summary
}
