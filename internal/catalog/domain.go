package catalog

import (
	"math"
	"time"
)

// Category groups products for browsing. CategoryAll is a wildcard that
// matches every product when filtering.
type Category string

const (
	CategoryAll        Category = "All"
	CategoryHeavy      Category = "Heavy Materials"
	CategoryTools      Category = "Tools & Hardware"
	CategoryElectrical Category = "Electrical"
	CategoryPlumbing   Category = "Plumbing"
	CategoryFinishing  Category = "Finishing & Paint"
)

// Categories lists every category in display order, wildcard first.
func Categories() []Category {
	return []Category{
		CategoryAll,
		CategoryHeavy,
		CategoryTools,
		CategoryElectrical,
		CategoryPlumbing,
		CategoryFinishing,
	}
}

type Review struct {
	ID       string    `json:"id"`
	UserName string    `json:"user_name"`
	Rating   int       `json:"rating"` // 1-5
	Comment  string    `json:"comment"`
	Date     time.Time `json:"date"`
}

type Product struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Price       int64    `json:"price"`
	Category    Category `json:"category"`
	Unit        string   `json:"unit"` // e.g. "50kg Bag", "Piece"
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Rating      float64  `json:"rating"` // average of review ratings, 0-5
	Reviews     []Review `json:"reviews"`
}

// ProductExcerpt carries the reduced product fields sent to the AI
// collaborator as catalog context.
type ProductExcerpt struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Price    int64    `json:"price"`
	Unit     string   `json:"unit"`
	Category Category `json:"category"`
}

// averageRating folds over the reviews and rounds to one decimal.
func averageRating(reviews []Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	avg := float64(sum) / float64(len(reviews))
	return math.Round(avg*10) / 10
}
