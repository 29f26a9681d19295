package domain

// Category is the canonical product category vocabulary. Storefront filter
// forms may show a merchandised subset, but data always uses these values.
type Category string

const (
	CategoryProtein       Category = "protein"
	CategoryVitamins      Category = "vitamins"
	CategoryMinerals      Category = "minerals"
	CategoryAminoAcids    Category = "amino-acids"
	CategoryPreWorkout    Category = "pre-workout"
	CategoryPostWorkout   Category = "post-workout"
	CategoryWeightLoss    Category = "weight-loss"
	CategoryMuscleGain    Category = "muscle-gain"
	CategoryGeneralHealth Category = "general-health"
)

// Categories lists every valid category, in display order.
var Categories = []Category{
	CategoryProtein,
	CategoryVitamins,
	CategoryMinerals,
	CategoryAminoAcids,
	CategoryPreWorkout,
	CategoryPostWorkout,
	CategoryWeightLoss,
	CategoryMuscleGain,
	CategoryGeneralHealth,
}

func ValidCategory(s string) bool {
	for _, c := range Categories {
		if string(c) == s {
			return true
		}
	}
	return false
}

type Product struct {
	ID              string   `db:"id"`
	Name            string   `db:"name"`
	Description     string   `db:"description"`
	Price           float64  `db:"price"`
	Category        Category `db:"category"`
	Image           string   `db:"image"`
	IsBestSeller    bool     `db:"is_best_seller"`
	InStock         bool     `db:"in_stock"`
	Rating          float64  `db:"rating"` // 0..5
	ReviewCount     int      `db:"review_count"`
	Weight          string   `db:"weight"` // label, e.g. "2 lbs"
	Servings        int      `db:"servings"`
	IngredientsJSON string   `db:"ingredients_json"`
	BenefitsJSON    string   `db:"benefits_json"`
	CreatedAt       string   `db:"created_at"` // RFC3339
}

// ProductSortField selects the comparator key for product sorting.
type ProductSortField string

const (
	SortByPrice     ProductSortField = "price"
	SortByName      ProductSortField = "name"
	SortByRating    ProductSortField = "rating"
	SortByCreatedAt ProductSortField = "createdAt"
)

type SortDirection string

const (
	Asc  SortDirection = "asc"
	Desc SortDirection = "desc"
)

// ProductQuery holds transient filter/sort criteria. Nil pointer fields mean
// "no constraint". Never persisted.
type ProductQuery struct {
	Category     string
	MinPrice     *float64
	MaxPrice     *float64
	IsBestSeller *bool
	InStock      *bool
	Search       string
	SortField    ProductSortField
	SortDir      SortDirection
}
