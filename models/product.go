package models

// Product is a catalog entry. Images are plain URLs; there is no upload
// pipeline behind them.
type Product struct {
	ProductID      string               `json:"productId" bson:"productId"`
	Name           string               `json:"name" bson:"name"`
	Price          float64              `json:"price" bson:"price"` // rupees
	Category       string               `json:"category" bson:"category"`
	Image          string               `json:"image,omitempty" bson:"image,omitempty"`
	Description    string               `json:"description,omitempty" bson:"description,omitempty"`
	Sustainability float64              `json:"sustainability" bson:"sustainability"` // 0–5 rating
	Alternatives   []ProductAlternative `json:"alternatives,omitempty" bson:"alternatives,omitempty"`
}

// ProductAlternative is a greener swap suggested on the product page.
type ProductAlternative struct {
	ProductID      string  `json:"productId" bson:"productId"`
	Name           string  `json:"name" bson:"name"`
	Price          float64 `json:"price" bson:"price"`
	Sustainability float64 `json:"sustainability" bson:"sustainability"`
	Image          string  `json:"image,omitempty" bson:"image,omitempty"`
	Comparison     string  `json:"comparison,omitempty" bson:"comparison,omitempty"`
}
