package models

import "time"

// Material is the closed set of things the smart bin accepts.
type Material string

const (
	MaterialPlastic     Material = "plastic"
	MaterialPaper       Material = "paper"
	MaterialGlass       Material = "glass"
	MaterialMetal       Material = "metal"
	MaterialElectronics Material = "electronics"
)

// ValidMaterial reports whether m is one of the five accepted materials.
func ValidMaterial(m Material) bool {
	switch m {
	case MaterialPlastic, MaterialPaper, MaterialGlass, MaterialMetal, MaterialElectronics:
		return true
	}
	return false
}

// RecyclingRecord is append-only; once written it is never edited.
type RecyclingRecord struct {
	RecordID  string    `json:"recordId" bson:"recordId"`
	UserID    string    `json:"userId" bson:"userId"`
	Material  Material  `json:"material" bson:"material"`
	Weight    float64   `json:"weight" bson:"weight"` // kg
	Points    int       `json:"points" bson:"points"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
}

// Reward is a static catalog entry redeemable for eco-points.
type Reward struct {
	RewardID       string  `json:"rewardId" bson:"rewardId"`
	Name           string  `json:"name" bson:"name"`
	Description    string  `json:"description,omitempty" bson:"description,omitempty"`
	PointsCost     int     `json:"pointsCost" bson:"pointsCost"`
	Sustainability float64 `json:"sustainability" bson:"sustainability"`
	Value          string  `json:"value,omitempty" bson:"value,omitempty"`
}

// Redemption is the outcome of a successful redeem: the reward, the
// one-time code and the balance left after the debit.
type Redemption struct {
	Reward     Reward    `json:"reward" bson:"reward"`
	RedeemCode string    `json:"redeemCode" bson:"redeemCode"`
	NewBalance int       `json:"newBalance" bson:"newBalance"`
	RedeemedAt time.Time `json:"redeemedAt" bson:"redeemedAt"`
}

// LedgerEntry is one audit line for a credit or debit.
type LedgerEntry struct {
	Delta     int       `json:"delta" bson:"delta"` // positive credit, negative debit
	Balance   int       `json:"balance" bson:"balance"`
	Reason    string    `json:"reason" bson:"reason"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
}

// CommunityImpact is the aggregate dashboard block.
type CommunityImpact struct {
	TotalRecycled   map[Material]float64 `json:"totalRecycled" bson:"totalRecycled"` // kg per material
	TreesEquivalent int                  `json:"treesEquivalent" bson:"treesEquivalent"`
	CO2Saved        float64              `json:"co2Saved" bson:"co2Saved"` // kg
	TopCommunities  []CommunityScore     `json:"topCommunities" bson:"topCommunities"`
}

type CommunityScore struct {
	Name   string `json:"name" bson:"name"`
	Points int    `json:"points" bson:"points"`
}
