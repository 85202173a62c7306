package models

import "time"

// User is the account record. EcoPoints is the single authoritative
// balance; every mutation goes through the store so it can never go
// negative.
type User struct {
	UserID      string      `json:"userId" bson:"userId"`
	Name        string      `json:"name" bson:"name"`
	Email       string      `json:"email" bson:"email"`
	EcoPoints   int         `json:"ecoPoints" bson:"ecoPoints"`
	JoinDate    time.Time   `json:"joinDate" bson:"joinDate"`
	ImpactStats ImpactStats `json:"impactStats" bson:"impactStats"`
	Preferences Preferences `json:"preferences" bson:"preferences"`
}

// ImpactStats are the personal dashboard numbers.
type ImpactStats struct {
	CarbonSaved  float64 `json:"carbonSaved" bson:"carbonSaved"`   // kg CO2
	WasteReduced float64 `json:"wasteReduced" bson:"wasteReduced"` // kg
	MoneySaved   float64 `json:"moneySaved" bson:"moneySaved"`     // rupees
}

type Preferences struct {
	DefaultCooldownHours int                 `json:"defaultCooldownHours" bson:"defaultCooldownHours"`
	Notifications        NotificationPrefs   `json:"notifications" bson:"notifications"`
	SustainabilityGoals  SustainabilityGoals `json:"sustainabilityGoals" bson:"sustainabilityGoals"`
}

type NotificationPrefs struct {
	Email             bool `json:"email" bson:"email"`
	Push              bool `json:"push" bson:"push"`
	CooldownReminders bool `json:"cooldownReminders" bson:"cooldownReminders"`
}

type SustainabilityGoals struct {
	Monthly MonthlyGoals `json:"monthly" bson:"monthly"`
}

type MonthlyGoals struct {
	Recycling            int `json:"recycling" bson:"recycling"`
	SustainablePurchases int `json:"sustainablePurchases" bson:"sustainablePurchases"`
}

// UsageTracking records how much use a purchased product actually gets.
type UsageTracking struct {
	UserID      string    `json:"userId,omitempty" bson:"userId"`
	ProductID   string    `json:"productId" bson:"productId"`
	UsageCount  int       `json:"usageCount" bson:"usageCount"`
	StartDate   time.Time `json:"startDate" bson:"startDate"`
	LastUpdated time.Time `json:"lastUpdated" bson:"lastUpdated"`
}
