package models

import "time"

// WishlistItem is one product parked for reflection. Two independent gates
// decide purchasability: the cooldown clock and the reflection
// questionnaire. AddedAt never changes after creation; CoolDownEnds may be
// moved within the allowed window.
type WishlistItem struct {
	UserID             string            `json:"userId,omitempty" bson:"userId"`
	ProductID          string            `json:"productId" bson:"productId"`
	AddedAt            time.Time         `json:"addedAt" bson:"addedAt"`
	CoolDownEnds       time.Time         `json:"coolDownEnds" bson:"coolDownEnds"`
	ReflectionAnswered bool              `json:"reflectionAnswered" bson:"reflectionAnswered"`
	ReflectionAnswers  map[string]string `json:"reflectionAnswers,omitempty" bson:"reflectionAnswers,omitempty"`
}

// ReflectionQuestion is one step of the mindful-purchase questionnaire.
type ReflectionQuestion struct {
	ID       string   `json:"id"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
}
