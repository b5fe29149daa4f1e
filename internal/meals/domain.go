package meals

import "time"

// Record logs one meal taken by a member.
type Record struct {
	ID        string    `json:"id"`
	MemberID  string    `json:"memberId"`
	MealType  string    `json:"mealType"`
	Date      time.Time `json:"date"`
	CreatedAt time.Time `json:"createdAt"`
}
