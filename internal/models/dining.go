// internal/models/dining.go
package models

// DiningRequest is the queue message body produced by the dispatcher and consumed once by
// the recommendation worker. Field names are the wire names.
type DiningRequest struct {
	Location   string `json:"Location"`
	Cuisine    string `json:"Cuisine"`
	DiningTime string `json:"DiningTime"`
	NumPeople  string `json:"NumPeople"`
	Email      string `json:"Email"`
	UserID     string `json:"userId"`
}

// UserState holds the last recommendation delivered to a user.
type UserState struct {
	UserID               string `json:"userId" dynamodbav:"userId"`
	RecentRecommendation string `json:"recentRecommendation" dynamodbav:"recentRecommendation"`
}

// RestaurantRecord is one row of the collected restaurant dataset. JSON names follow the
// dataset columns.
type RestaurantRecord struct {
	BusinessID          string  `json:"BusinessID" dynamodbav:"BusinessID" db:"business_id"`
	Name                string  `json:"Name" dynamodbav:"Name" db:"name"`
	Cuisine             string  `json:"Cuisine" dynamodbav:"Cuisine" db:"cuisine"`
	Address             string  `json:"Address" dynamodbav:"Address" db:"address"`
	Rating              float64 `json:"Rating" dynamodbav:"Rating" db:"rating"`
	Reviews             int     `json:"Reviews" dynamodbav:"Reviews" db:"reviews"`
	City                string  `json:"City" dynamodbav:"City" db:"city"`
	ZipCode             string  `json:"Zip Code" dynamodbav:"Zip Code" db:"zip_code"`
	InsertedAtTimestamp string  `json:"InsertedAtTimestamp" dynamodbav:"InsertedAtTimestamp" db:"inserted_at"`
}

// SearchDocument is the slim record indexed for cuisine matching.
type SearchDocument struct {
	BusinessID string `json:"BusinessID"`
	Cuisine    string `json:"Cuisine"`
}
