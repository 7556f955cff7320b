package models

// User struct
type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Guild struct
type Guild struct {
	ID string `json:"id"`
}
