package models

import "time"

// DataRemovalRequest is a public request to delete a person's data.
type DataRemovalRequest struct {
	ID        string    `firestore:"id" json:"id"`
	Name      string    `firestore:"name" json:"name"`
	Email     string    `firestore:"email" json:"email"`
	Message   string    `firestore:"message" json:"message"`
	Status    string    `firestore:"status" json:"status"`
	CreatedAt time.Time `firestore:"created_at" json:"created_at"`
}
