package domain

import "time"

// Post is a published entry. Published is nullable: drafts have no publish
// date, which is what makes the nulls-last ordering default observable.
type Post struct {
	ID                   string
	Title                string
	Publisher            string
	Published            *time.Time
	PublisherEstablished *time.Time
	Created              time.Time
	Modified             time.Time
}
