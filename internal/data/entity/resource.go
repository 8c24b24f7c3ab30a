package entity

import (
	"github.com/google/uuid"
)

type ResourceType string

const (
	ResourceTypeArticle   ResourceType = "article"
	ResourceTypeLink      ResourceType = "link"
	ResourceTypeEmergency ResourceType = "emergency"
)

// Resource is an educational content unit in the patient-facing library.
type Resource struct {
	Base
	Type        ResourceType `db:"type"`
	Title       string       `db:"title"`
	Category    string       `db:"category"`
	Content     string       `db:"content"`
	URL         *string      `db:"url"`
	Tags        []string     `db:"tags"` // ordered
	IsPublished bool         `db:"is_published"`
	ViewCount   int64        `db:"view_count"`
	CreatedBy   uuid.UUID    `db:"created_by"`
}
