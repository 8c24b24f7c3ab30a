package response

import (
	"time"

	"github.com/pellyjosh/psychiatrist-sub000/internal/data/entity"
)

type ResourceResponse struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Category    string    `json:"category"`
	Content     string    `json:"content,omitempty"`
	URL         *string   `json:"url,omitempty"`
	Tags        []string  `json:"tags"`
	IsPublished bool      `json:"is_published"`
	ViewCount   int64     `json:"view_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func ResourceToResponse(res *entity.Resource) ResourceResponse {
	return ResourceResponse{
		ID:          res.ID.String(),
		Type:        string(res.Type),
		Title:       res.Title,
		Category:    res.Category,
		Content:     res.Content,
		URL:         res.URL,
		Tags:        res.Tags,
		IsPublished: res.IsPublished,
		ViewCount:   res.ViewCount,
		CreatedAt:   res.CreatedAt,
		UpdatedAt:   res.UpdatedAt,
	}
}
