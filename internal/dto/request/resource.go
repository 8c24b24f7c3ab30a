package request

type CreateResourceRequest struct {
	Type     string   `json:"type" validate:"required,oneof=article link emergency"`
	Title    string   `json:"title" validate:"required,max=200"`
	Category string   `json:"category" validate:"required,max=100"`
	Content  string   `json:"content"`
	URL      *string  `json:"url,omitempty" validate:"omitempty,url"`
	Tags     []string `json:"tags" validate:"max=20,dive,max=50"`
	Publish  bool     `json:"publish"`
}

type UpdateResourceRequest struct {
	Type     string   `json:"type" validate:"required,oneof=article link emergency"`
	Title    string   `json:"title" validate:"required,max=200"`
	Category string   `json:"category" validate:"required,max=100"`
	Content  string   `json:"content"`
	URL      *string  `json:"url,omitempty" validate:"omitempty,url"`
	Tags     []string `json:"tags" validate:"max=20,dive,max=50"`
	Publish  bool     `json:"publish"`
}
