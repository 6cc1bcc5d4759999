package models

type ReviewRecord struct {
	Author  string `json:"author"`
	Content string `json:"content"`
	Rating  int    `json:"rating"`
}

// ReviewSubmission is the body of POST /{media_type}/{id}/review.
type ReviewSubmission struct {
	ReviewText string `json:"review_text" validate:"required"`
	Rating     int    `json:"rating" validate:"required,min=1,max=5"`
}

type ReviewResult struct {
	Message string       `json:"message,omitempty"`
	Review  ReviewRecord `json:"review"`
	Error   string       `json:"error,omitempty"`
}
