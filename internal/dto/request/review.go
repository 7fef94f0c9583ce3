package request

type ReviewRequest struct {
	Rating int     `json:"rating" validate:"required,min=1,max=5"`
	Text   *string `json:"text,omitempty"`
}

// TextOrEmpty returns the review text, "" when omitted.
func (r *ReviewRequest) TextOrEmpty() string {
	if r.Text == nil {
		return ""
	}
	return *r.Text
}
