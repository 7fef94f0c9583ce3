package response

import (
	"book-catalog/internal/data/entity"
)

type BookResponse struct {
	ID            int64   `json:"id"`
	Title         string  `json:"title"`
	Author        string  `json:"author"`
	Genre         string  `json:"genre"`
	AverageRating float64 `json:"average_rating"`
}

// Helper converter
func BookToResponse(book *entity.Book, averageRating float64) BookResponse {
	return BookResponse{
		ID:            book.ID,
		Title:         book.Title,
		Author:        book.Author,
		Genre:         book.Genre,
		AverageRating: averageRating,
	}
}
