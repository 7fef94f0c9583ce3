package entity

// Review is unique per (BookID, Username).
type Review struct {
	BaseTimestamps
	BookID   int64  `db:"book_id"`
	Username string `db:"username"`
	Rating   int    `db:"rating"` // 1-5
	Text     string `db:"text"`
}
