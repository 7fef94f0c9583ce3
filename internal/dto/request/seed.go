package request

// SeedBook is one entry of the seed data file.
type SeedBook struct {
	Title  string `json:"title" validate:"required,max=255"`
	Author string `json:"author" validate:"required,max=255"`
	Genre  string `json:"genre" validate:"max=50"`
}
