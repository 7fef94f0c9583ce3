package entity

type Book struct {
	Base
	Title  string `db:"title"`
	Author string `db:"author"`
	Genre  string `db:"genre"`
}
