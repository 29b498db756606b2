package model

// defaultItems is the bundled dataset installed when nothing is stored yet.
var defaultItems = []Item{
	{ID: 1, Title: "Learn React Native", Completed: false},
	{ID: 2, Title: "Learn Next.js", Completed: false},
	{ID: 3, Title: "Build a Todo App", Completed: false},
	{ID: 4, Title: "Read a book", Completed: true},
	{ID: 5, Title: "Go for a walk", Completed: false},
	{ID: 6, Title: "Do the dishes", Completed: false},
	{ID: 7, Title: "Play with the cat", Completed: false},
	{ID: 8, Title: "Call mom", Completed: false},
	{ID: 9, Title: "Buy groceries", Completed: true},
	{ID: 10, Title: "Clean the house", Completed: false},
}

// Defaults returns a fresh copy of the bundled dataset in declaration order.
func Defaults() []Item {
	out := make([]Item, len(defaultItems))
	copy(out, defaultItems)
	return out
}
