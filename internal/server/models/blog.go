package models

// AuthorRef is the immutable snapshot of the author captured when a blog is
// created. Ownership checks compare against this snapshot, never against the
// live user record.
type AuthorRef struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
}

// Blog is a post together with its embedded, ordered comment list. The list
// is rewritten whole on every comment mutation; concurrent mutations are
// last-write-wins.
type Blog struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Author      AuthorRef `json:"author"`
	MainContent string    `json:"mainContent"`
	CreatedDate string    `json:"createdDate"` // date only, YYYY-MM-DD
	Comments    []Comment `json:"comments"`
}

// BlogPatch is a shallow field patch for a blog. Nil fields are left
// untouched. The author snapshot and comments are not patchable.
type BlogPatch struct {
	Title       *string `json:"title"`
	MainContent *string `json:"mainContent"`
}
