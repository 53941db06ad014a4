package models

// CommentOwner is the snapshot of the commenting user captured when the
// comment is created.
type CommentOwner struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
}

// Comment exists only embedded in a Blog's comment list. ID is unique within
// that list; OwnerID gates deletion.
type Comment struct {
	ID      string       `json:"id"`
	Text    string       `json:"text"`
	Owner   CommentOwner `json:"owner"`
	OwnerID string       `json:"ownerId"`
}
