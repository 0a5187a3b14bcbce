package threadrequests

// RenameThreadRequest sets a user-chosen thread title. A blank title leaves
// the stored title untouched.
type RenameThreadRequest struct {
	Title string `json:"title"`
}
