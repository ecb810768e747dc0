package content

// FolderEntry is a folder in a listing, annotated with the total number of
// immediate children (folders + files) so clients can render "N items"
// summaries without a second round trip.
type FolderEntry struct {
	Folder
	ChildCount int `json:"child_count"`
}

// Breadcrumb is one step of the navigation path from the scope root down
// to the requested folder. The scope root itself is excluded.
type Breadcrumb struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Listing is the effective contents of a folder for a given viewer:
// exactly the subset of children the viewer is authorized to see.
type Listing struct {
	Folder      *Folder       `json:"folder,omitempty"` // nil when listing the scope root
	Folders     []FolderEntry `json:"folders"`
	Files       []File        `json:"files"`
	Breadcrumbs []Breadcrumb  `json:"breadcrumbs"`
}
