package projection

// Semantic roles the theme layer annotates with microformats2 classes.
const (
	RoleEntryContainer   = "entry-container"
	RoleContentContainer = "content-container"
	RoleSummary          = "summary"
	RoleAuthor           = "author"
	RoleDateUpdated      = "date-updated"
	RoleDatePublished    = "date-published"
)

// Microformats maps each semantic role to the microformats2 class token
// the templates attach to the corresponding element. This is a static
// contract, not computed from the document.
func Microformats() map[string]string {
	return map[string]string{
		RoleEntryContainer:   "h-entry",
		RoleContentContainer: "e-content",
		RoleSummary:          "p-summary",
		RoleAuthor:           "p-author",
		RoleDateUpdated:      "dt-updated",
		RoleDatePublished:    "dt-published",
	}
}
