package schema

// StudioTemplateTable represents the 'studio.template' table
type StudioTemplateTable struct {
	Table         string
	ID            string
	TeamID        string
	BrandID       string
	CreatorUserID string
	Title         string
	Description   string
	DurationMS    string
	ThumbnailURL  string
	CreatedAt     string
	UpdatedAt     string
}

// StudioTemplate is the schema definition for studio.template
var StudioTemplate = StudioTemplateTable{
	Table:         "studio.template",
	ID:            "id",
	TeamID:        "teamid",
	BrandID:       "brandid",
	CreatorUserID: "creatoruserid",
	Title:         "title",
	Description:   "description",
	DurationMS:    "durationms",
	ThumbnailURL:  "thumbnailurl",
	CreatedAt:     "createdat",
	UpdatedAt:     "updatedat",
}

// Columns returns all standard column names
func (t StudioTemplateTable) Columns() []string {
	return []string{
		t.ID, t.TeamID, t.BrandID, t.CreatorUserID, t.Title, t.Description,
		t.DurationMS, t.ThumbnailURL, t.CreatedAt, t.UpdatedAt,
	}
}
