package schema

// StudioTemplateLocaleTable represents the 'studio.templatelocale' table
type StudioTemplateLocaleTable struct {
	Table         string
	ID            string
	TemplateID    string
	Locale        string
	LastRenderURL string
	ThumbnailURL  string
	CreatedAt     string
	UpdatedAt     string
}

// StudioTemplateLocale is the schema definition for studio.templatelocale
var StudioTemplateLocale = StudioTemplateLocaleTable{
	Table:         "studio.templatelocale",
	ID:            "id",
	TemplateID:    "templateid",
	Locale:        "locale",
	LastRenderURL: "lastrenderurl",
	ThumbnailURL:  "thumbnailurl",
	CreatedAt:     "createdat",
	UpdatedAt:     "updatedat",
}

func (t StudioTemplateLocaleTable) Columns() []string {
	return []string{t.ID, t.TemplateID, t.Locale, t.LastRenderURL, t.ThumbnailURL, t.CreatedAt, t.UpdatedAt}
}
