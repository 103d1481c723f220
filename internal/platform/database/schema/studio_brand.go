package schema

// StudioBrandTable represents the 'studio.brand' table
type StudioBrandTable struct {
	Table     string
	ID        string
	TeamID    string
	Name      string
	Slug      string
	CreatedAt string
}

// StudioBrand is the schema definition for studio.brand.
// A NULL teamid marks a brand shared by every team.
var StudioBrand = StudioBrandTable{
	Table:     "studio.brand",
	ID:        "id",
	TeamID:    "teamid",
	Name:      "name",
	Slug:      "slug",
	CreatedAt: "createdat",
}

func (t StudioBrandTable) Columns() []string {
	return []string{t.ID, t.TeamID, t.Name, t.Slug, t.CreatedAt}
}
