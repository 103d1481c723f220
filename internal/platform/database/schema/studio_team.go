package schema

// StudioTeamTable represents the 'studio.team' table
type StudioTeamTable struct {
	Table     string
	ID        string
	Name      string
	Slug      string
	CreatedAt string
}

// StudioTeam is the schema definition for studio.team
var StudioTeam = StudioTeamTable{
	Table:     "studio.team",
	ID:        "id",
	Name:      "name",
	Slug:      "slug",
	CreatedAt: "createdat",
}

func (t StudioTeamTable) Columns() []string {
	return []string{t.ID, t.Name, t.Slug, t.CreatedAt}
}
