package schema

// StudioTeamMemberTable represents the 'studio.teammember' table
type StudioTeamMemberTable struct {
	Table    string
	TeamID   string
	UserID   string
	Role     string
	JoinedAt string
}

// StudioTeamMember is the schema definition for studio.teammember
var StudioTeamMember = StudioTeamMemberTable{
	Table:    "studio.teammember",
	TeamID:   "teamid",
	UserID:   "userid",
	Role:     "role",
	JoinedAt: "joinedat",
}

func (t StudioTeamMemberTable) Columns() []string {
	return []string{t.TeamID, t.UserID, t.Role, t.JoinedAt}
}
