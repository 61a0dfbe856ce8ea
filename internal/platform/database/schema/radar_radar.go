package schema

// RadarRadarTable represents the 'radar.radar' table
type RadarRadarTable struct {
	Table       string
	ID          string
	UUID        string
	Name        string
	Description string
	OwnerID     string
	CreatedAt   string
	UpdatedAt   string
}

// RadarRadar is the schema definition for radar.radar
var RadarRadar = RadarRadarTable{
	Table:       "radar.radar",
	ID:          "id",
	UUID:        "uuid",
	Name:        "name",
	Description: "description",
	OwnerID:     "ownerid",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

// Columns returns all standard column names
func (t RadarRadarTable) Columns() []string {
	return []string{t.ID, t.UUID, t.Name, t.Description, t.OwnerID, t.CreatedAt, t.UpdatedAt}
}
