package schema

// RadarBlipTable represents the 'radar.blip' table
type RadarBlipTable struct {
	Table     string
	ID        string
	RadarID   string
	TopicID   string
	Quadrant  string
	Ring      string
	Notes     string
	CreatedAt string
	UpdatedAt string
}

// RadarBlip is the schema definition for radar.blip
var RadarBlip = RadarBlipTable{
	Table:     "radar.blip",
	ID:        "id",
	RadarID:   "radarid",
	TopicID:   "topicid",
	Quadrant:  "quadrant",
	Ring:      "ring",
	Notes:     "notes",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}

// BlipRadarTopicKey prevents placing the same topic twice on one radar.
const BlipRadarTopicKey = "blip_radar_topic_key"

// Columns returns all standard column names
func (t RadarBlipTable) Columns() []string {
	return []string{t.ID, t.RadarID, t.TopicID, t.Quadrant, t.Ring, t.Notes, t.CreatedAt, t.UpdatedAt}
}
