package schema

// RadarTopicTable represents the 'radar.topic' table
type RadarTopicTable struct {
	Table               string
	ID                  string
	Name                string
	Slug                string
	CreatorID           string
	Username            string
	TwitterUsername     string
	TwitterProfileImage string
	CreatedAt           string
	UpdatedAt           string
}

// RadarTopic is the schema definition for radar.topic
var RadarTopic = RadarTopicTable{
	Table:               "radar.topic",
	ID:                  "id",
	Name:                "name",
	Slug:                "slug",
	CreatorID:           "creatorid",
	Username:            "username",
	TwitterUsername:     "twitterusername",
	TwitterProfileImage: "twitterprofileimage",
	CreatedAt:           "createdat",
	UpdatedAt:           "updatedat",
}

// TopicSlugKey is the unique index on topic slugs.
const TopicSlugKey = "topic_slug_key"

// Columns returns all standard column names
func (t RadarTopicTable) Columns() []string {
	return []string{
		t.ID, t.Name, t.Slug, t.CreatorID, t.Username, t.TwitterUsername,
		t.TwitterProfileImage, t.CreatedAt, t.UpdatedAt,
	}
}
