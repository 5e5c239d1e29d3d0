package entities

// Post is a wall post as returned by the social network.
type Post struct {
	ID          int64
	OwnerID     int64
	Text        string
	Attachments int
}

// Group is a monitored community.
type Group struct {
	Name string `yaml:"name"`
	ID   int64  `yaml:"id"`
}
