package model

// ActivityEntry is one line of the activity log.
type ActivityEntry struct {
	Timestamp string `json:"timestamp"`
	User      string `json:"user"`
	Action    string `json:"action"`
	Item      string `json:"item"`
}
