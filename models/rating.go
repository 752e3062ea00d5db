package models

import "time"

// Rating is a 1..5 score one past co-participant gives another after an
// event concludes. The (rater, rated, event_id) triple is unique; a second
// attempt is a conflict, never an update.
type Rating struct {
	ID        int       `json:"id"`
	Rater     int       `json:"rater"`
	Rated     int       `json:"rated"`
	EventID   int       `json:"eventId"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
}
