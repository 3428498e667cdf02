package model

import "time"

// Follow is a directed edge in the follow graph. The pair
// (FollowerID, FollowingID) is the composite primary key, so the same
// ordered pair can exist at most once. The edge (A, B) means A follows B
// and says nothing about the reverse direction.
type Follow struct {
	FollowerID  uint64    // follows.follower_id (the user doing the following)
	FollowingID uint64    // follows.following_id (the user being followed)
	CreatedAt   time.Time // follows.created_at
}
