package models

import (
	"fmt"
	"time"
)

// FollowStatus is the state of a directed follow edge.
type FollowStatus string

const (
	FollowPending  FollowStatus = "pending"
	FollowAccepted FollowStatus = "accepted"
	FollowRejected FollowStatus = "rejected"
)

// FollowAction is a followee's decision on a follow request.
type FollowAction string

const (
	FollowActionAccept FollowAction = "accept"
	FollowActionReject FollowAction = "reject"
)

// Follow represents a directed follow edge. At most one edge exists per
// (follower, following) pair; a repeated follow request overwrites the
// status rather than inserting a second row.
type Follow struct {
	ID          uint         `json:"id" gorm:"primaryKey"`
	FollowerID  uint         `json:"follower_id" gorm:"index;uniqueIndex:idx_follower_following"`
	FollowingID uint         `json:"following_id" gorm:"index;uniqueIndex:idx_follower_following"`
	Status      FollowStatus `json:"status" gorm:"type:varchar(20);default:'pending'"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// StatusForRequest decides the outcome of a follow request against a target
// account. The decision depends only on the target's current privacy flag:
// a prior rejected or accepted edge is re-evaluated from scratch.
func StatusForRequest(targetPrivate bool) FollowStatus {
	if targetPrivate {
		return FollowPending
	}
	return FollowAccepted
}

// StatusForAction maps a followee's accept/reject decision to the edge
// status it produces. Both resulting states are terminal until the follower
// issues a fresh follow request.
func StatusForAction(action FollowAction) (FollowStatus, error) {
	switch action {
	case FollowActionAccept:
		return FollowAccepted, nil
	case FollowActionReject:
		return FollowRejected, nil
	default:
		return "", fmt.Errorf("unknown follow action %q", action)
	}
}
