// Package repository contains data access logic separated from HTTP
// handlers. This file defines sentinel errors shared across repositories so
// that handlers can map store failures onto the API error taxonomy
// (bad request, unauthorized, forbidden, not found, conflict) with
// errors.Is instead of string matching.
package repository

import "errors"

// ErrEmailExists is returned when registering with an email that is already
// taken. Emails are compared case-insensitively (stored lowercased).
var ErrEmailExists = errors.New("email already exists")

// ErrUsernameExists is returned when a username is already taken.
var ErrUsernameExists = errors.New("username already exists")

// ErrUserNotFound is returned when a user row cannot be located.
var ErrUserNotFound = errors.New("user not found")

// ErrRoleNotFound is returned when a role lookup by name or default flag
// finds no row. Seen only when the role table has not been seeded.
var ErrRoleNotFound = errors.New("role not found")

// ErrSelfFollow is returned when a user attempts to follow themself. The
// follow graph treats this as a hard invariant, not a caller-side check.
var ErrSelfFollow = errors.New("cannot follow self")

// ErrAlreadyFollowing is returned when the ordered follow edge already
// exists. Handlers translate this into HTTP 409.
var ErrAlreadyFollowing = errors.New("already following")

// ErrNotFollowing is returned when unfollowing without an existing edge.
var ErrNotFollowing = errors.New("not following")

// ErrPostNotFound is returned when a post row cannot be located.
var ErrPostNotFound = errors.New("post not found")

// ErrCommentNotFound is returned when a comment row cannot be located.
var ErrCommentNotFound = errors.New("comment not found")

// ErrMessageNotFound is returned when a message row cannot be located.
var ErrMessageNotFound = errors.New("message not found")

// mysql duplicate-key errors carry code 1062; repositories check for it to
// turn constraint violations into the sentinel errors above.
const mysqlDupEntry = "1062"
