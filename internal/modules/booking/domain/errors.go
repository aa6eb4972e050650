package domain

import "errors"

var (
	ErrBookingNotFound   = errors.New("booking not found")
	ErrPostNotFound      = errors.New("post not found")
	ErrNotPostOwner      = errors.New("only the post owner may resolve a booking")
	ErrOwnPost           = errors.New("cannot book your own post")
	ErrInvalidTransition = errors.New("booking is no longer pending")
	ErrInvalidTimeFrame  = errors.New("unknown time frame")
	ErrMissingDates      = errors.New("specific time frame requires need and return dates")
	ErrReturnBeforeNeed  = errors.New("return date precedes need date")
	ErrInvalidStatus     = errors.New("unknown booking status")
)
