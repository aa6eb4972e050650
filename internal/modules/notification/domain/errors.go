package domain

import "errors"

var (
	ErrNotificationNotFound = errors.New("notification not found")
	ErrNotParticipant       = errors.New("user is not a participant of this notification")
	ErrInvalidNotification  = errors.New("invalid notification")
	ErrEmptyMessage         = errors.New("message content must not be empty")
	ErrDuplicateChat        = errors.New("chat notification already exists for this pair")
	ErrChatConflict         = errors.New("chat conflict could not be resolved")
	ErrUnknownCursor        = errors.New("unknown message cursor")
)
