package composer

import (
	"errors"
	"fmt"
)

var (
	// ErrClosed is returned by blocking operations on a composer that has been closed
	ErrClosed = errors.New("composer closed")
	// ErrNotLoaded is returned when an operation needs a food item and none is loaded
	ErrNotLoaded = errors.New("no food loaded")
	// ErrSuperseded is returned when a newer load replaced the food an operation started on
	ErrSuperseded = errors.New("superseded by a newer load")
	// ErrTogglePending is returned when a favorite toggle is already in flight
	ErrTogglePending = errors.New("favorite toggle already in progress")
)

// LoadError reports a failed fetch of the food record or the favorites collection
type LoadError struct {
	FoodID uint
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load food %d: %v", e.FoodID, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// FavoriteSyncError reports a rejected add/remove favorite call; the flag was not flipped
type FavoriteSyncError struct {
	FoodID uint
	Adding bool
	Err    error
}

func (e *FavoriteSyncError) Error() string {
	action := "remove"
	if e.Adding {
		action = "add"
	}
	return fmt.Sprintf("failed to %s favorite for food %d: %v", action, e.FoodID, e.Err)
}

func (e *FavoriteSyncError) Unwrap() error { return e.Err }

// SubmitError reports a rejected order submission
type SubmitError struct {
	FoodID uint
	Err    error
}

func (e *SubmitError) Error() string {
	return fmt.Sprintf("failed to submit order for food %d: %v", e.FoodID, e.Err)
}

func (e *SubmitError) Unwrap() error { return e.Err }
