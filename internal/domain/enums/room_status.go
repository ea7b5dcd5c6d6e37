package enums

import (
	"errors"
	"fmt"
)

var ErrUnknownRoomStatus = errors.New("unknown chat room status")

type RoomStatus string

const (
	RoomStatusActive  RoomStatus = "active"
	RoomStatusMatched RoomStatus = "matched"
	RoomStatusClosed  RoomStatus = "closed"
)

func ParseRoomStatus(raw string) (RoomStatus, error) {
	switch RoomStatus(raw) {
	case RoomStatusActive, RoomStatusMatched, RoomStatusClosed:
		return RoomStatus(raw), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownRoomStatus, raw)
	}
}
