package config

import (
	"os"
	"strings"

	"hotel-pms/models"
)

// CheckoutRoomStatus returns the room status applied at check-out.
// Deployments that run housekeeping turnover set DIRTY (the default);
// properties without that workflow set CHECKOUT_ROOM_STATUS=AVAILABLE
// to release the room immediately.
func CheckoutRoomStatus() models.RoomStatus {
	if strings.EqualFold(strings.TrimSpace(os.Getenv("CHECKOUT_ROOM_STATUS")), string(models.RoomStatusAvailable)) {
		return models.RoomStatusAvailable
	}
	return models.RoomStatusDirty
}
