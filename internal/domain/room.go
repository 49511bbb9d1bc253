package domain

type RoomSize string

const (
	RoomSmall  RoomSize = "small"
	RoomMedium RoomSize = "medium"
	RoomLarge  RoomSize = "large"
)

type Room struct {
	ID        int      `json:"id"`
	Name      string   `json:"name"`
	Size      RoomSize `json:"size"`
	Capacity  int      `json:"capacity"`
	Beds      string   `json:"beds"`
	Price     int      `json:"price"`
	Image     string   `json:"image"`
	Amenities []string `json:"amenities"`
}
