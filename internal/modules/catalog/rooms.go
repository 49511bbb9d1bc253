package catalog

import "guesthouse/internal/domain"

var (
	standardAmenities = []string{"WiFi", "Air Conditioning", "Private Bathroom", "TV", "Coffee Maker"}
	comfortAmenities  = []string{"WiFi", "Air Conditioning", "Private Bathroom", "TV", "Mini Fridge", "Coffee Maker"}
)

// rooms is the fixed inventory of the guesthouse, ids 1-10.
var rooms = []domain.Room{
	{ID: 1, Name: "Standard Single Room", Size: domain.RoomSmall, Capacity: 1, Beds: "1 Single Bed", Price: 450, Image: "images/Senate14.jpg", Amenities: standardAmenities},
	{ID: 2, Name: "Standard Double Room", Size: domain.RoomMedium, Capacity: 2, Beds: "1 Double Bed", Price: 650, Image: "images/Senate11.jpg", Amenities: standardAmenities},
	{ID: 3, Name: "Deluxe Double Room", Size: domain.RoomLarge, Capacity: 2, Beds: "1 Queen Bed", Price: 850, Image: "images/Senate20.jpg", Amenities: []string{"WiFi", "Air Conditioning", "Private Bathroom", "TV", "Mini Fridge", "Coffee Maker", "Pool View"}},
	{ID: 4, Name: "Twin Room", Size: domain.RoomMedium, Capacity: 2, Beds: "2 Single Beds", Price: 700, Image: "images/Senate17.jpg", Amenities: standardAmenities},
	{ID: 5, Name: "Family Room", Size: domain.RoomLarge, Capacity: 4, Beds: "1 Double + 2 Singles", Price: 1200, Image: "images/Senate20.jpg", Amenities: comfortAmenities},
	{ID: 6, Name: "Superior Room", Size: domain.RoomLarge, Capacity: 2, Beds: "1 King Bed", Price: 950, Image: "images/Senate18.jpg", Amenities: comfortAmenities},
	{ID: 7, Name: "Economy Single Room", Size: domain.RoomSmall, Capacity: 1, Beds: "1 Single Bed", Price: 400, Image: "images/Senate23.jpg", Amenities: []string{"WiFi", "Air Conditioning", "Shared Bathroom", "Coffee Maker"}},
	{ID: 8, Name: "Deluxe Twin Room", Size: domain.RoomMedium, Capacity: 2, Beds: "2 Single Beds", Price: 800, Image: "images/Senate29.jpg", Amenities: comfortAmenities},
	{ID: 9, Name: "Executive Suite", Size: domain.RoomLarge, Capacity: 2, Beds: "1 King Bed", Price: 1400, Image: "images/Senate14.jpg", Amenities: []string{"WiFi", "Air Conditioning", "Private Bathroom", "TV", "Mini Fridge", "Coffee Maker", "Balcony"}},
	{ID: 10, Name: "Family Suite", Size: domain.RoomLarge, Capacity: 5, Beds: "2 Double Beds + 1 Single", Price: 1600, Image: "images/Senate10.jpg", Amenities: []string{"WiFi", "Air Conditioning", "Private Bathroom", "TV", "Mini Fridge", "Coffee Maker", "Living Area"}},
}

// Rooms returns a copy of the inventory.
func Rooms() []domain.Room {
	out := make([]domain.Room, len(rooms))
	for i, r := range rooms {
		r.Amenities = append([]string(nil), r.Amenities...)
		out[i] = r
	}
	return out
}
