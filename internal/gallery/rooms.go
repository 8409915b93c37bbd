package gallery

// MainRoomID is the room a museum opens in when none is requested.
const MainRoomID = "main"

// Catalog is an ordered set of rooms addressable by ID.
type Catalog struct {
	rooms []Room
	byID  map[string]int
}

// NewCatalog indexes rooms by ID. Later duplicates replace earlier ones in place.
func NewCatalog(rooms []Room) *Catalog {
	c := &Catalog{byID: make(map[string]int, len(rooms))}
	for _, r := range rooms {
		if i, ok := c.byID[r.ID]; ok {
			c.rooms[i] = r
			continue
		}
		c.byID[r.ID] = len(c.rooms)
		c.rooms = append(c.rooms, r)
	}
	return c
}

// Lookup returns the room with the given ID.
func (c *Catalog) Lookup(id string) (Room, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Room{}, false
	}
	return c.rooms[i], true
}

// Rooms returns the rooms in catalog order.
func (c *Catalog) Rooms() []Room {
	out := make([]Room, len(c.rooms))
	copy(out, c.rooms)
	return out
}

// IDs returns the room IDs in catalog order.
func (c *Catalog) IDs() []string {
	out := make([]string, len(c.rooms))
	for i, r := range c.rooms {
		out[i] = r.ID
	}
	return out
}

// DefaultRooms returns the built-in rooms of the museum.
func DefaultRooms() []Room {
	return []Room{
		{
			ID: MainRoomID, Name: "Sala Principal", Description: "Obras destacadas de la colección",
			Width: 30, Depth: 40, Height: 8,
			WallColor: "#f5f5f5", FloorColor: "#1a1a1a", AccentColor: "#c9a961",
			Spacing: DefaultSpacing, Limit: 20,
		},
		{
			ID: "divinos", Name: "DiviNos VaiVenes", Description: "Serie de iconos contemporáneos",
			Width: 25, Depth: 30, Height: 7,
			WallColor: "#faf8f5", FloorColor: "#2a1a10", AccentColor: "#a0522d",
			Spacing:  DefaultSpacing,
			Keywords: []string{"divino", "vaiven", "icono", "madonna"}, Limit: 15,
		},
		{
			ID: "retratos", Name: "Retratos", Description: "Estudios del alma humana",
			Width: 20, Depth: 25, Height: 6,
			WallColor: "#f0f0f0", FloorColor: "#1a1a2e", AccentColor: "#2e5090",
			Spacing:  DefaultSpacing,
			Keywords: []string{"retrato", "portrait", "cara", "rostro"}, Limit: 15,
		},
		{
			ID: "walking", Name: "Walking Gallery", Description: "Arte urbano y callejero",
			Width: 35, Depth: 20, Height: 6,
			WallColor: "#e8e8e8", FloorColor: "#252525", AccentColor: "#d4543a",
			Spacing:  DefaultSpacing,
			Keywords: []string{"walking", "gallery", "urbano", "street"}, Limit: 15,
		},
	}
}
