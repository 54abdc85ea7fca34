package neo

// Fallback returns the hardcoded catalog used when live data is unavailable.
func Fallback() Catalog {
	return Catalog{
		Source: SourceFallback,
		Asteroids: []Asteroid{
			{ID: "1", Name: "Dummy Rock 1", Diameter: 25.0, Velocity: 20000.0},
			{ID: "2", Name: "Doomsday 99", Diameter: 80.0, Velocity: 55000.0, Hazardous: true},
			{ID: "3", Name: "Tiny Pebble", Diameter: 10.0, Velocity: 15000.0},
			{ID: "4", Name: "Fast Boi", Diameter: 40.0, Velocity: 80000.0},
			{ID: "5", Name: "Big Scary", Diameter: 100.0, Velocity: 30000.0, Hazardous: true},
		},
	}
}
