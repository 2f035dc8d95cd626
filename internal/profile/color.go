package profile

// Color is a palette tag shown next to a profile and used for its container.
type Color string

const (
	Blue      Color = "blue"
	Turquoise Color = "turquoise"
	Green     Color = "green"
	Yellow    Color = "yellow"
	Orange    Color = "orange"
	Red       Color = "red"
	Pink      Color = "pink"
	Purple    Color = "purple"
)

// Palette is the fixed, ordered set of colors assigned to new records.
var Palette = []Color{Blue, Turquoise, Green, Yellow, Orange, Red, Pink, Purple}

var hexCodes = map[Color]string{
	Blue:      "#37adff",
	Turquoise: "#00c79a",
	Green:     "#51cd00",
	Yellow:    "#ffcb00",
	Orange:    "#ff9f00",
	Red:       "#ff613d",
	Pink:      "#ff4bda",
	Purple:    "#af51f5",
}

// NextColor returns the color for a record created when existingCount
// records are already persisted. Deleting records can make a later record
// repeat a color that is still in use; that is expected.
func NextColor(existingCount int) Color {
	if existingCount < 0 {
		existingCount = 0
	}
	return Palette[existingCount%len(Palette)]
}

// Valid reports whether c is one of the palette colors.
func (c Color) Valid() bool {
	_, ok := hexCodes[c]
	return ok
}

// Hex returns the display color code, or "" for unknown colors.
func (c Color) Hex() string {
	return hexCodes[c]
}
