package domain

// SpaceType represents the kind of bookable space
type SpaceType string

const (
	SpaceOpenDesk    SpaceType = "OPEN_DESK"
	SpaceMeetingRoom SpaceType = "MEETING_ROOM"
	SpaceOffice      SpaceType = "OFFICE"
)

// Space represents a bookable physical unit with a capacity
type Space struct {
	ID           int64
	LocationID   int64
	LocationName string
	Name         string
	Capacity     int
	Type         SpaceType
	TariffPlanID *int64
	Active       bool
}

// FreeSpace проекция результата поиска свободных пространств.
// Возвращается оракулом доступности, ядром трактуется как истина.
type FreeSpace struct {
	SpaceID  int64
	Name     string
	Capacity int
}
