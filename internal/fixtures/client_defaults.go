package fixtures

// Default catalog seeded for a freshly created client so admins start from a
// working setup instead of an empty one. Names and allowances are editable
// afterwards like any other level or leave type.

type LevelSeed struct {
	Name        string
	Description string
	LeaveTypes  []LeaveTypeSeed
}

type LeaveTypeSeed struct {
	Name           string
	DefaultBalance int
}

var standardLeaveTypes = []LeaveTypeSeed{
	{Name: "Annual", DefaultBalance: 20},
	{Name: "Sick", DefaultBalance: 10},
	{Name: "Maternity", DefaultBalance: 90},
	{Name: "Paternity", DefaultBalance: 14},
	{Name: "Compassionate", DefaultBalance: 5},
}

// DefaultLevels returns the seed hierarchy for a new client.
func DefaultLevels() []LevelSeed {
	levels := []LevelSeed{
		{Name: "Junior", Description: "Entry level staff"},
		{Name: "Senior", Description: "Experienced staff"},
		{Name: "Management", Description: "Team leads and managers"},
	}
	for i := range levels {
		levels[i].LeaveTypes = standardLeaveTypes
	}
	return levels
}
