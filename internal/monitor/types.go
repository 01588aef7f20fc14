package monitor

// SortOrder defines how variables are ordered in the table.
type SortOrder int

const (
	// SortByConfig keeps the order variables were requested in.
	SortByConfig SortOrder = iota
	SortByName
	SortByValue
)

// String returns a human-readable label for the sort order.
func (s SortOrder) String() string {
	switch s {
	case SortByConfig:
		return "config"
	case SortByName:
		return "name"
	case SortByValue:
		return "value"
	default:
		return "config"
	}
}

// Next cycles to the next sort order.
func (s SortOrder) Next() SortOrder {
	return SortOrder((int(s) + 1) % 3)
}
