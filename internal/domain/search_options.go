package domain

// SearchOptions represents filter criteria for task logs.
// This is a domain model that mirrors the database search options
// but belongs to the domain layer for proper separation of concerns.
//
// From and To select entries whose date range overlaps [From, To].
type SearchOptions struct {
	User   *string
	Team   *string
	Status *string
	Client *string
	From   *string
	To     *string
}

// IsEmpty returns true when no filter is set.
func (o SearchOptions) IsEmpty() bool {
	return o.User == nil && o.Team == nil && o.Status == nil &&
		o.Client == nil && o.From == nil && o.To == nil
}
