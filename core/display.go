package core

// Displayable is implemented by every record the console lists or the storage layer writes.
type Displayable interface {
	// Describe returns a one-line human readable summary.
	Describe() string
	// Record returns the fields in file order.
	Record() []string
}
