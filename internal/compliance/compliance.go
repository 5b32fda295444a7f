// Package compliance carries the code-check annotations every result
// record returns alongside its numbers. A flag never aborts a
// calculation; callers decide what an exceedance means for them.
package compliance

// Severity ranks a flag.
type Severity string

const (
	Info    Severity = "info"
	Warning Severity = "warning"
	Error   Severity = "error"
)

// Flag is one code-compliance finding: which clause, how serious, and a
// message with the numbers that triggered it.
type Flag struct {
	Severity Severity `json:"severity"`
	Ref      string   `json:"ref"`
	Message  string   `json:"message"`
}

// Flags preserves append order; reports render them as given.
type Flags []Flag

// Add appends a flag.
func (f *Flags) Add(sev Severity, ref, message string) {
	*f = append(*f, Flag{Severity: sev, Ref: ref, Message: message})
}

// HasErrors reports whether any flag carries Error severity.
func (f Flags) HasErrors() bool {
	for _, fl := range f {
		if fl.Severity == Error {
			return true
		}
	}
	return false
}

// Count returns how many flags carry the given severity.
func (f Flags) Count(sev Severity) int {
	n := 0
	for _, fl := range f {
		if fl.Severity == sev {
			n++
		}
	}
	return n
}
