package permissions

import "time"

// Status is the grant state of a single permission.
type Status int

const (
	// NotRequested means the permission was never asked for.
	NotRequested Status = iota
	// Granted means the permission is held.
	Granted
	// Denied means the user declined but may be asked again.
	Denied
	// PermanentlyDenied means the user declined with "don't ask again";
	// only a settings visit can change it.
	PermanentlyDenied
	// NotApplicable means the running OS version predates the permission.
	NotApplicable
)

func (s Status) String() string {
	switch s {
	case NotRequested:
		return "not_requested"
	case Granted:
		return "granted"
	case Denied:
		return "denied"
	case PermanentlyDenied:
		return "permanently_denied"
	case NotApplicable:
		return "not_applicable"
	default:
		return "unknown"
	}
}

// Record is the observed state of one catalog descriptor.
type Record struct {
	Descriptor       Descriptor `json:"descriptor"`
	Status           Status     `json:"status"`
	LastRequestTime  time.Time  `json:"lastRequestTime"`
	RequestCount     int        `json:"requestCount"`
	CanShowRationale bool       `json:"canShowRationale"`
}

// NeedsAction reports whether the user still has something to do for this
// permission. NotApplicable permissions never need action.
func (r Record) NeedsAction() bool {
	switch r.Status {
	case NotRequested, Denied, PermanentlyDenied:
		return true
	default:
		return false
	}
}

// GroupState aggregates the records of one feature group.
type GroupState struct {
	Group   FeatureGroup `json:"group"`
	Records []Record     `json:"records"`
	// Required marks groups that count toward FullySetUp.
	Required bool `json:"required"`
}

// GrantedCount returns how many records in the group are granted.
func (g GroupState) GrantedCount() int {
	n := 0
	for _, r := range g.Records {
		if r.Status == Granted {
			n++
		}
	}
	return n
}

// AllGranted reports whether every applicable record in the group is granted.
// NotApplicable records need nothing from the user and do not count against
// completion.
func (g GroupState) AllGranted() bool {
	for _, r := range g.Records {
		if r.Status != Granted && r.Status != NotApplicable {
			return false
		}
	}
	return true
}

// CompletionFraction returns granted/applicable. A group with nothing
// applicable is complete.
func (g GroupState) CompletionFraction() float64 {
	return completionFraction(g.Records)
}

func completionFraction(records []Record) float64 {
	applicable, granted := 0, 0
	for _, r := range records {
		if r.Status == NotApplicable {
			continue
		}
		applicable++
		if r.Status == Granted {
			granted++
		}
	}
	if applicable == 0 {
		return 1
	}
	return float64(granted) / float64(applicable)
}

// AppState is an immutable snapshot of every permission's state. Mutations
// replace the whole value; holders of an old snapshot keep seeing it.
type AppState struct {
	Groups     []GroupState `json:"groups"`
	UpdateTime time.Time    `json:"updateTime"`
}

// AllRecords flattens every group's records, preserving group order.
func (s AppState) AllRecords() []Record {
	var out []Record
	for _, g := range s.Groups {
		out = append(out, g.Records...)
	}
	return out
}

// Record returns the record for the given permission id.
func (s AppState) Record(id string) (Record, bool) {
	for _, g := range s.Groups {
		for _, r := range g.Records {
			if r.Descriptor.ID == id {
				return r, true
			}
		}
	}
	return Record{}, false
}

// GroupState returns the state of one feature group.
func (s AppState) GroupState(group FeatureGroup) (GroupState, bool) {
	for _, g := range s.Groups {
		if g.Group == group {
			return g, true
		}
	}
	return GroupState{}, false
}

// CompletionFraction returns the granted fraction over all applicable records.
func (s AppState) CompletionFraction() float64 {
	return completionFraction(s.AllRecords())
}

// FullySetUp reports whether every required group has all members granted.
func (s AppState) FullySetUp() bool {
	for _, g := range s.Groups {
		if g.Required && !g.AllGranted() {
			return false
		}
	}
	return true
}

// NeedsAction returns the records still awaiting user action, optionally
// filtered to one protection level (pass -1 for all levels).
func (s AppState) NeedsAction(level ProtectionLevel) []Record {
	var out []Record
	for _, r := range s.AllRecords() {
		if !r.NeedsAction() {
			continue
		}
		if level >= 0 && r.Descriptor.Level != level {
			continue
		}
		out = append(out, r)
	}
	return out
}
