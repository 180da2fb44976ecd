package domain

// Filter is a set of optional equality predicates over the shared
// registries. A nil predicate imposes no constraint.
type Filter struct {
	Channel *float64
	Level   *string
	Owner   *string
}

func (f Filter) Empty() bool {
	return f.Channel == nil && f.Level == nil && f.Owner == nil
}

// MatchMarker reports whether m satisfies every supplied predicate.
func (f Filter) MatchMarker(m Marker) bool {
	if f.Channel != nil && m.Channel != *f.Channel {
		return false
	}
	if f.Level != nil && m.Level != *f.Level {
		return false
	}
	if f.Owner != nil && m.Owner != *f.Owner {
		return false
	}
	return true
}

// MatchMarkerAny reports whether m satisfies at least one supplied
// predicate. Used by bulk clear, where owner and channel are alternatives
// rather than a conjunction.
func (f Filter) MatchMarkerAny(m Marker) bool {
	if f.Channel != nil && m.Channel == *f.Channel {
		return true
	}
	if f.Level != nil && m.Level == *f.Level {
		return true
	}
	if f.Owner != nil && m.Owner == *f.Owner {
		return true
	}
	return false
}

// MatchParticipant reports whether p satisfies every supplied predicate.
// Owner does not apply to participants.
func (f Filter) MatchParticipant(p Participant) bool {
	if f.Channel != nil && p.Channel != *f.Channel {
		return false
	}
	if f.Level != nil && p.Level != *f.Level {
		return false
	}
	return true
}
