package model

import "time"

// ThrottleKey selects which priority drives throttle window lookup.
type ThrottleKey string

const (
	// ThrottleByPriority uses the priority derived from the commit text
	// (markers, breaking type).
	ThrottleByPriority ThrottleKey = "priority"
	// ThrottleByType uses the fixed priority from the type descriptor table.
	ThrottleByType ThrottleKey = "type"
)

// defaultThrottleMinutes is the hard fallback when a policy has no entry for
// the commit priority and no "normal" entry either.
const defaultThrottleMinutes = 60

// DestinationPolicy is the static per-library notification policy.
type DestinationPolicy struct {
	ID              string
	Name            string
	Channel         string
	AlwaysNotify    []CommitType
	NeverNotify     []CommitType
	ThrottleMinutes map[Priority]int
}

// AlwaysNotifies reports whether the type is on the always-notify list.
func (p *DestinationPolicy) AlwaysNotifies(t CommitType) bool {
	return containsType(p.AlwaysNotify, t)
}

// NeverNotifies reports whether the type is on the never-notify list.
func (p *DestinationPolicy) NeverNotifies(t CommitType) bool {
	return containsType(p.NeverNotify, t)
}

// ThrottleWindow returns the minimum interval between notifications for the
// given priority. Falls back to the "normal" entry, then to the hard default.
func (p *DestinationPolicy) ThrottleWindow(pr Priority) time.Duration {
	if m, ok := p.ThrottleMinutes[pr]; ok {
		return time.Duration(m) * time.Minute
	}
	if m, ok := p.ThrottleMinutes[PriorityNormal]; ok {
		return time.Duration(m) * time.Minute
	}
	return defaultThrottleMinutes * time.Minute
}

func containsType(types []CommitType, t CommitType) bool {
	for _, c := range types {
		if c == t {
			return true
		}
	}
	return false
}

// NotifyRules is the full static rule set loaded once at startup. Read-only
// after construction.
type NotifyRules struct {
	ThrottleKey    ThrottleKey
	DefaultChannel string
	Destinations   map[string]*DestinationPolicy
	MentionGroups  map[string]string
}

// Destination looks up the policy for a file key.
func (r *NotifyRules) Destination(id string) (*DestinationPolicy, bool) {
	p, ok := r.Destinations[id]
	return p, ok
}

// ResolveMention maps a mention token to its platform tag, falling back to a
// plain @token literal for unknown tokens.
func (r *NotifyRules) ResolveMention(token string) string {
	if tag, ok := r.MentionGroups[token]; ok {
		return tag
	}
	return "@" + token
}

// ChannelFor returns the destination's channel, or the default channel when
// the policy has none.
func (r *NotifyRules) ChannelFor(p *DestinationPolicy) string {
	if p.Channel != "" {
		return p.Channel
	}
	return r.DefaultChannel
}
