package model

import (
	"fmt"
	"regexp"
	"strings"
)

// CommitType classifies the intent of a library publish.
type CommitType string

const (
	TypeBreaking   CommitType = "breaking"
	TypeFeat       CommitType = "feat"
	TypeFix        CommitType = "fix"
	TypeUpdate     CommitType = "update"
	TypeRefactor   CommitType = "refactor"
	TypeStyle      CommitType = "style"
	TypeDocs       CommitType = "docs"
	TypeChore      CommitType = "chore"
	TypeExperiment CommitType = "experiment"
)

// Priority represents the urgency of a parsed commit.
type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityNormal   Priority = "normal"
)

// TypeDescriptor holds display attributes and default behavior for a commit type.
// Priority is the fixed priority used when throttling keys on type instead of
// the derived commit priority.
type TypeDescriptor struct {
	Emoji         string
	Label         string
	DefaultNotify bool
	Priority      Priority
}

var typeDescriptors = map[CommitType]TypeDescriptor{
	TypeBreaking:   {Emoji: "💥", Label: "Breaking Change", DefaultNotify: true, Priority: PriorityCritical},
	TypeFeat:       {Emoji: "✨", Label: "New Feature", DefaultNotify: true, Priority: PriorityHigh},
	TypeFix:        {Emoji: "🐛", Label: "Fix", DefaultNotify: true, Priority: PriorityHigh},
	TypeUpdate:     {Emoji: "🔄", Label: "Update", DefaultNotify: true, Priority: PriorityNormal},
	TypeRefactor:   {Emoji: "♻️", Label: "Refactor", DefaultNotify: false, Priority: PriorityNormal},
	TypeStyle:      {Emoji: "🎨", Label: "Style", DefaultNotify: false, Priority: PriorityNormal},
	TypeDocs:       {Emoji: "📝", Label: "Docs", DefaultNotify: false, Priority: PriorityNormal},
	TypeChore:      {Emoji: "🔧", Label: "Chore", DefaultNotify: false, Priority: PriorityNormal},
	TypeExperiment: {Emoji: "🧪", Label: "Experiment", DefaultNotify: false, Priority: PriorityNormal},
}

// DescriptorFor returns the descriptor of a commit type.
func DescriptorFor(t CommitType) (TypeDescriptor, bool) {
	d, ok := typeDescriptors[t]
	return d, ok
}

// Inline markers recognized anywhere in the description.
const (
	markerPriority = "[priority]"
	markerDevReady = "[dev-ready]"
)

var (
	headerRe = regexp.MustCompile(`^(?i)(breaking|feat|fix|update|refactor|style|docs|chore|experiment)(?:\(([^)]+)\))?(!)?:\s*(.*)$`)

	// Component lists require at least two comma-separated tokens, each
	// starting with an uppercase letter. A capitalized sentence without a
	// comma stays a plain message.
	componentListRe = regexp.MustCompile(`^[A-Z][A-Za-z0-9&/ _-]*(?:\s*,\s*[A-Z][A-Za-z0-9&/ _-]*)+$`)

	mentionRe = regexp.MustCompile(`\[@([A-Za-z0-9._-]+)\]`)
)

// ParsedCommit is the structured form of a publish description. Derived
// deterministically from the raw text and never mutated afterwards.
type ParsedCommit struct {
	Valid         bool
	InvalidReason string
	Type          CommitType
	Scope         string
	Forced        bool
	Priority      Priority
	Components    []string
	BulletPoints  []string
	Mentions      []string
	DevComplete   bool
	Message       string
	RawText       string
}

func invalidCommit(raw, reason string) *ParsedCommit {
	return &ParsedCommit{Valid: false, InvalidReason: reason, RawText: raw}
}

// ParseCommitMessage classifies a free-text publish description against the
// semantic commit grammar `type[(scope)][!]: rest`. Anything outside the
// grammar yields an invalid commit, not an error.
func ParseCommitMessage(text string) *ParsedCommit {
	if strings.TrimSpace(text) == "" {
		return invalidCommit(text, "empty description")
	}

	normalized := strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(normalized, "\n")

	m := headerRe.FindStringSubmatch(strings.TrimSpace(lines[0]))
	if m == nil {
		return invalidCommit(text, "not a valid semantic commit format")
	}

	commit := &ParsedCommit{
		Valid:   true,
		Type:    CommitType(strings.ToLower(m[1])),
		Scope:   m[2],
		Forced:  m[3] == "!",
		RawText: text,
	}

	rest := strings.TrimSpace(m[4])
	if componentListRe.MatchString(rest) {
		for _, token := range strings.Split(rest, ",") {
			commit.Components = append(commit.Components, strings.TrimSpace(token))
		}
		commit.BulletPoints = collectBullets(lines[1:])
		if len(commit.BulletPoints) > 0 {
			commit.Message = commit.BulletPoints[0]
		} else {
			commit.Message = fmt.Sprintf("Updated %s", strings.Join(commit.Components, ", "))
		}
	} else {
		commit.Message = rest
	}

	lower := strings.ToLower(text)
	switch {
	case commit.Type == TypeBreaking:
		commit.Priority = PriorityCritical
	case strings.Contains(lower, markerPriority):
		commit.Priority = PriorityHigh
	default:
		commit.Priority = PriorityNormal
	}

	commit.DevComplete = strings.Contains(lower, markerDevReady)
	commit.Mentions = collectMentions(text)

	return commit
}

// collectBullets trims list markers from the given lines and drops blanks.
func collectBullets(lines []string) []string {
	var bullets []string
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		trimmed = strings.TrimPrefix(trimmed, "-")
		trimmed = strings.TrimPrefix(trimmed, "•")
		trimmed = strings.TrimSpace(trimmed)
		if trimmed == "" {
			continue
		}
		bullets = append(bullets, trimmed)
	}
	return bullets
}

// collectMentions extracts bracketed @tokens, lowercased, deduplicated,
// keeping first-appearance order.
func collectMentions(text string) []string {
	var mentions []string
	seen := map[string]bool{}
	for _, m := range mentionRe.FindAllStringSubmatch(text, -1) {
		token := strings.ToLower(m[1])
		if seen[token] {
			continue
		}
		seen[token] = true
		mentions = append(mentions, token)
	}
	return mentions
}
