package config

import (
	"os"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"

	"figrelay/pkg/domain/model"
)

// Rules holds the notification rule file configuration and registry path.
type Rules struct {
	Path   string
	DBPath string
}

// Flags returns CLI flags for rules configuration
func (c *Rules) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "rules",
			Usage:       "Path to the TOML notification rules file",
			Required:    true,
			Destination: &c.Path,
			Sources:     cli.EnvVars("FIGRELAY_RULES"),
		},
		&cli.StringFlag{
			Name:        "db",
			Usage:       "Path to the SQLite message registry (in-memory if empty)",
			Destination: &c.DBPath,
			Sources:     cli.EnvVars("FIGRELAY_DB"),
		},
	}
}

// rulesFile mirrors the TOML rules file layout.
type rulesFile struct {
	ThrottleKey string            `toml:"throttle_key"`
	Mentions    map[string]string `toml:"mentions"`

	Guard struct {
		DedupTTLSeconds   int `toml:"dedup_ttl_seconds"`
		RateWindowSeconds int `toml:"rate_window_seconds"`
		RateLimit         int `toml:"rate_limit"`
	} `toml:"guard"`

	Destinations []struct {
		ID           string         `toml:"id"`
		Name         string         `toml:"name"`
		Channel      string         `toml:"channel"`
		AlwaysNotify []string       `toml:"always_notify"`
		NeverNotify  []string       `toml:"never_notify"`
		Throttle     map[string]int `toml:"throttle"`
	} `toml:"destination"`
}

// GuardTuning is the optional guard override block of the rules file.
type GuardTuning struct {
	DedupTTL   time.Duration
	RateWindow time.Duration
	RateLimit  int
}

// Load parses the rules file into immutable lookup structures.
func (c *Rules) Load() (*model.NotifyRules, *GuardTuning, error) {
	data, err := os.ReadFile(c.Path)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to read rules file", goerr.V("path", c.Path))
	}

	var file rulesFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, nil, goerr.Wrap(err, "failed to parse rules file", goerr.V("path", c.Path))
	}

	rules := &model.NotifyRules{
		ThrottleKey:   model.ThrottleByPriority,
		Destinations:  make(map[string]*model.DestinationPolicy),
		MentionGroups: file.Mentions,
	}

	switch file.ThrottleKey {
	case "", string(model.ThrottleByPriority):
		// default
	case string(model.ThrottleByType):
		rules.ThrottleKey = model.ThrottleByType
	default:
		return nil, nil, goerr.New("unknown throttle_key", goerr.V("throttle_key", file.ThrottleKey))
	}

	for _, d := range file.Destinations {
		if d.ID == "" {
			return nil, nil, goerr.New("destination without id in rules file")
		}
		policy := &model.DestinationPolicy{
			ID:      d.ID,
			Name:    d.Name,
			Channel: d.Channel,
		}
		if policy.Name == "" {
			policy.Name = d.ID
		}
		for _, t := range d.AlwaysNotify {
			policy.AlwaysNotify = append(policy.AlwaysNotify, model.CommitType(t))
		}
		for _, t := range d.NeverNotify {
			policy.NeverNotify = append(policy.NeverNotify, model.CommitType(t))
		}
		if len(d.Throttle) > 0 {
			policy.ThrottleMinutes = make(map[model.Priority]int, len(d.Throttle))
			for pr, minutes := range d.Throttle {
				policy.ThrottleMinutes[model.Priority(pr)] = minutes
			}
		}
		rules.Destinations[d.ID] = policy
	}

	tuning := &GuardTuning{}
	if file.Guard.DedupTTLSeconds > 0 {
		tuning.DedupTTL = time.Duration(file.Guard.DedupTTLSeconds) * time.Second
	}
	if file.Guard.RateWindowSeconds > 0 {
		tuning.RateWindow = time.Duration(file.Guard.RateWindowSeconds) * time.Second
	}
	tuning.RateLimit = file.Guard.RateLimit

	return rules, tuning, nil
}
