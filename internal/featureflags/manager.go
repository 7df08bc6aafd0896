package featureflags

import (
	"hash/fnv"
	"sort"
	"strconv"
	"strings"
)

// Known flags.
const (
	// SearchMatchAll makes multi-word searches require every term instead of any.
	SearchMatchAll = "search_match_all"
	// AnonymousFeedCache set to off disables the anonymous feed cache even when FEED_CACHE_TTL_SECONDS > 0.
	AnonymousFeedCache = "anonymous_feed_cache"
)

// Manager evaluates feature flags defined in a simple key=value list.
// Example: "search_match_all=on,anonymous_feed_cache=25%"
type Manager struct {
	flags map[string]string
}

// NewManager creates a feature-flag manager from a comma-separated config string.
func NewManager(raw string) *Manager {
	out := make(map[string]string)

	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		parts := strings.SplitN(pair, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := normalize(parts[0])
		value := normalize(parts[1])
		if key == "" || value == "" {
			continue
		}
		out[key] = value
	}

	return &Manager{flags: out}
}

// Enabled returns whether a flag is enabled for a given account hash.
// Supported values:
// - on/true/1
// - off/false/0
// - N% (deterministic per-account rollout, e.g. 25%); anonymous callers are never in a partial rollout
func (m *Manager) Enabled(name string, account string) bool {
	if m == nil {
		return false
	}

	value, ok := m.flags[normalize(name)]
	if !ok {
		return false
	}

	switch value {
	case "on", "true", "1":
		return true
	case "off", "false", "0":
		return false
	}

	if pctRaw, isPct := strings.CutSuffix(value, "%"); isPct {
		pct, err := strconv.Atoi(pctRaw)
		if err != nil || pct <= 0 {
			return false
		}
		if pct >= 100 {
			return true
		}
		if account == "" {
			return false
		}
		return rolloutBucket(name, account) < pct
	}

	return false
}

// Configured reports whether name has any value set.
func (m *Manager) Configured(name string) bool {
	if m == nil {
		return false
	}
	_, ok := m.flags[normalize(name)]
	return ok
}

// Raw returns a copy of configured flags.
func (m *Manager) Raw() map[string]string {
	if m == nil {
		return map[string]string{}
	}
	out := make(map[string]string, len(m.flags))
	for k, v := range m.flags {
		out[k] = v
	}
	return out
}

// Names returns the configured flag names in sorted order.
func (m *Manager) Names() []string {
	raw := m.Raw()
	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Snapshot returns evaluated flag status for one account.
func (m *Manager) Snapshot(account string) map[string]bool {
	names := m.Names()
	out := make(map[string]bool, len(names))
	for _, name := range names {
		out[name] = m.Enabled(name, account)
	}
	return out
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func rolloutBucket(name string, account string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(normalize(name) + ":" + account))
	return int(h.Sum32() % 100)
}
