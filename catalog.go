package featureflags

import (
	"encoding/json"
	"log/slog"
	"slices"

	"github.com/samber/lo"
)

type definition struct {
	key         string
	configName  string
	displayName string
	description string
	category    Category
	group       string
}

// definitions is the declaration order of the catalog.
var definitions = []definition{
	{
		key:         FlagFrontendManagement,
		configName:  "enableFrontendModify",
		displayName: "Frontend feature flag management",
		description: "When enabled allows controlling problem pattern feature flags from the main app UI.",
		category:    CategoryConfig,
		group:       GroupFeatureManagement,
	},
	{
		key:         FlagDBNotResponding,
		configName:  "enableDbNotResponding",
		displayName: "DB not responding",
		description: "When enabled, the DB not responding will be simulated, causing errors when creating new transactions.",
		category:    CategoryProblemPattern,
		group:       GroupDatabaseIssues,
	},
	{
		key:         FlagErgoAggregatorSlowdown,
		configName:  "enableErgoAggregatorSlowdown",
		displayName: "Ergo aggregator slowdown",
		description: "When enabled, the OfferService will respond with delays to 2 out of 5 AggregatorServices querying it.",
		category:    CategoryProblemPattern,
		group:       GroupDatabaseIssues,
	},
	{
		key:         FlagFactoryCrisis,
		configName:  "enableFactoryCrisis",
		displayName: "Factory crisis",
		description: "When enabled, the factory won't produce new cards, causing the Third Party Service to fail.",
		category:    CategoryProblemPattern,
		group:       GroupFeatureManagement,
	},
	{
		key:         FlagCreditCardMeltdown,
		configName:  "enableCreditCardMeltdown",
		displayName: "OrderController service error",
		description: "When enabled, checking the latest status will result in a division by 0 error.",
		category:    CategoryProblemPattern,
		group:       GroupErrorHandling,
	},
	{
		key:         FlagHighCPUUsage,
		configName:  "enableHighCpuUsage",
		displayName: "K8s: high CPU usage",
		description: "Causes a slowdown of broker-service response time and increases CPU usage.",
		category:    CategoryProblemPattern,
		group:       GroupPerformanceIssues,
	},
	{
		key:         FlagDelaySimulation,
		configName:  "enableDelaySimulation",
		displayName: "Simulate delays in broker service",
		description: "When enabled, the broker service will introduce artificial delays to simulate network latency.",
		category:    CategoryProblemPattern,
		group:       GroupPerformanceIssues,
	},
	{
		key:         FlagLargePayload,
		configName:  "enableLargePayload",
		displayName: "Create large payload response",
		description: "When enabled, the credit card service will respond with a large payload response.",
		category:    CategoryProblemPattern,
		group:       GroupPayloadIssues,
	},
	{
		key:         FlagUndefinedVariableError,
		configName:  "enableUndefinedVariableError",
		displayName: "Simulate undefined variable error",
		description: "When enabled, the response will simulate a JavaScript undefined variable error.",
		category:    CategoryProblemPattern,
		group:       GroupPayloadIssues,
	},
	{
		key:         FlagSessionExpired,
		configName:  "enableSessionExpiredError",
		displayName: "Simulate expired Session",
		description: "When enabled, the response will simulate an expired session.",
		category:    CategoryProblemPattern,
		group:       GroupErrorHandling,
	},
	{
		key:         FlagRateLimitError,
		configName:  "enableRateLimitError",
		displayName: "Simulate rate limit error",
		description: "When enabled, there will be a rate limit error.",
		category:    CategoryProblemPattern,
		group:       GroupErrorHandling,
	},
	{
		key:         FlagTimeoutError,
		configName:  "enableTimeoutError",
		displayName: "Simulate timeout error",
		description: "When enabled, it will simulate a timeout error due to a large delay.",
		category:    CategoryProblemPattern,
		group:       GroupErrorHandling,
	},
}

// BuildEvent summarises one group of a freshly built catalog.
type BuildEvent struct {
	Group string
	Keys  []string
}

// Catalog is the grouped, read-only view of every declared flag.
type Catalog struct {
	groups []string
	byName map[string][]Flag
	byKey  map[string]Flag
}

// BuildCatalog resolves every declared flag against src and groups the result.
// Problem pattern flags are modifiable when modifyEnabled is set; config flags
// never are. The returned events describe the groups and are not logged here.
func BuildCatalog(src ConfigSource, modifyEnabled bool) (*Catalog, []BuildEvent) {
	flags := lo.Map(definitions, func(d definition, _ int) Flag {
		return Flag{
			Key:         d.key,
			Enabled:     lookupBool(src, d.configName),
			DisplayName: d.displayName,
			Description: d.description,
			Modifiable:  d.category == CategoryProblemPattern && modifyEnabled,
			Category:    d.category,
			Group:       d.group,
		}
	})

	c := &Catalog{
		groups: lo.Uniq(lo.Map(flags, func(f Flag, _ int) string { return f.Group })),
		byName: lo.GroupBy(flags, func(f Flag) string { return f.Group }),
		byKey:  lo.KeyBy(flags, func(f Flag) string { return f.Key }),
	}

	events := make([]BuildEvent, 0, len(c.groups))
	for _, g := range c.groups {
		events = append(events, BuildEvent{
			Group: g,
			Keys:  lo.Map(c.byName[g], func(f Flag, _ int) string { return f.Key }),
		})
	}
	return c, events
}

// Groups returns group names in the order they first appear in the declarations.
func (c *Catalog) Groups() []string {
	return slices.Clone(c.groups)
}

// Group returns the flags of a group in declaration order.
func (c *Catalog) Group(name string) []Flag {
	return slices.Clone(c.byName[name])
}

// Flags returns every flag, group by group.
func (c *Catalog) Flags() []Flag {
	all := make([]Flag, 0, len(c.byKey))
	for _, g := range c.groups {
		all = append(all, c.byName[g]...)
	}
	return all
}

func (c *Catalog) Lookup(key string) (Flag, bool) {
	f, ok := c.byKey[key]
	return f, ok
}

func (c *Catalog) Len() int {
	return len(c.byKey)
}

// MarshalJSON encodes the catalog as {group: [flag, ...]}.
func (c *Catalog) MarshalJSON() ([]byte, error) {
	if c == nil || len(c.byName) == 0 {
		return []byte("{}"), nil
	}
	return json.Marshal(c.byName)
}

// LogBuildEvents writes one debug record per group.
func LogBuildEvents(log *slog.Logger, events []BuildEvent) {
	for _, e := range events {
		log.Debug("flag group built",
			slog.String("group", e.Group),
			slog.Any("flags", e.Keys),
		)
	}
}
