package featureflags

// Category is the functional kind of a flag.
type Category string

const (
	// CategoryConfig flags configure the flag service itself and are never modifiable.
	CategoryConfig Category = "config"
	// CategoryProblemPattern flags switch on a simulated operational problem.
	CategoryProblemPattern Category = "problem_pattern"
)

// Logical groups used to present the catalog.
const (
	GroupFeatureManagement = "Feature Management"
	GroupDatabaseIssues    = "Database Issues"
	GroupErrorHandling     = "Error Handling"
	GroupPerformanceIssues = "Performance Issues"
	GroupPayloadIssues     = "Payload Issues"
)

// Flag keys known to the catalog.
const (
	FlagFrontendManagement     = "frontend_feature_flag_management"
	FlagDBNotResponding        = "db_not_responding"
	FlagErgoAggregatorSlowdown = "ergo_aggregator_slowdown"
	FlagFactoryCrisis          = "factory_crisis"
	FlagCreditCardMeltdown     = "credit_card_meltdown"
	FlagHighCPUUsage           = "high_cpu_usage"
	FlagDelaySimulation        = "delay_simulation"
	FlagLargePayload           = "large_payload"
	FlagUndefinedVariableError = "undefined_variable_error"
	FlagSessionExpired         = "session_expired"
	FlagRateLimitError         = "rate_limit_error"
	FlagTimeoutError           = "timeout_error"
)

// Flag describes one catalog entry. Values are fixed once the catalog is built.
type Flag struct {
	Key         string   `json:"key"`
	Enabled     bool     `json:"enabled"`
	DisplayName string   `json:"displayName"`
	Description string   `json:"description"`
	Modifiable  bool     `json:"modifiable"`
	Category    Category `json:"category"`
	Group       string   `json:"-"`
}
