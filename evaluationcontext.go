package featureflags

// EvaluationContext is contextual data passed along with an evaluation.
//
// The zero value is an anonymous context with no attributes.
type EvaluationContext struct {
	targetingKey string
	attributes   map[string]interface{}
}

// NewEvaluationContext creates an evaluation context for a targeting key.
func NewEvaluationContext(targetingKey string, attributes map[string]interface{}) (ec EvaluationContext) {
	ec.targetingKey = targetingKey
	// Store a copy of the attribute map
	ec.attributes = make(map[string]interface{}, len(attributes))
	for k, v := range attributes {
		ec.attributes[k] = v
	}
	return ec
}

func (ec EvaluationContext) TargetingKey() string {
	return ec.targetingKey
}

func (ec EvaluationContext) Attribute(name string) (interface{}, bool) {
	v, ok := ec.attributes[name]
	return v, ok
}
