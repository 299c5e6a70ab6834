// Package strategy selects how a calendar query gets answered.
//
// Two implementations exist: RuleStrategy runs the deterministic engine and
// never fails, LLMStrategy delegates to an OpenAI-compatible chat completions
// endpoint. A Resolver composes them so that any LLM failure falls back to
// the rule engine, keeping the answer path total.
package strategy
