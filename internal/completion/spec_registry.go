package completion

import (
	"sort"
	"strings"

	"github.com/samber/lo"
)

// CompletionSpec is a word list offered for the arguments of a command.
type CompletionSpec struct {
	Command string
	Words   []string
}

// SpecRegistry stores word-list completion specifications per command,
// e.g. "git completes with checkout/cherry-pick/commit".
type SpecRegistry struct {
	specs map[string]CompletionSpec
}

// NewSpecRegistry creates a new SpecRegistry.
func NewSpecRegistry() *SpecRegistry {
	return &SpecRegistry{
		specs: make(map[string]CompletionSpec),
	}
}

// AddSpec adds or updates a completion specification.
func (r *SpecRegistry) AddSpec(spec CompletionSpec) {
	spec.Words = lo.Uniq(spec.Words)
	r.specs[spec.Command] = spec
}

// RemoveSpec removes a completion specification.
func (r *SpecRegistry) RemoveSpec(command string) {
	delete(r.specs, command)
}

// GetSpec retrieves a completion specification.
func (r *SpecRegistry) GetSpec(command string) (CompletionSpec, bool) {
	spec, ok := r.specs[command]
	return spec, ok
}

// ListSpecs returns all completion specifications ordered by command name.
func (r *SpecRegistry) ListSpecs() []CompletionSpec {
	specs := lo.Values(r.specs)
	sort.Slice(specs, func(i, j int) bool {
		return specs[i].Command < specs[j].Command
	})
	return specs
}

// Complete returns the words of spec that start with word, in declaration order.
func (r *SpecRegistry) Complete(spec CompletionSpec, word string) []string {
	return lo.Filter(spec.Words, func(w string, _ int) bool {
		return strings.HasPrefix(w, word)
	})
}
