package keybinds

import (
	"fmt"
	"strings"
)

// ValidationError represents a keybinding validation error
type ValidationError struct {
	Type    string // "conflict", "invalid", "unknown", "warning"
	Action  Action
	Key     string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s for action '%s': %s", e.Type, e.Key, e.Action, e.Message)
}

// ValidationResult contains all validation errors and warnings
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// HasErrors returns true if there are any errors
func (r *ValidationResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// HasWarnings returns true if there are any warnings
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// String returns a human-readable summary of validation results
func (r *ValidationResult) String() string {
	var sb strings.Builder

	if len(r.Errors) > 0 {
		sb.WriteString(fmt.Sprintf("Errors (%d):\n", len(r.Errors)))
		for _, err := range r.Errors {
			sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
		}
	}

	if len(r.Warnings) > 0 {
		sb.WriteString(fmt.Sprintf("Warnings (%d):\n", len(r.Warnings)))
		for _, warn := range r.Warnings {
			sb.WriteString(fmt.Sprintf("  - %s\n", warn.Error()))
		}
	}

	if !r.HasErrors() && !r.HasWarnings() {
		sb.WriteString("No issues found")
	}

	return sb.String()
}

// Validator validates keybinding configurations
type Validator struct {
	// reservedKeys are keys that should not be rebound
	reservedKeys map[string]bool
}

// NewValidator creates a new keybinding validator
func NewValidator() *Validator {
	return &Validator{
		reservedKeys: map[string]bool{
			ReservedCombo: true, // Force quit should always work
		},
	}
}

// ValidateRegistry validates an entire registry
func (v *Validator) ValidateRegistry(registry *Registry) *ValidationResult {
	result := &ValidationResult{
		Errors:   []ValidationError{},
		Warnings: []ValidationError{},
	}

	v.checkActions(registry, result)
	v.checkCombos(registry, result)
	v.checkConflicts(registry, result)
	v.checkReservedKeys(registry, result)

	return result
}

// ValidateConfig validates a configuration applied over the defaults
func (v *Validator) ValidateConfig(config *Config) *ValidationResult {
	registry := NewDefaultRegistry()
	ApplyConfig(registry, config)
	return v.ValidateRegistry(registry)
}

func (v *Validator) checkActions(registry *Registry, result *ValidationResult) {
	for _, action := range registry.Actions() {
		if !action.IsKnown() {
			result.Errors = append(result.Errors, ValidationError{
				Type:    "unknown",
				Action:  action,
				Message: "no such action",
			})
		}
	}
}

func (v *Validator) checkCombos(registry *Registry, result *ValidationResult) {
	for _, action := range registry.Actions() {
		for _, combo := range registry.Combos(action) {
			if err := ValidateKey(combo); err != nil {
				result.Errors = append(result.Errors, ValidationError{
					Type:    "invalid",
					Action:  action,
					Key:     combo,
					Message: err.Error(),
				})
			}
		}
	}
}

// checkConflicts reports combos bound to more than one action
func (v *Validator) checkConflicts(registry *Registry, result *ValidationResult) {
	owners := make(map[string][]Action)
	var order []string
	for _, action := range registry.Actions() {
		for _, combo := range registry.Combos(action) {
			if _, seen := owners[combo]; !seen {
				order = append(order, combo)
			}
			owners[combo] = append(owners[combo], action)
		}
	}

	for _, combo := range order {
		actions := owners[combo]
		if len(actions) < 2 {
			continue
		}
		names := make([]string, len(actions))
		for i, a := range actions {
			names[i] = string(a)
		}
		result.Errors = append(result.Errors, ValidationError{
			Type:    "conflict",
			Action:  actions[0],
			Key:     combo,
			Message: fmt.Sprintf("bound to %d actions (%s)", len(actions), strings.Join(names, ", ")),
		})
	}
}

// checkReservedKeys checks if any reserved keys have been rebound
func (v *Validator) checkReservedKeys(registry *Registry, result *ValidationResult) {
	for _, action := range registry.Actions() {
		for _, combo := range registry.Combos(action) {
			if v.reservedKeys[combo] && action != ActionQuit {
				result.Warnings = append(result.Warnings, ValidationError{
					Type:    "warning",
					Action:  action,
					Key:     combo,
					Message: "reserved key rebound (it always quits)",
				})
			}
		}
	}
}

// FindConflicts finds all conflicting keybindings in a config
func FindConflicts(config *Config) []string {
	validator := NewValidator()
	result := validator.ValidateConfig(config)

	var conflicts []string
	for _, err := range result.Errors {
		if err.Type == "conflict" {
			conflicts = append(conflicts, err.Error())
		}
	}

	return conflicts
}

// ValidateKey checks if a combo string is valid
func ValidateKey(key string) error {
	if key == "" {
		return fmt.Errorf("key cannot be empty")
	}
	_, err := NormalizeCombo(key)
	return err
}
