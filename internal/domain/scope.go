package domain

import "strings"

// Reschedule scope values. The scope is composed of two independent axes:
// breadth ("form_" = same booking form only, "all_" = same calendar set)
// and activity restriction ("_self" = same activity, "_custom" = explicit
// allow-list plus the original activity, "_any" = unrestricted).
const (
	ScopeFormSelf   = "form_self"
	ScopeFormCustom = "form_custom"
	ScopeFormAny    = "form_any"
	ScopeAllSelf    = "all_self"
	ScopeAllCustom  = "all_custom"
	ScopeAllAny     = "all_any"
)

// Default scopes when the activity metadata does not set one
const (
	DefaultScopeElevated = ScopeAllSelf
	DefaultScopeFrontend = ScopeFormSelf
)

// ScopeHasBreadthAll reports whether the scope allows any calendar the
// actor may manage (as opposed to the original booking form only)
func ScopeHasBreadthAll(scope string) bool {
	return strings.Contains(scope, "all_")
}

// ScopeHasBreadthForm reports whether the scope is restricted to the
// original booking form
func ScopeHasBreadthForm(scope string) bool {
	return strings.Contains(scope, "form_")
}

// ScopeRestrictsToSelf reports whether only the source activity is allowed
func ScopeRestrictsToSelf(scope string) bool {
	return strings.Contains(scope, "_self")
}

// ScopeRestrictsToCustom reports whether an explicit activity allow-list applies
func ScopeRestrictsToCustom(scope string) bool {
	return strings.Contains(scope, "_custom")
}

// WidenAdminScope keeps the widest of the activity-resolved scope and the
// globally configured admin reschedule scope, for elevated actors.
// Widening happens in two ordered steps: breadth first (form_ -> all_),
// then activity restriction (_self -> _custom, else _self -> _any),
// following the more permissive side on each axis.
func WidenAdminScope(resolvedScope, adminScope string) string {
	if ScopeHasBreadthAll(resolvedScope) && ScopeHasBreadthForm(adminScope) {
		adminScope = strings.Replace(adminScope, "form_", "all_", 1)
	}
	if ScopeRestrictsToCustom(resolvedScope) && ScopeRestrictsToSelf(adminScope) {
		adminScope = strings.Replace(adminScope, "_self", "_custom", 1)
	} else if strings.Contains(resolvedScope, "_any") && ScopeRestrictsToSelf(adminScope) {
		adminScope = strings.Replace(adminScope, "_self", "_any", 1)
	}
	return adminScope
}
