package deal

// CanMove reports whether a deal may leave current for target. A deal still in
// onboarding cannot move anywhere else until a valuation document is attached.
// Every other pair is allowed.
func CanMove(current, target Stage, hasValuationDocument bool) bool {
	if current == StageOnboarding && target != StageOnboarding {
		return hasValuationDocument
	}

	return true
}
