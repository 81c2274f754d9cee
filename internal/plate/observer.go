package plate

// Observer receives events from the matcher and resolver. Implementations
// must not retain or mutate the values they are handed.
type Observer interface {
	MatchFound(Match)
	CorrectionResolved(Match, Correction)
}

// NopObserver ignores every event.
type NopObserver struct{}

func (NopObserver) MatchFound(Match) {}

func (NopObserver) CorrectionResolved(Match, Correction) {}

// ObserverFuncs adapts plain functions to Observer. Nil fields are skipped.
type ObserverFuncs struct {
	OnMatch      func(Match)
	OnCorrection func(Match, Correction)
}

func (o ObserverFuncs) MatchFound(m Match) {
	if o.OnMatch != nil {
		o.OnMatch(m)
	}
}

func (o ObserverFuncs) CorrectionResolved(m Match, c Correction) {
	if o.OnCorrection != nil {
		o.OnCorrection(m, c)
	}
}
