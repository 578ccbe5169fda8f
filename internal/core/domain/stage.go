package domain

import "fmt"

// Stage identifies one decision point in the approval chain.
type Stage string

const (
	StageFieldOfficer Stage = "field_officer"
	StageManager      Stage = "manager"
	StageDirector     Stage = "director"
	StageChairperson  Stage = "chairperson"
	StageCEO          Stage = "ceo"
)

// stageOrder is the single authoritative ordering of the approval chain.
// Both the transition engine and the weekly report aggregator consume it;
// no other package may define its own copy.
var stageOrder = [...]Stage{
	StageFieldOfficer,
	StageManager,
	StageDirector,
	StageChairperson,
	StageCEO,
}

// StageOrder returns the approval chain in decision order.
func StageOrder() []Stage {
	s := make([]Stage, len(stageOrder))
	copy(s, stageOrder[:])
	return s
}

// FirstStage is where every freshly bootstrapped workflow starts.
func FirstStage() Stage { return stageOrder[0] }

// Index returns the position of the stage in the chain, or an error for a
// value outside the known set. An unknown value reaching this point means the
// stored workflow row is corrupt, since the bootstrap layer only ever writes
// known stages.
func (s Stage) Index() (int, error) {
	for i, st := range stageOrder {
		if st == s {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown workflow stage %q", string(s))
}

// IsValid reports whether the stage is one of the five known values.
func (s Stage) IsValid() bool {
	_, err := s.Index()
	return err == nil
}

// IsFinal reports whether the stage is the last decision point (CEO).
func (s Stage) IsFinal() bool { return s == stageOrder[len(stageOrder)-1] }

// Next returns the stage after s in the chain. ok is false when s is the
// final stage or not a known stage.
func (s Stage) Next() (Stage, bool) {
	i, err := s.Index()
	if err != nil || i == len(stageOrder)-1 {
		return "", false
	}
	return stageOrder[i+1], true
}

// DisplayName returns a human readable form used in notifications and the
// audit log ("Field Officer", "CEO", ...).
func (s Stage) DisplayName() string {
	switch s {
	case StageFieldOfficer:
		return "Field Officer"
	case StageManager:
		return "Manager"
	case StageDirector:
		return "Director"
	case StageChairperson:
		return "Chairperson"
	case StageCEO:
		return "CEO"
	}
	return string(s)
}

// ReportingStages are the roles the weekly report aggregates over. The field
// officer stage is intake, not management review, so it is excluded.
func ReportingStages() []Stage {
	return []Stage{StageManager, StageDirector, StageChairperson, StageCEO}
}
