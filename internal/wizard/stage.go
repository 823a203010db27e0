package wizard

// Stage is one step of the task entry wizard.
type Stage int

const (
	StageStaging Stage = iota
	StageName
	StageUrgency
	StageStatus
	StageDescription
	StageLatest
	StageTags
	StageFinished
)

func (s Stage) String() string {
	switch s {
	case StageStaging:
		return "Staging"
	case StageName:
		return "Name"
	case StageUrgency:
		return "Urgency"
	case StageStatus:
		return "Status"
	case StageDescription:
		return "Description"
	case StageLatest:
		return "Latest"
	case StageTags:
		return "Tags"
	case StageFinished:
		return "Finished"
	}
	return "Unknown"
}

// The linear stage order lives in two tables so adding a field is a
// data change. Ends map to themselves: next/back never wrap around.
var nextStage = [...]Stage{
	StageStaging:     StageStaging,
	StageName:        StageUrgency,
	StageUrgency:     StageStatus,
	StageStatus:      StageDescription,
	StageDescription: StageLatest,
	StageLatest:      StageTags,
	StageTags:        StageFinished,
	StageFinished:    StageFinished,
}

var prevStage = [...]Stage{
	StageStaging:     StageStaging,
	StageName:        StageName,
	StageUrgency:     StageName,
	StageStatus:      StageUrgency,
	StageDescription: StageStatus,
	StageLatest:      StageDescription,
	StageTags:        StageLatest,
	StageFinished:    StageTags,
}

// Mode selects how the wizard walks its stages.
type Mode int

const (
	// ModeAdd walks every stage from Name to Finished.
	ModeAdd Mode = iota
	// ModeUpdate starts at the Staging menu and edits one field at a
	// time.
	ModeUpdate
	// ModeQuickAdd only asks for a name.
	ModeQuickAdd
)

func (m Mode) String() string {
	switch m {
	case ModeUpdate:
		return "Update"
	case ModeQuickAdd:
		return "QuickAdd"
	}
	return "Add"
}
