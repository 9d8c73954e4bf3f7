package goal

// StepGoal цели по шагам. Недельная цель не обязана быть семикратной дневной.
type StepGoal struct {
	Daily   int `json:"daily" yaml:"daily"`
	Weekly  int `json:"weekly" yaml:"weekly"`
	Monthly int `json:"monthly" yaml:"monthly"`
	Version int `json:"version,omitempty" yaml:"version,omitempty"`
}

func Default() StepGoal {
	return StepGoal{
		Daily:   5000,
		Weekly:  35000,
		Monthly: 150000,
	}
}
