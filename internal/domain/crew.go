package domain

// CrewInputs are the task inputs of one crew run
type CrewInputs struct {
	PDFPath     string `json:"pdf_path"`
	UserRequest string `json:"user_request"`
	OutputPath  string `json:"output_path"`
}

// Vars returns the inputs as template variables for task descriptions
func (in CrewInputs) Vars() map[string]string {
	return map[string]string{
		"pdf_path":     in.PDFPath,
		"user_request": in.UserRequest,
		"output_path":  in.OutputPath,
	}
}

// TaskOutput is what a single task produced
type TaskOutput struct {
	Task   string `json:"task"`
	Agent  string `json:"agent"`
	Output string `json:"output"`
}

// CrewResult is the outcome of a sequential crew run
type CrewResult struct {
	Tasks        []TaskOutput  `json:"tasks"`
	Analysis     string        `json:"analysis"`
	Instruction  string        `json:"instruction"`
	Modification *ModifyResult `json:"modification"`
}

// Final returns the output of the last task, which is the crew's answer
func (r *CrewResult) Final() string {
	if len(r.Tasks) == 0 {
		return ""
	}
	return r.Tasks[len(r.Tasks)-1].Output
}
