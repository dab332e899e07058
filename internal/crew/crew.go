package crew

import (
	"context"
	"fmt"
	"strings"

	"pdf-edit-automation/internal/domain"
	apperrors "pdf-edit-automation/pkg/errors"
)

// Crew runs the analyze and modify tasks in sequence
type Crew struct {
	config   *Config
	llm      domain.LLM
	reader   *ReaderTool
	modifier *ModifyTool
	parser   domain.InstructionParser
	logger   domain.Logger
}

// New creates a crew. With a nil llm the analysis step passes the user
// request through unchanged.
func New(
	config *Config,
	llm domain.LLM,
	extractor domain.ContentExtractor,
	modifier domain.PDFModifier,
	parser domain.InstructionParser,
	logger domain.Logger,
) *Crew {
	return &Crew{
		config:   config,
		llm:      llm,
		reader:   NewReaderTool(extractor),
		modifier: NewModifyTool(modifier),
		parser:   parser,
		logger:   logger,
	}
}

// Kickoff analyzes the request against the PDF and then runs the modify tool
func (c *Crew) Kickoff(ctx context.Context, inputs domain.CrewInputs) (*domain.CrewResult, error) {
	if strings.TrimSpace(inputs.UserRequest) == "" {
		return nil, apperrors.NewValidationError("No modification request provided.", domain.ErrEmptyRequest.Error())
	}
	if inputs.PDFPath == "" || inputs.OutputPath == "" {
		return nil, apperrors.NewValidationError("pdf path and output path are required")
	}

	vars := inputs.Vars()
	result := &domain.CrewResult{}

	analyzeTask := c.config.Tasks[AnalyzeTask]
	c.logger.Info("Starting task", "task", AnalyzeTask, "agent", analyzeTask.Agent)
	analysis, err := c.analyze(ctx, analyzeTask, vars, inputs)
	if err != nil {
		return nil, err
	}
	result.Analysis = analysis
	result.Tasks = append(result.Tasks, domain.TaskOutput{Task: AnalyzeTask, Agent: analyzeTask.Agent, Output: analysis})

	modifyTask := c.config.Tasks[ModifyTask]
	c.logger.Info("Starting task", "task", ModifyTask, "agent", modifyTask.Agent)
	result.Instruction = c.chooseInstruction(analysis, inputs.UserRequest)

	modification, err := c.modifier.Run(ctx, inputs.PDFPath, result.Instruction, inputs.OutputPath)
	if err != nil {
		c.logger.Error("Modify task failed", err, "pdf_path", inputs.PDFPath)
		return nil, err
	}
	result.Modification = modification
	result.Tasks = append(result.Tasks, domain.TaskOutput{Task: ModifyTask, Agent: modifyTask.Agent, Output: modification.Message})

	c.logger.Info("Crew finished", "output_path", modification.OutputPath, "replacements", modification.Replacements.Len())
	return result, nil
}

func (c *Crew) analyze(ctx context.Context, task TaskConfig, vars map[string]string, inputs domain.CrewInputs) (string, error) {
	content, err := c.reader.Run(inputs.PDFPath)
	if err != nil {
		return "", err
	}
	if c.llm == nil {
		c.logger.Debug("No language model configured; using the request as the analysis")
		return inputs.UserRequest, nil
	}

	prompt := c.buildPrompt(task, vars, content)
	analysis, err := c.llm.Generate(ctx, prompt)
	if err != nil {
		c.logger.Error("Analysis failed", err, "model", c.llm.Model())
		return "", err
	}
	return strings.TrimSpace(analysis), nil
}

func (c *Crew) buildPrompt(task TaskConfig, vars map[string]string, content string) string {
	agent := c.config.Agents[task.Agent]

	var sb strings.Builder
	fmt.Fprintf(&sb, "You are %s.\n%s\n\nYour goal: %s\n\n",
		interpolate(agent.Role, vars), interpolate(agent.Backstory, vars), interpolate(agent.Goal, vars))
	fmt.Fprintf(&sb, "Task: %s\n\nExpected output: %s\n\n",
		interpolate(task.Description, vars), interpolate(task.ExpectedOutput, vars))
	fmt.Fprintf(&sb, "Output of %s for %s:\n%s\n", c.reader.Name(), vars["pdf_path"], content)
	return sb.String()
}

// chooseInstruction prefers the analysis when it contains parseable instructions
func (c *Crew) chooseInstruction(analysis, userRequest string) string {
	if replacements, _ := c.parser.Parse(analysis); replacements.Len() > 0 {
		return analysis
	}
	c.logger.Warn("Analysis has no replacement instructions; using the original request")
	return userRequest
}
