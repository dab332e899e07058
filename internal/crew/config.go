package crew

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"pdf-edit-automation/internal/domain"

	"gopkg.in/yaml.v3"
)

const (
	AnalyzerAgent = "pdf_analyzer"
	ModifierAgent = "pdf_modifier"
	AnalyzeTask   = "analyze_pdf_task"
	ModifyTask    = "modify_pdf_task"

	agentsFile = "agents.yaml"
	tasksFile  = "tasks.yaml"
)

//go:embed config/agents.yaml config/tasks.yaml
var defaultConfig embed.FS

// AgentConfig describes one agent
type AgentConfig struct {
	Role      string `yaml:"role"`
	Goal      string `yaml:"goal"`
	Backstory string `yaml:"backstory"`
}

// TaskConfig describes one task and the agent that performs it
type TaskConfig struct {
	Description    string   `yaml:"description"`
	ExpectedOutput string   `yaml:"expected_output"`
	Agent          string   `yaml:"agent"`
	Context        []string `yaml:"context"`
}

// Config holds the agent and task definitions of the crew
type Config struct {
	Agents map[string]AgentConfig
	Tasks  map[string]TaskConfig
}

// LoadConfig reads agents.yaml and tasks.yaml from dir, falling back to the
// embedded definitions for any file dir does not provide. An empty dir uses
// the embedded definitions only.
func LoadConfig(dir string) (*Config, error) {
	cfg := &Config{}

	agentsData, err := readConfigFile(dir, agentsFile)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(agentsData, &cfg.Agents); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", agentsFile, err)
	}

	tasksData, err := readConfigFile(dir, tasksFile)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(tasksData, &cfg.Tasks); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", tasksFile, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func readConfigFile(dir, name string) ([]byte, error) {
	if dir != "" {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err == nil {
			return data, nil
		}
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
	}
	return defaultConfig.ReadFile("config/" + name)
}

func (c *Config) validate() error {
	for _, name := range []string{AnalyzeTask, ModifyTask} {
		task, ok := c.Tasks[name]
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrUnknownTask, name)
		}
		if _, ok := c.Agents[task.Agent]; !ok {
			return fmt.Errorf("%w: %q assigned to task %s", domain.ErrUnknownAgent, task.Agent, name)
		}
		for _, dep := range task.Context {
			if _, ok := c.Tasks[dep]; !ok {
				return fmt.Errorf("%w: %s in context of %s", domain.ErrUnknownTask, dep, name)
			}
		}
	}
	return nil
}

// interpolate substitutes {name} placeholders with vars and trims the folded YAML text
func interpolate(text string, vars map[string]string) string {
	pairs := make([]string, 0, len(vars)*2)
	for k, v := range vars {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.TrimSpace(strings.NewReplacer(pairs...).Replace(text))
}
