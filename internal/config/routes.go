package config

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/farewatch/farewatch-cli/internal/model"
)

// LoadRoutes reads route tasks from a YAML file and validates every task.
// Duplicate task IDs are rejected so the history store stays unambiguous.
func LoadRoutes(path string) ([]model.RouteTask, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "config: read routes %s", path)
	}

	// The YAML has a top-level "routes" key
	var wrapper struct {
		Routes []model.RouteTask `yaml:"routes"`
	}
	if err := yaml.Unmarshal(data, &wrapper); err != nil {
		return nil, eris.Wrap(err, "config: parse routes")
	}
	if len(wrapper.Routes) == 0 {
		return nil, eris.Errorf("config: no routes defined in %s", path)
	}

	seen := make(map[string]bool, len(wrapper.Routes))
	for _, task := range wrapper.Routes {
		if err := task.Validate(); err != nil {
			return nil, err
		}
		if seen[task.ID] {
			return nil, eris.Errorf("config: duplicate route id %q", task.ID)
		}
		seen[task.ID] = true
	}

	return wrapper.Routes, nil
}

// FindRoute returns the task with the given ID.
func FindRoute(tasks []model.RouteTask, id string) (model.RouteTask, error) {
	for _, t := range tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return model.RouteTask{}, eris.Errorf("config: unknown route id %q", id)
}
