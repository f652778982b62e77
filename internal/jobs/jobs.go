package jobs

import (
	_ "embed"
	"errors"
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sozercan/techtalk-hub/apimodels"
)

//go:embed catalog.yaml
var catalogYAML []byte

// CustomCategory is the category shown for jobs typed in by the user.
const CustomCategory = "Custom"

const customIcon = "💼"

type Job struct {
	Value string `yaml:"value" json:"value"`
	Label string `yaml:"label" json:"label"`
	Icon  string `yaml:"icon" json:"icon"`
}

type Category struct {
	Name string `yaml:"name" json:"name"`
	Jobs []Job  `yaml:"jobs" json:"jobs"`
}

type ExperienceLevel struct {
	Value string `yaml:"value" json:"value"`
	Label string `yaml:"label" json:"label"`
}

type Catalog struct {
	Categories       []Category        `yaml:"categories" json:"categories"`
	ExperienceLevels []ExperienceLevel `yaml:"experienceLevels" json:"experienceLevels"`
}

// Load parses the embedded catalog.
func Load() (*Catalog, error) {
	return Parse(catalogYAML)
}

func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing job catalog: %w", err)
	}

	seen := make(map[string]bool)
	for _, cat := range c.Categories {
		for _, j := range cat.Jobs {
			if j.Value == "" || j.Label == "" {
				return nil, fmt.Errorf("job catalog: category %q has a job without value or label", cat.Name)
			}
			if seen[j.Value] {
				return nil, fmt.Errorf("job catalog: duplicate job value %q", j.Value)
			}
			seen[j.Value] = true
		}
	}
	return &c, nil
}

// Find returns the descriptor of the preset job with the given value.
func (c *Catalog) Find(value string) (Descriptor, bool) {
	for _, cat := range c.Categories {
		for _, j := range cat.Jobs {
			if j.Value == value {
				return Descriptor{
					Title:    j.Label,
					Category: cat.Name,
					Icon:     j.Icon,
					Preset:   true,
				}, true
			}
		}
	}
	return Descriptor{}, false
}

func (c *Catalog) ValidExperience(value string) bool {
	return slices.ContainsFunc(c.ExperienceLevels, func(l ExperienceLevel) bool {
		return l.Value == value
	})
}

// ErrNoJob is returned by Resolve when neither a preset nor a title is given.
var ErrNoJob = errors.New("no preset job or custom title given")

// Resolve picks the preset job when one is named and the custom title
// otherwise. Skills and experience only apply to custom jobs.
func (c *Catalog) Resolve(preset, title, skills, experience string) (Descriptor, error) {
	if preset = strings.TrimSpace(preset); preset != "" {
		job, ok := c.Find(preset)
		if !ok {
			return Descriptor{}, fmt.Errorf("unknown job %q", preset)
		}
		return job, nil
	}

	if strings.TrimSpace(title) == "" {
		return Descriptor{}, ErrNoJob
	}

	job := Custom(title, skills, experience)
	if job.Experience != "" && !c.ValidExperience(job.Experience) {
		return Descriptor{}, fmt.Errorf("unknown experience level %q", job.Experience)
	}
	return job, nil
}

// Descriptor is the job an automation analysis runs for.
type Descriptor struct {
	Title      string
	Category   string
	Icon       string
	Skills     string
	Experience string
	Preset     bool
}

// Custom builds the descriptor for a user-entered job title.
func Custom(title, skills, experience string) Descriptor {
	return Descriptor{
		Title:      strings.TrimSpace(title),
		Category:   CustomCategory,
		Icon:       customIcon,
		Skills:     strings.TrimSpace(skills),
		Experience: strings.TrimSpace(experience),
	}
}

// String is the job text embedded in the automation prompt. Preset jobs
// render as "Title (Category)"; custom jobs append skills and experience
// when present.
func (d Descriptor) String() string {
	if d.Preset {
		return fmt.Sprintf("%s (%s)", d.Title, d.Category)
	}

	var sb strings.Builder
	sb.WriteString(d.Title)
	if d.Skills != "" {
		sb.WriteString(" - Skills: ")
		sb.WriteString(d.Skills)
	}
	if d.Experience != "" {
		sb.WriteString(" - Experience: ")
		sb.WriteString(d.Experience)
	}
	return sb.String()
}

// Summary is the job as echoed back next to an automation result.
func (d Descriptor) Summary() *apimodels.Job {
	return &apimodels.Job{
		Label:      d.Title,
		Icon:       d.Icon,
		Category:   d.Category,
		Skills:     d.Skills,
		Experience: d.Experience,
	}
}
