package project

// SetTitle returns an UpdateSetter that sets the project's title.
func SetTitle(title string) UpdateSetter {
	return func(p *Project) error {
		if title == "" {
			return ErrInvalidTitle
		}
		p.Title = title
		return nil
	}
}

// SetDescription returns an UpdateSetter that sets the project's description.
func SetDescription(description string) UpdateSetter {
	return func(p *Project) error {
		p.Description = description
		return nil
	}
}

// SetImageURL returns an UpdateSetter that sets the project's image URL.
func SetImageURL(url string) UpdateSetter {
	return func(p *Project) error {
		p.ImageURL = url
		return nil
	}
}

// SetStatus returns an UpdateSetter that sets the project's status.
func SetStatus(status Status) UpdateSetter {
	return func(p *Project) error {
		p.Status = status
		return nil
	}
}

// SetProgress returns an UpdateSetter that sets the project's progress percentage.
func SetProgress(progress int) UpdateSetter {
	return func(p *Project) error {
		p.Progress = progress
		return nil
	}
}

// SetStats returns an UpdateSetter that replaces the project's stats.
func SetStats(stats Stats) UpdateSetter {
	return func(p *Project) error {
		p.Stats = stats
		return nil
	}
}

// SetTechnologies returns an UpdateSetter that replaces the project's technologies.
func SetTechnologies(technologies []Technology) UpdateSetter {
	return func(p *Project) error {
		p.Technologies = technologies
		return nil
	}
}

// SetObjectives returns an UpdateSetter that replaces the project's objectives.
func SetObjectives(objectives []Objective) UpdateSetter {
	return func(p *Project) error {
		p.Objectives = objectives
		return nil
	}
}

// SetSkillsNeeded returns an UpdateSetter that replaces the needed skills.
func SetSkillsNeeded(skills []string) UpdateSetter {
	return func(p *Project) error {
		p.SkillsNeeded = skills
		return nil
	}
}
