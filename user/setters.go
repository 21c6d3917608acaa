package user

// SetFirstName returns an UpdateSetter that sets the user's first name.
func SetFirstName(name string) UpdateSetter {
	return func(u *User) error {
		if name == "" {
			return ErrInvalidName
		}
		u.FirstName = name
		return nil
	}
}

// SetLastName returns an UpdateSetter that sets the user's last name.
func SetLastName(name string) UpdateSetter {
	return func(u *User) error {
		if name == "" {
			return ErrInvalidName
		}
		u.LastName = name
		return nil
	}
}

// SetUsername returns an UpdateSetter that sets the user's username.
func SetUsername(username string) UpdateSetter {
	return func(u *User) error {
		if username == "" {
			return ErrInvalidUsername
		}
		u.Username = username
		return nil
	}
}

// SetPassword returns an UpdateSetter that sets the user's password.
func SetPassword(password string) UpdateSetter {
	return func(u *User) error {
		return u.SetPassword(password)
	}
}

// SetBio returns an UpdateSetter that sets the user's bio.
func SetBio(bio string) UpdateSetter {
	return func(u *User) error {
		u.Bio = bio
		return nil
	}
}

// SetBirthDate returns an UpdateSetter that sets the user's birth date.
func SetBirthDate(birthDate string) UpdateSetter {
	return func(u *User) error {
		u.BirthDate = birthDate
		return nil
	}
}

// SetLanguages returns an UpdateSetter that sets the user's languages.
func SetLanguages(languages string) UpdateSetter {
	return func(u *User) error {
		u.Languages = languages
		return nil
	}
}

// SetSpecialization returns an UpdateSetter that sets the user's specialization.
func SetSpecialization(specialization string) UpdateSetter {
	return func(u *User) error {
		u.Specialization = specialization
		return nil
	}
}

// SetPhone returns an UpdateSetter that sets the user's phone number.
func SetPhone(phone string) UpdateSetter {
	return func(u *User) error {
		u.Phone = phone
		return nil
	}
}

// SetLinkedIn returns an UpdateSetter that sets the user's LinkedIn link.
func SetLinkedIn(linkedin string) UpdateSetter {
	return func(u *User) error {
		u.LinkedIn = linkedin
		return nil
	}
}

// SetGitHub returns an UpdateSetter that sets the user's GitHub link.
func SetGitHub(github string) UpdateSetter {
	return func(u *User) error {
		u.GitHub = github
		return nil
	}
}

// SetPortfolio returns an UpdateSetter that sets the user's portfolio link.
func SetPortfolio(portfolio string) UpdateSetter {
	return func(u *User) error {
		u.Portfolio = portfolio
		return nil
	}
}

// SetAvatarURL returns an UpdateSetter that sets the user's avatar URL.
func SetAvatarURL(url string) UpdateSetter {
	return func(u *User) error {
		u.AvatarURL = url
		return nil
	}
}

// SetStatus returns an UpdateSetter that sets the user's availability status.
func SetStatus(status Status) UpdateSetter {
	return func(u *User) error {
		u.Status = status
		return nil
	}
}

// SetSkills returns an UpdateSetter that replaces the user's skills.
func SetSkills(skills []Skill) UpdateSetter {
	return func(u *User) error {
		u.Skills = skills
		return nil
	}
}

// SetCertifications returns an UpdateSetter that replaces the user's certifications.
func SetCertifications(certifications []string) UpdateSetter {
	return func(u *User) error {
		u.Certifications = certifications
		return nil
	}
}

// SetInterests returns an UpdateSetter that replaces the user's interests.
func SetInterests(interests []string) UpdateSetter {
	return func(u *User) error {
		u.Interests = interests
		return nil
	}
}
