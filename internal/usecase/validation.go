package usecase

import (
	"net/mail"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	minMessageLength = 10
	maxMessageLength = 5000
	maxNameLength    = 200
)

var contactRoles = []string{"Professor", "Student", "Administrator", "Researcher", "Other"}

var teamSizes = []string{"1-10", "11-50", "51-200", "201-1000", "1000+"}

func ValidateContactInput(input ContactInput) ValidationErrors {
	var errs ValidationErrors

	errs = append(errs, requireName("firstName", input.FirstName)...)
	errs = append(errs, requireName("lastName", input.LastName)...)
	errs = append(errs, requireEmail(input.Email)...)

	if strings.TrimSpace(input.Role) == "" {
		errs = append(errs, ValidationError{"role", "is required"})
	} else if !isOneOf(input.Role, contactRoles) {
		errs = append(errs, ValidationError{"role", "must be one of " + strings.Join(contactRoles, ", ")})
	}

	errs = append(errs, requireMessage(input.Message)...)

	return errs
}

func ValidateSalesInput(input SalesInput) ValidationErrors {
	var errs ValidationErrors

	errs = append(errs, requireName("name", input.Name)...)
	errs = append(errs, requireEmail(input.Email)...)

	if strings.TrimSpace(input.Institution) == "" {
		errs = append(errs, ValidationError{"institution", "is required"})
	}

	if input.TeamSize != "" && !isOneOf(input.TeamSize, teamSizes) {
		errs = append(errs, ValidationError{"teamSize", "must be one of " + strings.Join(teamSizes, ", ")})
	}

	if strings.TrimSpace(input.Message) != "" {
		errs = append(errs, requireMessage(input.Message)...)
	}

	return errs
}

func ValidateDemoInput(input DemoInput) ValidationErrors {
	var errs ValidationErrors

	errs = append(errs, requireName("name", input.Name)...)
	errs = append(errs, requireEmail(input.Email)...)

	if strings.TrimSpace(input.Institution) == "" {
		errs = append(errs, ValidationError{"institution", "is required"})
	}

	if input.PreferredDate != "" {
		if _, err := time.Parse("2006-01-02", input.PreferredDate); err != nil {
			errs = append(errs, ValidationError{"preferredDate", "must be a valid date (YYYY-MM-DD)"})
		}
	}

	return errs
}

func ValidateSubscribeInput(input SubscribeInput) ValidationErrors {
	return requireEmail(input.Email)
}

func ValidateVoteInput(input VoteInput) ValidationErrors {
	var errs ValidationErrors

	if strings.TrimSpace(input.FeatureID) == "" {
		errs = append(errs, ValidationError{"featureId", "is required"})
	} else if _, err := uuid.Parse(input.FeatureID); err != nil {
		errs = append(errs, ValidationError{"featureId", "must be a valid UUID"})
	}

	errs = append(errs, requireEmail(input.Email)...)

	return errs
}

func requireName(field, value string) ValidationErrors {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ValidationErrors{{field, "is required"}}
	}
	if len(trimmed) > maxNameLength {
		return ValidationErrors{{field, "must not exceed 200 characters"}}
	}
	return nil
}

func requireEmail(email string) ValidationErrors {
	if strings.TrimSpace(email) == "" {
		return ValidationErrors{{"email", "is required"}}
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return ValidationErrors{{"email", "is invalid"}}
	}
	return nil
}

func requireMessage(message string) ValidationErrors {
	trimmed := strings.TrimSpace(message)
	if trimmed == "" {
		return ValidationErrors{{"message", "is required"}}
	}
	if len(trimmed) < minMessageLength {
		return ValidationErrors{{"message", "must have at least 10 characters"}}
	}
	if len(trimmed) > maxMessageLength {
		return ValidationErrors{{"message", "must not exceed 5000 characters"}}
	}
	return nil
}

func isOneOf(value string, allowed []string) bool {
	for _, a := range allowed {
		if value == a {
			return true
		}
	}
	return false
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// CollapseSpaces normalizes free-text fields before persistence so the
// admin listing is not cluttered by pasted formatting.
func CollapseSpaces(s string) string {
	return whitespaceRe.ReplaceAllString(strings.TrimSpace(s), " ")
}
