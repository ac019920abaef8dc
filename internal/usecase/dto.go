package usecase

import "github.com/scholaris/intake-api/internal/entity"

type ContactInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Message   string `json:"message"`
	Source    string `json:"source,omitempty"`
}

type SalesInput struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Institution string `json:"institution"`
	TeamSize    string `json:"teamSize,omitempty"`
	Message     string `json:"message,omitempty"`
	Source      string `json:"source,omitempty"`
}

type DemoInput struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Institution   string `json:"institution"`
	PreferredDate string `json:"preferredDate,omitempty"`
	Source        string `json:"source,omitempty"`
}

type SubscribeInput struct {
	Email  string `json:"email"`
	Source string `json:"source,omitempty"`
}

type VoteInput struct {
	FeatureID string `json:"featureId"`
	Email     string `json:"email"`
}

type SubmitOutput struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

type SubscribeOutput struct {
	Outcome entity.SubscribeOutcome `json:"outcome"`
	Message string                  `json:"message"`
}

type VoteOutput struct {
	FeatureID string `json:"featureId"`
	Message   string `json:"message"`
}
