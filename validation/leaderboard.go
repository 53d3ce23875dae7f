package validation

import (
	"strings"

	"github.com/Dosada05/campus-tournaments/models"
)

type leaderboardInput struct {
	Rank            int    `json:"rank" validate:"required,gt=0"`
	ParticipantName string `json:"participant_name" validate:"required"`
}

func TrimLeaderboardEntry(form models.LeaderboardEntryForm) models.LeaderboardEntryForm {
	return models.LeaderboardEntryForm{
		Rank:            form.Rank,
		ParticipantName: strings.TrimSpace(form.ParticipantName),
		Score:           strings.TrimSpace(form.Score),
		Achievement:     strings.TrimSpace(form.Achievement),
	}
}

func (val *Validator) LeaderboardEntry(form models.LeaderboardEntryForm) FieldErrors {
	f := TrimLeaderboardEntry(form)
	return val.fieldErrors(leaderboardInput{Rank: f.Rank, ParticipantName: f.ParticipantName})
}
