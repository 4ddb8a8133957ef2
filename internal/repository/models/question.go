package models

import "time"

// Question is the on-disk shape of one bank record. The bank file is a
// plain JSON array of these objects, shared with the quiz UI, so field
// names and order are part of the contract.
type Question struct {
	ID               int      `json:"id"`
	Category         string   `json:"category"`
	Difficulty       string   `json:"difficulty"`
	Question         string   `json:"question"`
	CorrectAnswer    string   `json:"correct_answer"`
	IncorrectAnswers []string `json:"incorrect_answers"`
	Source           string   `json:"source"`
	PerceptionLens   string   `json:"perception_lens,omitempty"`
}

// StagedQuestion is the on-disk shape of one pending-file entry. The
// staging metadata fields are stripped on approval, when the entry
// becomes a regular bank Question with a real ID.
type StagedQuestion struct {
	StageID          string    `json:"stage_id"`
	BatchID          string    `json:"batch_id"`
	StagedAt         time.Time `json:"staged_at"`
	Category         string    `json:"category"`
	Difficulty       string    `json:"difficulty"`
	Question         string    `json:"question"`
	CorrectAnswer    string    `json:"correct_answer"`
	IncorrectAnswers []string  `json:"incorrect_answers"`
	Source           string    `json:"source"`
	PerceptionLens   string    `json:"perception_lens,omitempty"`
}
