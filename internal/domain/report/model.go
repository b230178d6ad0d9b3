package report

import "time"

type Status string

const (
	StatusPending   Status = "Pending"
	StatusCompleted Status = "Completed"
)

// TestResult is the snapshot taken for one parameter when a report is
// completed. Unit and normalRange are copied from the catalog parameter
// at evaluation time so later catalog edits do not rewrite history.
type TestResult struct {
	ParameterID   string `json:"parameterId"`
	ParameterName string `json:"parameterName"`
	Value         string `json:"value"`
	Unit          string `json:"unit"`
	NormalRange   string `json:"normalRange"`
	IsNormal      bool   `json:"isNormal"`
}

// Report tracks one test for one patient through Pending → Completed.
// The status transition is one-way; re-completing an already completed
// report replaces its results but never reverts the status.
type Report struct {
	ID              string       `json:"id"`
	PatientID       string       `json:"patientId"`
	TestID          string       `json:"testId"`
	Results         []TestResult `json:"results"`
	Status          Status       `json:"status"`
	ReferringDoctor string       `json:"referringDoctor,omitempty"`
	Notes           string       `json:"notes,omitempty"`
	CreatedAt       time.Time    `json:"createdAt"`
}

// Update carries the mutable metadata fields. Results and status only
// change through the completion workflow.
type Update struct {
	ReferringDoctor *string `json:"referringDoctor"`
	Notes           *string `json:"notes"`
}
