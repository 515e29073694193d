// Package ticket builds work item drafts from document blocks.
package ticket

import "github.com/example/hnp/internal/core/catalog"

// Draft is a work item ready for submission. Field names follow the
// Hack'n'Plan work item payload.
type Draft struct {
	Title             string       `json:"title" yaml:"title"`
	Description       string       `json:"description" yaml:"description"`
	ParentID          catalog.ID   `json:"parentId" yaml:"parentId"`
	IsStory           bool         `json:"isStory" yaml:"isStory"`
	CategoryID        catalog.ID   `json:"categoryId" yaml:"categoryId"`
	EstimatedCost     float64      `json:"estimatedCost" yaml:"estimatedCost"`
	ImportanceLevelID catalog.ID   `json:"importanceLevelId" yaml:"importanceLevelId"`
	BoardID           catalog.ID   `json:"boardId" yaml:"boardId"`
	StartDate         string       `json:"startDate" yaml:"startDate"`
	DueDate           string       `json:"dueDate" yaml:"dueDate"`
	AssignedUserIDs   []catalog.ID `json:"assignedUserIds" yaml:"assignedUserIds"`
	TagIDs            []catalog.ID `json:"tagIds" yaml:"tagIds"`
	SubTasks          []string     `json:"subTasks" yaml:"subTasks"`
	DependencyIDs     []catalog.ID `json:"dependencyIds" yaml:"dependencyIds"`

	// Block is the document block the draft was built from.
	Block int `json:"-" yaml:"-"`
}
