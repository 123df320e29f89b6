package models

import "time"

type Status string

const (
	StatusSubmitted  Status = "submitted"
	StatusInProgress Status = "in_progress"
	StatusAssigned   Status = "assigned"
	StatusResolved   Status = "resolved"
	StatusRejected   Status = "rejected"
)

func (s Status) Valid() bool {
	switch s {
	case StatusSubmitted, StatusInProgress, StatusAssigned, StatusResolved, StatusRejected:
		return true
	}
	return false
}

type Category string

const (
	CategoryTransport      Category = "Transport"
	CategoryMess           Category = "Mess"
	CategoryHostel         Category = "Hostel"
	CategoryLaundry        Category = "Laundry"
	CategoryInfrastructure Category = "Infrastructure"
	CategoryAcademic       Category = "Academic"
	CategoryOther          Category = "Other"
)

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Categories lists every category in the order the dashboard presents them.
var Categories = []Category{
	CategoryTransport,
	CategoryMess,
	CategoryHostel,
	CategoryLaundry,
	CategoryInfrastructure,
	CategoryAcademic,
	CategoryOther,
}

// Option is a selectable value with its display label and badge colour.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Color string `json:"color"`
}

var Statuses = []Option{
	{Value: string(StatusSubmitted), Label: "Submitted", Color: "#3b82f6"},
	{Value: string(StatusInProgress), Label: "In Progress", Color: "#f59e0b"},
	{Value: string(StatusAssigned), Label: "Assigned", Color: "#6366f1"},
	{Value: string(StatusResolved), Label: "Resolved", Color: "#10b981"},
	{Value: string(StatusRejected), Label: "Rejected", Color: "#ef4444"},
}

var Priorities = []Option{
	{Value: string(PriorityLow), Label: "Low", Color: "#10b981"},
	{Value: string(PriorityMedium), Label: "Medium", Color: "#f59e0b"},
	{Value: string(PriorityHigh), Label: "High", Color: "#ef4444"},
}

// Complaint is a campus complaint as the admin dashboard sees it. Timestamps are
// already normalized by the store; ResolvedAt is nil until the complaint has been
// resolved through the status update path.
type Complaint struct {
	ID              string     `json:"id"`
	UserID          string     `json:"userId"`
	UserName        string     `json:"userName"`
	UserEmail       string     `json:"userEmail"`
	Category        Category   `json:"category"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Location        string     `json:"location"`
	Priority        Priority   `json:"priority,omitempty"`
	Status          Status     `json:"status,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
	ResolvedAt      *time.Time `json:"resolvedAt,omitempty"`
	ResolutionNotes string     `json:"resolutionNotes,omitempty"`
	AssignedTo      string     `json:"assignedTo,omitempty"`
	Upvotes         int        `json:"upvotes"`
}

// EffectiveStatus treats an absent status as submitted.
func (c Complaint) EffectiveStatus() Status {
	if c.Status == "" {
		return StatusSubmitted
	}
	return c.Status
}

// EffectivePriority treats an absent priority as medium.
func (c Complaint) EffectivePriority() Priority {
	if c.Priority == "" {
		return PriorityMedium
	}
	return c.Priority
}
