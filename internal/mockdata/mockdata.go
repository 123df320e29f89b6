// Package mockdata holds the demo complaints shown when the live store has
// nothing to offer.
package mockdata

import (
	"time"

	"campuscare-admin/internal/models"
)

func ago(now time.Time, hours int) time.Time {
	return now.Add(-time.Duration(hours) * time.Hour)
}

func ptr(t time.Time) *time.Time {
	return &t
}

// Complaints returns a fresh copy of the demo fixture, timestamped relative to now.
func Complaints(now time.Time) []models.Complaint {
	return []models.Complaint{
		{
			ID:          "c1",
			UserID:      "user1",
			UserName:    "Rahul Sharma",
			UserEmail:   "rahul.sharma@sharda.ac.in",
			Category:    models.CategoryTransport,
			Title:       "Bus Late Arrival",
			Description: "Bus number 12 arrived 20 minutes late at the main gate. This is happening regularly and causing students to miss morning classes.",
			Location:    "Main Gate",
			Priority:    models.PriorityMedium,
			Status:      models.StatusInProgress,
			CreatedAt:   ago(now, 2),
			UpdatedAt:   ago(now, 1),
			Upvotes:     15,
		},
		{
			ID:          "c2",
			UserID:      "user2",
			UserName:    "Priya Patel",
			UserEmail:   "priya.patel@sharda.ac.in",
			Category:    models.CategoryMess,
			Title:       "Food Quality Issue",
			Description: "Lunch served today was cold and tasteless. The dal had insects in it. Please take immediate action.",
			Location:    "Boy's Hostel Mess",
			Priority:    models.PriorityHigh,
			Status:      models.StatusSubmitted,
			CreatedAt:   ago(now, 5),
			UpdatedAt:   ago(now, 5),
			Upvotes:     42,
		},
		{
			ID:              "c3",
			UserID:          "user1",
			UserName:        "Rahul Sharma",
			UserEmail:       "rahul.sharma@sharda.ac.in",
			Category:        models.CategoryInfrastructure,
			Title:           "Broken Fan in Room 302",
			Description:     "Ceiling fan in Room 302, Block A is not working for the past 3 days. It is very hot and uncomfortable.",
			Location:        "Block A, Room 302",
			Priority:        models.PriorityMedium,
			Status:          models.StatusResolved,
			CreatedAt:       ago(now, 48),
			UpdatedAt:       ago(now, 24),
			ResolvedAt:      ptr(ago(now, 24)),
			ResolutionNotes: "Fan capacitor replaced. Fan is now working properly.",
			Upvotes:         8,
		},
		{
			ID:          "c4",
			UserID:      "user3",
			UserName:    "Amit Kumar",
			UserEmail:   "amit.kumar@sharda.ac.in",
			Category:    models.CategoryHostel,
			Title:       "Water Supply Issue",
			Description: "No water supply in Block C since morning. Students are unable to attend classes due to this.",
			Location:    "Block C, All Floors",
			Priority:    models.PriorityHigh,
			Status:      models.StatusAssigned,
			CreatedAt:   ago(now, 8),
			UpdatedAt:   ago(now, 4),
			AssignedTo:  "Maintenance Department",
			Upvotes:     67,
		},
		{
			ID:          "c5",
			UserID:      "user4",
			UserName:    "Sneha Gupta",
			UserEmail:   "sneha.gupta@sharda.ac.in",
			Category:    models.CategoryLaundry,
			Title:       "Washing Machine Not Working",
			Description: "Washing machine #3 in the laundry room is making loud noises and not completing the wash cycle.",
			Location:    "Hostel Laundry Room",
			Priority:    models.PriorityLow,
			Status:      models.StatusSubmitted,
			CreatedAt:   ago(now, 12),
			UpdatedAt:   ago(now, 12),
			Upvotes:     5,
		},
		{
			ID:          "c6",
			UserID:      "user5",
			UserName:    "Vikash Singh",
			UserEmail:   "vikash.singh@sharda.ac.in",
			Category:    models.CategoryAcademic,
			Title:       "Projector Issue in Lecture Hall 5",
			Description: "The projector in Lecture Hall 5 is showing distorted colors. Faculty are unable to show presentations properly.",
			Location:    "Lecture Hall 5, Block E",
			Priority:    models.PriorityMedium,
			Status:      models.StatusInProgress,
			CreatedAt:   ago(now, 24),
			UpdatedAt:   ago(now, 6),
			Upvotes:     23,
		},
		{
			ID:              "c7",
			UserID:          "user6",
			UserName:        "Anita Verma",
			UserEmail:       "anita.verma@sharda.ac.in",
			Category:        models.CategoryInfrastructure,
			Title:           "Street Light Not Working",
			Description:     "The street light near the basketball court has been off for a week. It is unsafe to walk there at night.",
			Location:        "Basketball Court Area",
			Priority:        models.PriorityMedium,
			Status:          models.StatusResolved,
			CreatedAt:       ago(now, 72),
			UpdatedAt:       ago(now, 48),
			ResolvedAt:      ptr(ago(now, 48)),
			ResolutionNotes: "Bulb replaced with new LED light.",
			Upvotes:         12,
		},
	}
}

// SampleComplaint is the record the "insert sample" action submits. The store
// assigns its id and timestamps.
func SampleComplaint() models.Complaint {
	return models.Complaint{
		UserID:      "sample_user",
		UserName:    "Test Student",
		UserEmail:   "test@sharda.ac.in",
		Category:    models.CategoryInfrastructure,
		Title:       "Sample Complaint from Admin",
		Description: "This is a test complaint added from the admin dashboard.",
		Location:    "Main Building",
		Priority:    models.PriorityMedium,
		Status:      models.StatusSubmitted,
		Upvotes:     0,
	}
}
