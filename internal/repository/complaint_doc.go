package repository

import (
	"time"

	"campuscare-admin/internal/models"
	"campuscare-admin/internal/store"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// complaintDoc mirrors the documents the student app writes. Timestamps are
// pointers so that missing values can be told apart from the zero time.
type complaintDoc struct {
	ID              bson.ObjectID `bson:"_id,omitempty"`
	UserID          string        `bson:"userId"`
	UserName        string        `bson:"userName"`
	UserEmail       string        `bson:"userEmail"`
	Category        string        `bson:"category"`
	Title           string        `bson:"title"`
	Description     string        `bson:"description"`
	Location        string        `bson:"location"`
	Priority        string        `bson:"priority,omitempty"`
	Status          string        `bson:"status,omitempty"`
	CreatedAt       *time.Time    `bson:"createdAt,omitempty"`
	UpdatedAt       *time.Time    `bson:"updatedAt,omitempty"`
	ResolvedAt      *time.Time    `bson:"resolvedAt,omitempty"`
	ResolutionNotes string        `bson:"resolutionNotes,omitempty"`
	AssignedTo      string        `bson:"assignedTo,omitempty"`
	Upvotes         int           `bson:"upvotes"`
}

// toModel normalizes timestamps: a missing createdAt or updatedAt reads as now.
func (d complaintDoc) toModel(now time.Time) models.Complaint {
	c := models.Complaint{
		ID:              d.ID.Hex(),
		UserID:          d.UserID,
		UserName:        d.UserName,
		UserEmail:       d.UserEmail,
		Category:        models.Category(d.Category),
		Title:           d.Title,
		Description:     d.Description,
		Location:        d.Location,
		Priority:        models.Priority(d.Priority),
		Status:          models.Status(d.Status),
		CreatedAt:       now,
		UpdatedAt:       now,
		ResolutionNotes: d.ResolutionNotes,
		AssignedTo:      d.AssignedTo,
		Upvotes:         d.Upvotes,
	}
	if d.CreatedAt != nil {
		c.CreatedAt = d.CreatedAt.UTC()
	}
	if d.UpdatedAt != nil {
		c.UpdatedAt = d.UpdatedAt.UTC()
	}
	if d.ResolvedAt != nil {
		t := d.ResolvedAt.UTC()
		c.ResolvedAt = &t
	}
	return c
}

func fromModel(c *models.Complaint) complaintDoc {
	createdAt, updatedAt := c.CreatedAt, c.UpdatedAt
	return complaintDoc{
		UserID:          c.UserID,
		UserName:        c.UserName,
		UserEmail:       c.UserEmail,
		Category:        string(c.Category),
		Title:           c.Title,
		Description:     c.Description,
		Location:        c.Location,
		Priority:        string(c.Priority),
		Status:          string(c.Status),
		CreatedAt:       &createdAt,
		UpdatedAt:       &updatedAt,
		ResolvedAt:      c.ResolvedAt,
		ResolutionNotes: c.ResolutionNotes,
		AssignedTo:      c.AssignedTo,
		Upvotes:         c.Upvotes,
	}
}

func toModels(docs []complaintDoc, now time.Time) []models.Complaint {
	out := make([]models.Complaint, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toModel(now))
	}
	return out
}

// updateDocument builds the update for a status patch. updatedAt and
// resolvedAt are stamped by the server.
func updateDocument(p store.Patch) bson.M {
	set := bson.M{"status": string(p.Status)}
	if p.SetsNotes() {
		set["resolutionNotes"] = p.ResolutionNotes
	}

	currentDate := bson.M{"updatedAt": true}
	if p.SetsResolvedAt() {
		currentDate["resolvedAt"] = true
	}

	return bson.M{
		"$set":         set,
		"$currentDate": currentDate,
	}
}
