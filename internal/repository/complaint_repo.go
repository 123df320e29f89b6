package repository

import (
	"context"
	"errors"
	"reflect"
	"time"

	"campuscare-admin/internal/models"
	"campuscare-admin/internal/store"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// ComplaintRepo is the MongoDB backed complaint store.
type ComplaintRepo struct {
	collection   *mongo.Collection
	pollInterval time.Duration
	log          *logrus.Logger
	now          func() time.Time
}

// listFunc reads the whole collection, newest first.
type listFunc func(ctx context.Context) ([]complaintDoc, error)

func NewComplaintRepo(db *mongo.Database, collection string, pollInterval time.Duration, log *logrus.Logger) *ComplaintRepo {
	return &ComplaintRepo{
		collection:   db.Collection(collection),
		pollInterval: pollInterval,
		log:          log,
		now:          time.Now,
	}
}

var _ store.Store = (*ComplaintRepo)(nil)

func (r *ComplaintRepo) list(ctx context.Context) ([]complaintDoc, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	var docs []complaintDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// Subscribe watches the collection and re-lists it on every change. Servers
// without change stream support (standalone mongod) are polled instead; a
// snapshot is then only delivered when the listing differs from the last one.
func (r *ComplaintRepo) Subscribe(ctx context.Context, onSnapshot store.SnapshotFunc) func() {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		r.watch(ctx, onSnapshot)
	}()
	return func() {
		cancel()
		<-done
	}
}

func (r *ComplaintRepo) watch(ctx context.Context, onSnapshot store.SnapshotFunc) {
	stream, err := r.collection.Watch(ctx, mongo.Pipeline{})
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		r.log.WithError(err).Warn("change stream unavailable, falling back to polling")
		r.poll(ctx, r.list, onSnapshot)
		return
	}
	defer stream.Close(context.Background())

	r.deliver(ctx, r.list, onSnapshot)
	for stream.Next(ctx) {
		r.deliver(ctx, r.list, onSnapshot)
	}
	if ctx.Err() != nil {
		return
	}
	r.log.WithError(stream.Err()).Error("complaint change stream closed")
	r.emit(ctx, onSnapshot, nil)
	r.poll(ctx, r.list, onSnapshot)
}

// deliver lists the collection and hands the result over. Read failures are
// reported as an empty snapshot.
func (r *ComplaintRepo) deliver(ctx context.Context, list listFunc, onSnapshot store.SnapshotFunc) ([]complaintDoc, error) {
	docs, err := list(ctx)
	if err != nil {
		if ctx.Err() == nil {
			r.log.WithError(err).Error("error listing complaints")
		}
		docs = nil
	}
	r.emit(ctx, onSnapshot, docs)
	return docs, err
}

func (r *ComplaintRepo) emit(ctx context.Context, onSnapshot store.SnapshotFunc, docs []complaintDoc) {
	if ctx.Err() != nil {
		return
	}
	onSnapshot(toModels(docs, r.now()))
}

// poll re-lists every pollInterval. Unchanged listings are not delivered, and
// an outage is reported once as an empty snapshot.
func (r *ComplaintRepo) poll(ctx context.Context, list listFunc, onSnapshot store.SnapshotFunc) {
	last, err := r.deliver(ctx, list, onSnapshot)
	failed := err != nil

	ticker := time.NewTicker(r.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		docs, err := list(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			if !failed {
				r.log.WithError(err).Error("error polling complaints")
				r.emit(ctx, onSnapshot, nil)
			}
			failed, last = true, nil
			continue
		}
		if failed || !sameDocs(last, docs) {
			r.emit(ctx, onSnapshot, docs)
		}
		failed, last = false, docs
	}
}

func sameDocs(a, b []complaintDoc) bool {
	if len(a) == 0 && len(b) == 0 {
		return true
	}
	return reflect.DeepEqual(a, b)
}

func (r *ComplaintRepo) Get(ctx context.Context, id string) (*models.Complaint, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, store.ErrInvalidID
	}

	var doc complaintDoc
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	c := doc.toModel(r.now())
	return &c, nil
}

func (r *ComplaintRepo) Update(ctx context.Context, id string, patch store.Patch) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return store.ErrInvalidID
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, updateDocument(patch))
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *ComplaintRepo) Insert(ctx context.Context, c *models.Complaint) error {
	now := r.now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	result, err := r.collection.InsertOne(ctx, fromModel(c))
	if err != nil {
		return err
	}
	c.ID = result.InsertedID.(bson.ObjectID).Hex()
	return nil
}

// EnsureIndexes creates necessary indexes for the complaints collection
func (r *ComplaintRepo) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "createdAt", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "category", Value: 1}},
		},
	}
	_, err := r.collection.Indexes().CreateMany(ctx, indexes)
	return err
}
