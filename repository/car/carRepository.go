// repository/car/carRepository.go
package carrepo

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/anithasandrine/Kigali-LUXURY-Cars/model"
)

// SearchFilter holds the optional catalog search parameters. Make and Model
// match as case-insensitive substrings, the rest match exactly.
type SearchFilter struct {
	Make      string
	Model     string
	Category  string
	Available *bool
	MinPrice  *float64
	MaxPrice  *float64
}

// Update carries the fields an update may change; nil means leave as is.
type Update struct {
	Make        *string
	Model       *string
	Year        *int
	Description *string
	Features    []string
	PricePerDay *float64
	Available   *bool
	Images      []string
}

type Repo interface {
	Insert(ctx context.Context, car *model.Car) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Car, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]model.Car, error)
	FindAll(ctx context.Context) ([]model.Car, error)
	Search(ctx context.Context, f SearchFilter) ([]model.Car, error)
	Update(ctx context.Context, id primitive.ObjectID, upd Update) (*model.Car, error)
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
	Reserve(ctx context.Context, id primitive.ObjectID) (bool, error)
	SetAvailability(ctx context.Context, id primitive.ObjectID, available bool) error
}

type repo struct{ col *mongo.Collection }

func New(db *mongo.Database) Repo { return &repo{col: db.Collection("cars")} }

func (r *repo) Insert(ctx context.Context, car *model.Car) error {
	now := time.Now().UTC()
	car.CreatedAt, car.UpdatedAt = now, now
	res, err := r.col.InsertOne(ctx, car)
	if err != nil {
		return err
	}
	car.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *repo) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Car, error) {
	var c model.Car
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repo) FindByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]model.Car, error) {
	out := make(map[primitive.ObjectID]model.Car, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	var cars []model.Car
	if err := cur.All(ctx, &cars); err != nil {
		return nil, err
	}
	for _, c := range cars {
		out[c.ID] = c
	}
	return out, nil
}

func (r *repo) FindAll(ctx context.Context) ([]model.Car, error) {
	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var cars []model.Car
	if err := cur.All(ctx, &cars); err != nil {
		return nil, err
	}
	return cars, nil
}

func (r *repo) Search(ctx context.Context, f SearchFilter) ([]model.Car, error) {
	q := bson.M{}
	if f.Make != "" {
		q["make"] = primitive.Regex{Pattern: regexp.QuoteMeta(f.Make), Options: "i"}
	}
	if f.Model != "" {
		q["model"] = primitive.Regex{Pattern: regexp.QuoteMeta(f.Model), Options: "i"}
	}
	if f.Category != "" {
		q["category"] = f.Category
	}
	if f.Available != nil {
		q["available"] = *f.Available
	}
	price := bson.M{}
	if f.MinPrice != nil {
		price["$gte"] = *f.MinPrice
	}
	if f.MaxPrice != nil {
		price["$lte"] = *f.MaxPrice
	}
	if len(price) > 0 {
		q["pricePerDay"] = price
	}

	cur, err := r.col.Find(ctx, q)
	if err != nil {
		return nil, err
	}
	var cars []model.Car
	if err := cur.All(ctx, &cars); err != nil {
		return nil, err
	}
	return cars, nil
}

func (r *repo) Update(ctx context.Context, id primitive.ObjectID, upd Update) (*model.Car, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if upd.Make != nil {
		set["make"] = *upd.Make
	}
	if upd.Model != nil {
		set["model"] = *upd.Model
	}
	if upd.Year != nil {
		set["year"] = *upd.Year
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}
	if upd.Features != nil {
		set["features"] = upd.Features
	}
	if upd.PricePerDay != nil {
		set["pricePerDay"] = *upd.PricePerDay
	}
	if upd.Available != nil {
		set["available"] = *upd.Available
	}
	if upd.Images != nil {
		set["images"] = upd.Images
	}

	var c model.Car
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repo) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

// Reserve flips available to false only if it is currently true, so two
// concurrent bookings cannot both take the same car. The caller must treat
// a false return as the car being unavailable.
func (r *repo) Reserve(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id, "available": true},
		bson.M{"$set": bson.M{"available": false, "updatedAt": time.Now().UTC()}},
	)
	if err != nil {
		return false, err
	}
	return res.MatchedCount == 1, nil
}

func (r *repo) SetAvailability(ctx context.Context, id primitive.ObjectID, available bool) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"available": available, "updatedAt": time.Now().UTC()}},
	)
	return err
}
