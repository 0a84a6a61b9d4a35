// repository/rental/rentalRepository.go
package rentalrepo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/anithasandrine/Kigali-LUXURY-Cars/model"
)

type Repo interface {
	Insert(ctx context.Context, rental *model.Rental) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Rental, error)
	FindAll(ctx context.Context) ([]model.Rental, error)
	FindByUser(ctx context.Context, userID primitive.ObjectID) ([]model.Rental, error)
	FindByCar(ctx context.Context, carID primitive.ObjectID) ([]model.Rental, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status model.RentalStatus) (*model.Rental, error)
	UpdatePaymentStatus(ctx context.Context, id primitive.ObjectID, ps model.PaymentStatus) (*model.Rental, error)
}

type repo struct{ col *mongo.Collection }

func New(db *mongo.Database) Repo { return &repo{col: db.Collection("rentals")} }

func (r *repo) Insert(ctx context.Context, rental *model.Rental) error {
	res, err := r.col.InsertOne(ctx, rental)
	if err != nil {
		return err
	}
	rental.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *repo) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Rental, error) {
	var rental model.Rental
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&rental)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rental, nil
}

func (r *repo) FindAll(ctx context.Context) ([]model.Rental, error) {
	return r.find(ctx, bson.M{})
}

func (r *repo) FindByUser(ctx context.Context, userID primitive.ObjectID) ([]model.Rental, error) {
	return r.find(ctx, bson.M{"user": userID})
}

func (r *repo) FindByCar(ctx context.Context, carID primitive.ObjectID) ([]model.Rental, error) {
	return r.find(ctx, bson.M{"car": carID})
}

func (r *repo) find(ctx context.Context, filter bson.M) ([]model.Rental, error) {
	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	var rentals []model.Rental
	if err := cur.All(ctx, &rentals); err != nil {
		return nil, err
	}
	return rentals, nil
}

func (r *repo) UpdateStatus(ctx context.Context, id primitive.ObjectID, status model.RentalStatus) (*model.Rental, error) {
	return r.setField(ctx, id, "status", status)
}

func (r *repo) UpdatePaymentStatus(ctx context.Context, id primitive.ObjectID, ps model.PaymentStatus) (*model.Rental, error) {
	return r.setField(ctx, id, "paymentStatus", ps)
}

func (r *repo) setField(ctx context.Context, id primitive.ObjectID, field string, value any) (*model.Rental, error) {
	var rental model.Rental
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{field: value}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&rental)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rental, nil
}
