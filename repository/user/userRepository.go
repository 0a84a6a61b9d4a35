package userrepo

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/anithasandrine/Kigali-LUXURY-Cars/model"
)

// Update carries the fields an account update may change; nil means leave
// as is. Password must already be hashed.
type Update struct {
	Name        *string
	Email       *string
	PhoneNumber *string
	Address     *string
	Password    *string
	Role        *string
}

type Repo interface {
	Insert(ctx context.Context, u *model.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindAll(ctx context.Context) ([]model.User, error)
	FindSummaries(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]model.UserSummary, error)
	Update(ctx context.Context, id primitive.ObjectID, upd Update) (*model.User, error)
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
	EnsureIndexes(ctx context.Context) error
}

type repo struct{ col *mongo.Collection }

func New(db *mongo.Database) Repo { return &repo{col: db.Collection("users")} }

func (r *repo) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *repo) Insert(ctx context.Context, u *model.User) error {
	res, err := r.col.InsertOne(ctx, u)
	if err != nil {
		return err
	}
	u.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *repo) FindByID(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	var u model.User
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	err := r.col.FindOne(ctx, bson.M{"email": strings.ToLower(email)}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repo) FindAll(ctx context.Context) ([]model.User, error) {
	cur, err := r.col.Find(ctx, bson.M{},
		options.Find().SetProjection(bson.M{"password": 0}))
	if err != nil {
		return nil, err
	}
	var users []model.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *repo) FindSummaries(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]model.UserSummary, error) {
	out := make(map[primitive.ObjectID]model.UserSummary, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	cur, err := r.col.Find(ctx,
		bson.M{"_id": bson.M{"$in": ids}},
		options.Find().SetProjection(bson.M{"name": 1, "email": 1, "phoneNumber": 1}))
	if err != nil {
		return nil, err
	}
	var summaries []model.UserSummary
	if err := cur.All(ctx, &summaries); err != nil {
		return nil, err
	}
	for _, s := range summaries {
		out[s.ID] = s
	}
	return out, nil
}

func (r *repo) Update(ctx context.Context, id primitive.ObjectID, upd Update) (*model.User, error) {
	set := bson.M{}
	if upd.Name != nil {
		set["name"] = *upd.Name
	}
	if upd.Email != nil {
		set["email"] = strings.ToLower(*upd.Email)
	}
	if upd.PhoneNumber != nil {
		set["phoneNumber"] = *upd.PhoneNumber
	}
	if upd.Address != nil {
		set["address"] = *upd.Address
	}
	if upd.Password != nil {
		set["password"] = *upd.Password
	}
	if upd.Role != nil {
		set["role"] = *upd.Role
	}
	if len(set) == 0 {
		return r.FindByID(ctx, id)
	}

	var u model.User
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repo) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}
