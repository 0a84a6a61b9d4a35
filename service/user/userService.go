package usersvc

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/anithasandrine/Kigali-LUXURY-Cars/model"
	userrepo "github.com/anithasandrine/Kigali-LUXURY-Cars/repository/user"
	"github.com/anithasandrine/Kigali-LUXURY-Cars/util/hash"
)

var (
	ErrNotFound = errors.New("user not found")
	ErrBadRole  = errors.New("invalid role value")
)

// ProfileUpdate carries the self-service fields; empty strings mean leave
// as is, mirroring the optional request body fields.
type ProfileUpdate struct {
	Name        string
	Email       string
	PhoneNumber string
	Address     string
	NewPassword string
}

// AdminUpdate additionally allows changing the role.
type AdminUpdate struct {
	ProfileUpdate
	Role string
}

type Repo interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.User, error)
	FindAll(ctx context.Context) ([]model.User, error)
	Update(ctx context.Context, id primitive.ObjectID, upd userrepo.Update) (*model.User, error)
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
}

type Service interface {
	List(ctx context.Context) ([]model.User, error)
	Get(ctx context.Context, id string) (*model.User, error)
	UpdateProfile(ctx context.Context, userID primitive.ObjectID, upd ProfileUpdate) (*model.User, error)
	AdminUpdate(ctx context.Context, id string, upd AdminUpdate) (*model.User, error)
	Delete(ctx context.Context, id string) error
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r: r} }

func (s *service) List(ctx context.Context) ([]model.User, error) { return s.r.FindAll(ctx) }

func (s *service) Get(ctx context.Context, id string) (*model.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	u, err := s.r.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrNotFound
	}
	return u, nil
}

func (s *service) UpdateProfile(ctx context.Context, userID primitive.ObjectID, upd ProfileUpdate) (*model.User, error) {
	set, err := whitelist(upd)
	if err != nil {
		return nil, err
	}
	u, err := s.r.Update(ctx, userID, set)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrNotFound
	}
	return u, nil
}

func (s *service) AdminUpdate(ctx context.Context, id string, upd AdminUpdate) (*model.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	set, err := whitelist(upd.ProfileUpdate)
	if err != nil {
		return nil, err
	}
	if upd.Role != "" {
		if upd.Role != model.RoleCustomer && upd.Role != model.RoleAdmin {
			return nil, ErrBadRole
		}
		set.Role = &upd.Role
	}
	u, err := s.r.Update(ctx, oid, set)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrNotFound
	}
	return u, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	deleted, err := s.r.Delete(ctx, oid)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

// whitelist maps only the permitted profile fields onto a repository update,
// hashing any new password before it reaches storage.
func whitelist(upd ProfileUpdate) (userrepo.Update, error) {
	var set userrepo.Update
	if upd.Name != "" {
		set.Name = &upd.Name
	}
	if upd.Email != "" {
		set.Email = &upd.Email
	}
	if upd.PhoneNumber != "" {
		set.PhoneNumber = &upd.PhoneNumber
	}
	if upd.Address != "" {
		set.Address = &upd.Address
	}
	if upd.NewPassword != "" {
		hashed, err := hash.HashPassword(upd.NewPassword)
		if err != nil {
			return set, err
		}
		set.Password = &hashed
	}
	return set, nil
}
