package carsvc

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/anithasandrine/Kigali-LUXURY-Cars/model"
	carrepo "github.com/anithasandrine/Kigali-LUXURY-Cars/repository/car"
)

var (
	ErrNotFound = errors.New("car not found")
	ErrBadInput = errors.New("invalid car payload")
)

type SearchFilter = carrepo.SearchFilter
type CarUpdate = carrepo.Update

type Repo interface {
	Insert(ctx context.Context, car *model.Car) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Car, error)
	FindAll(ctx context.Context) ([]model.Car, error)
	Search(ctx context.Context, f SearchFilter) ([]model.Car, error)
	Update(ctx context.Context, id primitive.ObjectID, upd CarUpdate) (*model.Car, error)
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
}

type Service interface {
	Create(ctx context.Context, car *model.Car) error
	Get(ctx context.Context, id string) (*model.Car, error)
	List(ctx context.Context) ([]model.Car, error)
	Search(ctx context.Context, f SearchFilter) ([]model.Car, error)
	Update(ctx context.Context, id string, upd CarUpdate) (*model.Car, error)
	Delete(ctx context.Context, id string) error
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r: r} }

func (s *service) Create(ctx context.Context, car *model.Car) error {
	if car.Make == "" || car.Model == "" || car.Year <= 0 || car.PricePerDay <= 0 {
		return ErrBadInput
	}
	return s.r.Insert(ctx, car)
}

func (s *service) Get(ctx context.Context, id string) (*model.Car, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	car, err := s.r.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if car == nil {
		return nil, ErrNotFound
	}
	return car, nil
}

func (s *service) List(ctx context.Context) ([]model.Car, error) { return s.r.FindAll(ctx) }

func (s *service) Search(ctx context.Context, f SearchFilter) ([]model.Car, error) {
	return s.r.Search(ctx, f)
}

func (s *service) Update(ctx context.Context, id string, upd CarUpdate) (*model.Car, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	if upd.PricePerDay != nil && *upd.PricePerDay <= 0 {
		return nil, ErrBadInput
	}
	car, err := s.r.Update(ctx, oid, upd)
	if err != nil {
		return nil, err
	}
	if car == nil {
		return nil, ErrNotFound
	}
	return car, nil
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
