package mongodb

import (
	"context"
	"time"

	"linkbio/internal/domain/entity"
	"linkbio/internal/domain/repository"
	"linkbio/internal/errors"
	"linkbio/internal/infra/persistence/model"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/fx"
)

// UserRepositoryParams defines the required parameters
type UserRepositoryParams struct {
	fx.In

	Client *Client
}

// userRepository implements repository.UserRepository on MongoDB. Every method
// goes through Client.Connect so the connection is established lazily on the
// first persistence call.
type userRepository struct {
	client *Client
}

// NewUserRepository creates a new MongoDB-backed user repository.
func NewUserRepository(params UserRepositoryParams) repository.UserRepository {
	return &userRepository{client: params.Client}
}

func (r *userRepository) users(ctx context.Context) (*mongo.Collection, error) {
	db, err := r.client.Connect(ctx)
	if err != nil {
		return nil, err
	}

	return db.Collection(UsersCollection), nil
}

func (r *userRepository) findOne(ctx context.Context, filter bson.M) (*entity.User, error) {
	coll, err := r.users(ctx)
	if err != nil {
		return nil, err
	}

	var userM model.UserModel
	if err := coll.FindOne(ctx, filter).Decode(&userM); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	return model.ToUserDomain(&userM), nil
}

// FindByID retrieves a single user by their unique ID.
func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return r.findOne(ctx, bson.M{"_id": id.String()})
}

// FindByEmail retrieves a single user by email. Callers are expected to have
// case-normalized the value already.
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

// FindByUsername retrieves a single user by their vanity username.
func (r *userRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

// Create persists a new user document. A unique index violation maps to
// ErrDuplicateUser so the application layer can report the conflict.
func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	coll, err := r.users(ctx)
	if err != nil {
		return err
	}

	if _, err := coll.InsertOne(ctx, model.FromUserDomain(user)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicateUser
		}

		return errors.Wrap(err, "failed to insert user")
	}

	return nil
}

// Update replaces the whole document for the user's ID. Last write wins; there
// is no optimistic locking on profile saves.
func (r *userRepository) Update(ctx context.Context, user *entity.User) error {
	coll, err := r.users(ctx)
	if err != nil {
		return err
	}

	user.UpdatedAt = time.Now()

	result, err := coll.ReplaceOne(ctx, bson.M{"_id": user.ID.String()}, model.FromUserDomain(user))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicateUser
		}

		return errors.Wrap(err, "failed to update user")
	}
	if result.MatchedCount == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// IncrementViews bumps the public view counter atomically. A missing document
// is not an error here; the read path already handled not-found.
func (r *userRepository) IncrementViews(ctx context.Context, username string) error {
	coll, err := r.users(ctx)
	if err != nil {
		return err
	}

	_, err = coll.UpdateOne(ctx,
		bson.M{"username": username},
		bson.M{"$inc": bson.M{"views": 1}},
	)
	if err != nil {
		return errors.Wrap(err, "failed to increment profile views")
	}

	return nil
}
