package mongo

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/recipe-app/recipe-api/internal/core/domain"
	"github.com/recipe-app/recipe-api/internal/core/ports"
)

type RecipeRepository struct {
	col   *mongo.Collection
	users *mongo.Collection
}

var _ ports.RecipeRepository = (*RecipeRepository)(nil)

func NewRecipeRepository(db *mongo.Database) *RecipeRepository {
	return &RecipeRepository{
		col:   db.Collection(collectionRecipes),
		users: db.Collection(collectionUsers),
	}
}

type recipeDocument struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty"`
	OwnerID     primitive.ObjectID   `bson:"owner_id"`
	Title       string               `bson:"title"`
	Description string               `bson:"description"`
	TimeMinutes int                  `bson:"time_minutes"`
	Price       primitive.Decimal128 `bson:"price"`
	Link        string               `bson:"link"`
	CreatedAt   time.Time            `bson:"created_at"`
	UpdatedAt   time.Time            `bson:"updated_at"`
}

func toRecipeDocument(rec *domain.Recipe) (recipeDocument, error) {
	owner, err := primitive.ObjectIDFromHex(rec.OwnerID)
	if err != nil {
		return recipeDocument{}, domain.ErrUserNotFound
	}
	price, err := primitive.ParseDecimal128(rec.Price.String())
	if err != nil {
		return recipeDocument{}, fmt.Errorf("encode price: %w", err)
	}
	return recipeDocument{
		OwnerID:     owner,
		Title:       rec.Title,
		Description: rec.Description,
		TimeMinutes: rec.TimeMinutes,
		Price:       price,
		Link:        rec.Link,
		CreatedAt:   rec.CreatedAt.UTC(),
		UpdatedAt:   rec.UpdatedAt.UTC(),
	}, nil
}

func (d recipeDocument) toDomain() (*domain.Recipe, error) {
	price, err := priceFromDecimal(d.Price)
	if err != nil {
		return nil, err
	}
	return &domain.Recipe{
		ID:          d.ID.Hex(),
		OwnerID:     d.OwnerID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		TimeMinutes: d.TimeMinutes,
		Price:       price,
		Link:        d.Link,
		CreatedAt:   d.CreatedAt.UTC(),
		UpdatedAt:   d.UpdatedAt.UTC(),
	}, nil
}

// priceFromDecimal converts a stored Decimal128 into hundredths.
func priceFromDecimal(d primitive.Decimal128) (domain.Price, error) {
	coef, exp, err := d.BigInt()
	if err != nil {
		return 0, fmt.Errorf("decode price: %w", err)
	}
	shift := exp + 2
	ten := big.NewInt(10)
	if shift >= 0 {
		coef.Mul(coef, new(big.Int).Exp(ten, big.NewInt(int64(shift)), nil))
	} else {
		coef.Quo(coef, new(big.Int).Exp(ten, big.NewInt(int64(-shift)), nil))
	}
	if !coef.IsInt64() {
		return 0, domain.ErrInvalidPrice
	}
	return domain.Price(coef.Int64()), nil
}

func ownerFilter(ownerID, id string) (bson.M, bool) {
	owner, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, false
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, false
	}
	return bson.M{"_id": oid, "owner_id": owner}, true
}

func (r *RecipeRepository) Create(ctx context.Context, recipe *domain.Recipe) (*domain.Recipe, error) {
	doc, err := toRecipeDocument(recipe)
	if err != nil {
		return nil, err
	}
	doc.ID = primitive.NewObjectID()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if err := r.ownerExists(ctx, doc.OwnerID); err != nil {
		return nil, err
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert recipe: %w", err)
	}

	// A cascade delete can run between the check and the insert.
	if err := r.ownerExists(ctx, doc.OwnerID); err != nil {
		if _, derr := r.col.DeleteOne(ctx, bson.M{"_id": doc.ID}); derr != nil {
			return nil, errors.Join(err, fmt.Errorf("remove orphan recipe: %w", derr))
		}
		return nil, err
	}
	return doc.toDomain()
}

// ownerExists returns ErrUserNotFound when no user has the given id.
func (r *RecipeRepository) ownerExists(ctx context.Context, owner primitive.ObjectID) error {
	n, err := r.users.CountDocuments(ctx, bson.M{"_id": owner}, options.Count().SetLimit(1))
	if err != nil {
		return fmt.Errorf("check recipe owner: %w", err)
	}
	if n == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// ListByOwner returns the owner's recipes, newest first.
func (r *RecipeRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Recipe, error) {
	owner, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return []*domain.Recipe{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"owner_id": owner}, opts)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}

	var docs []recipeDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode recipes: %w", err)
	}

	out := make([]*domain.Recipe, 0, len(docs))
	for _, d := range docs {
		rec, err := d.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

func (r *RecipeRepository) FindByID(ctx context.Context, ownerID, id string) (*domain.Recipe, error) {
	filter, ok := ownerFilter(ownerID, id)
	if !ok {
		return nil, domain.ErrRecipeNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc recipeDocument
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, fmt.Errorf("find recipe: %w", err)
	}
	return doc.toDomain()
}

func (r *RecipeRepository) Update(ctx context.Context, recipe *domain.Recipe) (*domain.Recipe, error) {
	filter, ok := ownerFilter(recipe.OwnerID, recipe.ID)
	if !ok {
		return nil, domain.ErrRecipeNotFound
	}
	price, err := primitive.ParseDecimal128(recipe.Price.String())
	if err != nil {
		return nil, fmt.Errorf("encode price: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"title":        recipe.Title,
		"description":  recipe.Description,
		"time_minutes": recipe.TimeMinutes,
		"price":        price,
		"link":         recipe.Link,
		"updated_at":   recipe.UpdatedAt.UTC(),
	}}

	var doc recipeDocument
	err = r.col.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, fmt.Errorf("update recipe: %w", err)
	}
	return doc.toDomain()
}

func (r *RecipeRepository) Delete(ctx context.Context, ownerID, id string) error {
	filter, ok := ownerFilter(ownerID, id)
	if !ok {
		return domain.ErrRecipeNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("delete recipe: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrRecipeNotFound
	}
	return nil
}

// EnsureIndexes creates the owner listing index.
func (r *RecipeRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "owner_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	return err
}
