package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/infernalwolves/clan-dashboard/internal/core/domain"
)

const collectionTeams = "teams"

// rosterDocument is keyed by the normalised owner key.
type rosterDocument struct {
	Owner     string          `bson:"_id"`
	Team      []domain.Member `bson:"team"`
	Version   int64           `bson:"version"`
	UpdatedAt time.Time       `bson:"updated_at"`
}

func (d rosterDocument) toDomain() domain.TeamRoster {
	team := d.Team
	if team == nil {
		team = []domain.Member{}
	}
	return domain.TeamRoster{Owner: d.Owner, Members: team, Version: d.Version, UpdatedAt: d.UpdatedAt}
}

type RosterRepository struct {
	col *mongo.Collection
}

func NewRosterRepository(db *mongo.Database) *RosterRepository {
	return &RosterRepository{col: db.Collection(collectionTeams)}
}

func (r *RosterRepository) Get(ctx context.Context, owner string) (*domain.TeamRoster, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc rosterDocument
	err := r.col.FindOne(ctx, bson.M{"_id": owner}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find roster: %w", err)
	}
	t := doc.toDomain()
	return &t, nil
}

// Save upserts the roster. The version is derived from the stored one, so the
// caller must serialise writes per owner.
func (r *RosterRepository) Save(ctx context.Context, owner string, members []domain.Member) (*domain.TeamRoster, error) {
	var prev int64
	current, err := r.Get(ctx, owner)
	switch {
	case err == nil:
		prev = current.Version
	case errors.Is(err, domain.ErrNotFound):
	default:
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC()
	doc := rosterDocument{
		Owner:     owner,
		Team:      members,
		Version:   domain.NextVersion(prev, now),
		UpdatedAt: now,
	}
	_, err = r.col.ReplaceOne(ctx, bson.M{"_id": owner}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return nil, fmt.Errorf("upsert roster: %w", err)
	}
	t := doc.toDomain()
	return &t, nil
}

func (r *RosterRepository) Delete(ctx context.Context, owner string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.DeleteOne(ctx, bson.M{"_id": owner}); err != nil {
		return fmt.Errorf("delete roster: %w", err)
	}
	return nil
}

func (r *RosterRepository) List(ctx context.Context) (domain.RosterCollection, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list rosters: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []rosterDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode rosters: %w", err)
	}

	out := make(domain.RosterCollection, len(docs))
	for _, d := range docs {
		out[d.Owner] = d.toDomain()
	}
	return out, nil
}
